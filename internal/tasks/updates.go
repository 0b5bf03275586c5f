package tasks

import "fmt"

// ProgressUpdate represents a progress event during a fill run.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase (0 when unknown)
	Message string // Human-readable message for display
}

// Operation phase enumeration
type Phase int

const (
	FetchSnapshot Phase = iota
	ComputeResidue
	AppendBatch
	Complete
)

func (p Phase) String() string {
	switch p {
	case FetchSnapshot:
		return "fetch_snapshot"
	case ComputeResidue:
		return "compute_residue"
	case AppendBatch:
		return "append_batch"
	case Complete:
		return "complete"
	default:
		return ""
	}
}

func snapshotStartUpdate(playlistID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSnapshot,
		Step:    0,
		Message: fmt.Sprintf("Fetching current contents of playlist %s...", playlistID),
	}
}

func snapshotPageUpdate(page, total, collected int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSnapshot,
		Step:    page,
		Message: fmt.Sprintf("Fetched page %d (%d identifiers, server reports %d items)", page, collected, total),
	}
}

func residueUpdate(inputCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ComputeResidue,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Diffing %d input identifiers against snapshot...", inputCount),
	}
}

func noopUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   Complete,
		Step:    1,
		Total:   1,
		Message: "No new tracks to add; playlist already contains all provided songs.",
	}
}

func dryRunUpdate(residue, batches int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Complete,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Dry run: %d tracks would be added in %d batches.", residue, batches),
	}
}

func batchAppendedUpdate(batch, totalBatches, size int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AppendBatch,
		Step:    batch,
		Total:   totalBatches,
		Message: fmt.Sprintf("[%d/%d] Added %d tracks.", batch, totalBatches, size),
	}
}

func fillCompleteUpdate(added, batches int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Complete,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("All tracks added successfully (%d tracks in %d batches).", added, batches),
	}
}
