package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/spotfill/internal/services"
	"github.com/desertthunder/spotfill/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	PlanView ViewState = iota
	ConfirmView
	FillView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	service      services.PlaylistService
	engine       *tasks.FillEngine
	playlistID   string
	playlistName string
	ids          []string
	opts         tasks.FillOpts
	width        int
	height       int
	pendingList  list.Model
	plan         *tasks.FillResult
	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate
	result       *tasks.FillResult
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
//
// ids are the normalized identifiers parsed from the input file; the plan
// shown in the first view is computed against a fresh playlist snapshot.
func NewModel(ctx context.Context, service services.PlaylistService, engine *tasks.FillEngine, playlistID string, ids []string, opts tasks.FillOpts) *Model {
	return &Model{
		ctx:        ctx,
		view:       PlanView,
		service:    service,
		engine:     engine,
		playlistID: playlistID,
		ids:        ids,
		opts:       opts,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init initializes the TUI by computing the fill plan.
func (m *Model) Init() tea.Cmd {
	return m.computePlan()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.pendingList.Width() == 0 {
			m.pendingList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case PlanView:
			return m.handlePlanKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateList(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgPlanReady:
		data := msg.data.(planData)
		if data.err != nil {
			m.err = data.err
			return m, tea.Quit
		}
		m.plan = data.plan
		m.playlistName = data.name
		if m.plan.NoOp {
			m.result = m.plan
			m.view = ResultView
			return m, nil
		}
		items := make([]list.Item, len(m.plan.Residue))
		for i, id := range m.plan.Residue {
			items[i] = pendingItem{position: i + 1, id: id}
		}
		m.pendingList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.pendingList.Title = fmt.Sprintf("Tracks to add to '%s'", m.playlistTitle())
		m.pendingList.SetSize(m.width-4, m.height-8)
		return m, nil

	case MsgProgressUpdate:
		m.progress = msg.data.(tasks.ProgressUpdate)
		return m, m.waitForProgress()

	case MsgFillComplete:
		data := msg.data.(fillData)
		m.result = data.result
		m.err = data.err
		m.view = ResultView
		m.progressChan = nil
		return m, nil
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case PlanView:
		return m.renderPlan()
	case ConfirmView:
		return m.renderConfirm()
	case FillView:
		return m.renderFill()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handlePlanKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		m.view = ConfirmView
		return m, nil
	}

	var cmd tea.Cmd
	m.pendingList, cmd = m.pendingList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n", "esc":
		m.view = PlanView
		return m, nil
	case "y":
		m.view = FillView
		return m, m.startFill()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "enter":
		return m, tea.Quit
	case "r":
		m.view = PlanView
		m.plan = nil
		m.result = nil
		m.err = nil
		return m, m.computePlan()
	}
	return m, nil
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.view == PlanView {
		m.pendingList, cmd = m.pendingList.Update(msg)
	}
	return m, cmd
}

// computePlan runs a dry-run fill to capture the snapshot and residue
// without touching the playlist, and resolves the playlist name for display.
func (m *Model) computePlan() tea.Cmd {
	return func() tea.Msg {
		opts := m.opts
		opts.DryRun = true

		plan, err := m.engine.Fill(m.ctx, nil, m.playlistID, m.ids, opts)
		if err != nil {
			return planReadyMsg(nil, "", err)
		}

		name := ""
		if playlist, err := m.service.GetPlaylist(m.ctx, m.playlistID); err == nil {
			name = playlist.Name
		}

		return planReadyMsg(plan, name, nil)
	}
}

func (m *Model) startFill() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	progressChan := m.progressChan

	go func() {
		result, err := m.engine.Fill(m.ctx, progressChan, m.playlistID, m.ids, m.opts)
		m.result = result
		m.err = err
		close(progressChan)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return fillCompleteMsg(m.result, m.err)
		}

		update, ok := <-m.progressChan
		if !ok {
			return fillCompleteMsg(m.result, m.err)
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) playlistTitle() string {
	if m.playlistName != "" {
		return m.playlistName
	}
	return m.playlistID
}

func (m *Model) renderPlan() string {
	if m.plan == nil {
		return styles.help.Render("Fetching playlist snapshot...")
	}

	summary := styles.help.Render(fmt.Sprintf(
		"%d identifiers in input, %d already present, %d to add",
		m.plan.InputCount, m.plan.ExistingCount, len(m.plan.Residue),
	))

	helpKeys := []key.Binding{m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n\n%s", m.pendingList.View(), summary, helpView)
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render(fmt.Sprintf("Add %d tracks to '%s'?", len(m.plan.Residue), m.playlistTitle()))
	info := fmt.Sprintf("\nPlaylist: %s\nTracks to add: %d\nBatches: %d\n",
		m.playlistTitle(), len(m.plan.Residue), m.plan.BatchCount)

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderFill() string {
	title := styles.title.Render("Filling Playlist")

	var phase string
	switch m.progress.Phase {
	case tasks.FetchSnapshot:
		phase = "Fetching playlist snapshot..."
	case tasks.ComputeResidue:
		phase = "Computing tracks to add..."
	case tasks.AppendBatch:
		phase = fmt.Sprintf("Appending batch %d/%d", m.progress.Step, m.progress.Total)
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderResult() string {
	helpKeys := []key.Binding{m.keys.restart, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	if m.err != nil {
		body := styles.err.Render(fmt.Sprintf("Fill failed: %v", m.err))
		if m.result != nil && m.result.AddedCount > 0 {
			body += "\n" + styles.warn.Render(fmt.Sprintf("%d tracks were added before the failure.", m.result.AddedCount))
		}
		return fmt.Sprintf("%s\n\n%s", body, helpView)
	}

	if m.result == nil {
		return styles.err.Render("No result available\n\n") + helpView
	}

	if m.result.NoOp {
		title := styles.ok.Render("✓ Nothing to do")
		info := fmt.Sprintf("\nPlaylist '%s' already contains all %d provided songs.",
			m.playlistTitle(), m.result.InputCount)
		return fmt.Sprintf("%s\n%s\n\n%s", title, info, helpView)
	}

	title := styles.ok.Render("✓ Fill Complete!")
	info := fmt.Sprintf(
		"\nPlaylist: %s\nInput identifiers: %d\nAlready present: %d\nAdded: %d tracks in %d batches",
		m.playlistTitle(),
		m.result.InputCount,
		m.result.ExistingCount,
		m.result.AddedCount,
		m.result.BatchCount,
	)

	return fmt.Sprintf("%s\n%s\n\n%s", title, info, helpView)
}
