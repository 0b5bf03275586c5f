// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for filling a playlist from a local
// identifier file:
//  1. [PlanView] : Review the tracks that would be added (a dry-run plan)
//  2. [ConfirmView] : Confirm the append operation
//  3. [FillView] : Monitor real-time progress updates
//  4. [ResultView] : Display final counts
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Progress updates flow through a channel from the FillEngine, providing non-blocking status reporting during appends.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
