package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/spotfill/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var _ tea.Msg = Msg{}

const (
	MsgPlanReady MsgKind = iota
	MsgProgressUpdate
	MsgFillComplete
)

type planData struct {
	plan *tasks.FillResult
	name string
	err  error
}

type fillData struct {
	result *tasks.FillResult
	err    error
}

// planReadyMsg is the constructor for [MsgPlanReady]
func planReadyMsg(plan *tasks.FillResult, name string, err error) Msg {
	return Msg{kind: MsgPlanReady, data: planData{plan, name, err}}
}

// progressUpdateMsg is the constructor for [MsgProgressUpdate]
func progressUpdateMsg(update tasks.ProgressUpdate) Msg {
	return Msg{kind: MsgProgressUpdate, data: update}
}

// fillCompleteMsg is the constructor for [MsgFillComplete]
func fillCompleteMsg(result *tasks.FillResult, err error) Msg {
	return Msg{kind: MsgFillComplete, data: fillData{result, err}}
}
