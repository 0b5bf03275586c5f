package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
)

var _ list.Item = pendingItem{}

// pendingItem wraps a to-be-added track identifier to implement [list.Item].
type pendingItem struct {
	position int
	id       string
}

func (i pendingItem) FilterValue() string { return i.id }
func (i pendingItem) Title() string       { return i.id }
func (i pendingItem) Description() string {
	return fmt.Sprintf("queued at position %d", i.position)
}
