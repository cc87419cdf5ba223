package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/adforge/playable/internal/core"
)

// KeyMapper translates Bubble Tea key messages to semantic actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action. Returns the action (may be
// ActionNone) and whether it is a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "a", "left", "h":
		return core.ActionLeft, false
	case "d", "right", "l":
		return core.ActionRight, false
	case "w", "up", "k":
		return core.ActionUp, false
	case "s", "down", "j":
		return core.ActionDown, false
	case "enter", " ":
		return core.ActionSelect, false
	case "esc", "b":
		return core.ActionBack, false
	case "r":
		return core.ActionRestart, false
	}
	return core.ActionNone, false
}
