// Package tui provides the Bubble Tea integration for running playables in
// a terminal. It owns the frame clock, input mapping and the styled canvas
// renderer; everything else lives in the runtime.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adforge/playable/internal/patch"
)

// TickMsg is sent to trigger one simulation frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the given
// rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// PatchMsg carries one editor patch into the Bubble Tea loop, preserving
// receipt order.
type PatchMsg patch.Message

// waitForPatch re-arms the editor patch pump.
func waitForPatch(ch <-chan patch.Message) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return PatchMsg(msg)
	}
}
