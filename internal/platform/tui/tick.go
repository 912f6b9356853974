// Package tui is the terminal front end: a core.Renderer that paints sprites
// into a cell screen, the Bubble Tea models around it, and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg triggers a repaint. Simulation ticks belong to the session
// controller, not to Bubble Tea.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends one TickMsg after 1/fps.
func tickCmd(fps int) tea.Cmd {
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
