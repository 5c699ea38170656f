// Package tui provides the Bubble Tea integration for the physics lab.
// It owns the terminal loop, the fixed-rate tick that drives the core,
// and the mapping from keyboard input to the core's button bitset.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bchelf/platlab/internal/sim"
)

// TickMsg is sent once per simulation step.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that fires once after one
// fixed-rate interval; the model steps the core once per tick and then
// schedules the next one. Wall-clock time is not accumulated: a tick that
// arrives late is not made up with extra steps. The core holds no clock.
func tickCmd() tea.Cmd {
	interval := time.Second / time.Duration(sim.HZ)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
