package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bchelf/platlab/internal/sim"
)

// holdTicks is how many simulation ticks a key press keeps its button
// held. Terminals deliver discrete presses, not key-up events; keyboard
// auto-repeat re-arms the latch faster than it decays, which reads as a
// continuous hold to the core.
const holdTicks = 6

// ControlAction is a host-level action that never reaches the core.
type ControlAction int

const (
	ControlNone ControlAction = iota
	ControlQuit
	ControlPause
	ControlRespawn
	ControlNextPreset
)

// KeyMapper translates Bubble Tea key messages into core button bits and
// host control actions. Centralizing the bindings keeps them testable.
type KeyMapper struct{}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates one key message. Shifted movement letters carry the
// RUN bit, mirroring a held run button on a gamepad.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (sim.Buttons, ControlAction) {
	switch msg.String() {
	case "ctrl+c", "q":
		return 0, ControlQuit
	case "p", "esc":
		return 0, ControlPause
	case "r":
		return 0, ControlRespawn
	case "tab":
		return 0, ControlNextPreset
	}

	switch msg.String() {
	case "left", "a":
		return sim.ButtonLeft, ControlNone
	case "A":
		return sim.ButtonLeft | sim.ButtonRun, ControlNone
	case "right", "d":
		return sim.ButtonRight, ControlNone
	case "D":
		return sim.ButtonRight | sim.ButtonRun, ControlNone
	case "down", "s":
		return sim.ButtonDown, ControlNone
	case " ", "up", "w":
		return sim.ButtonJump, ControlNone
	}

	return 0, ControlNone
}

// HeldButtons tracks press latches per button bit and decays them once
// per tick, synthesizing held state from discrete terminal key presses.
type HeldButtons struct {
	remaining [5]int
}

// Press arms the latch for every bit set in b.
func (h *HeldButtons) Press(b sim.Buttons) {
	for bit := 0; bit < len(h.remaining); bit++ {
		if b.Has(1 << bit) {
			h.remaining[bit] = holdTicks
		}
	}
}

// Tick returns the currently held bitset and decays every latch by one.
func (h *HeldButtons) Tick() sim.Buttons {
	var b sim.Buttons
	for bit := 0; bit < len(h.remaining); bit++ {
		if h.remaining[bit] > 0 {
			b |= 1 << bit
			h.remaining[bit]--
		}
	}
	return b
}

// Clear drops all latches, e.g. when pausing.
func (h *HeldButtons) Clear() {
	for bit := range h.remaining {
		h.remaining[bit] = 0
	}
}
