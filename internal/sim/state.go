package sim

// Buttons is the per-frame input bitset. The bit layout is part of the
// external contract shared with every host; bits 5+ are reserved and
// ignored.
type Buttons uint32

const (
	ButtonLeft  Buttons = 1 << 0
	ButtonRight Buttons = 1 << 1
	ButtonDown  Buttons = 1 << 2
	ButtonRun   Buttons = 1 << 3
	ButtonJump  Buttons = 1 << 4
)

// Has reports whether the given button bit is set.
func (b Buttons) Has(bit Buttons) bool {
	return b&bit != 0
}

// State is the mutable per-player record. Step borrows it exclusively and
// mutates it in place. Field order is stable; hosts that bridge the record
// into other languages rely on it.
type State struct {
	// Pose
	X, Y float32
	W, H float32

	// Velocity
	VX, VY float32

	// Grounded is 1 while the player stands on a collider, else 0.
	// Written by Step; the whole step reads the pre-step value.
	Grounded uint8

	// Coyote is the seconds remaining of post-ledge jump grace.
	Coyote float32

	// JumpBuffer is the seconds remaining of pre-landing jump intent.
	JumpBuffer float32

	// JumpWasDown is the previous frame's jump-held bit, kept for edge
	// detection.
	JumpWasDown uint8
}

// NewState places a player rectangle at x, y with zero velocity.
func NewState(x, y, w, h float32) State {
	return State{X: x, Y: y, W: w, H: h}
}

// Events are the 0/1 flags emitted for the step that just completed.
// They are freshly constructed every step and never stored.
type Events struct {
	Jumped uint8
	Landed uint8
	Bonked uint8
}
