package scenario

import (
	"fmt"
	"sort"

	"github.com/bchelf/platlab/internal/sim"
)

// ParityHash is the trace digest of the "parity" scenario. Every
// conforming host, whatever its language or runtime, must reproduce it.
const ParityHash uint64 = 0x94db7b2925cfad14

// Builtin returns one of the reference scenarios shipped with the lab.
func Builtin(name string) (Scenario, error) {
	switch name {
	case "parity":
		return parityScenario(), nil
	case "idle-drop":
		return idleDropScenario(), nil
	default:
		return Scenario{}, fmt.Errorf("scenario: unknown builtin %q", name)
	}
}

// BuiltinNames lists the reference scenarios, sorted.
func BuiltinNames() []string {
	names := []string{"parity", "idle-drop"}
	sort.Strings(names)
	return names
}

// parityScenario is the cross-host reference: 960-wide edge-wrapped world,
// one ground slab, run right for two seconds with a jump on frame 10.
func parityScenario() Scenario {
	p := sim.DefaultParams()
	p.WorldW = 960

	inputs := make([]sim.Buttons, 180)
	for frame := range inputs {
		if frame < 120 {
			inputs[frame] |= sim.ButtonRight
		}
		if frame == 10 {
			inputs[frame] |= sim.ButtonJump
		}
	}

	return Scenario{
		Name:    "parity",
		Params:  p,
		World:   []sim.Rect{sim.NewRect(0, 480, 960, 60)},
		Initial: sim.NewState(80, 480-44, 28, 44),
		Inputs:  inputs,
	}
}

// idleDropScenario drops the player onto a slab and rests for a second.
func idleDropScenario() Scenario {
	p := sim.DefaultParams()
	p.WorldW = 240
	p.WorldWrapMode = sim.WrapCenter

	return Scenario{
		Name:    "idle-drop",
		Params:  p,
		World:   []sim.Rect{sim.NewRect(0, 120, 240, 16)},
		Initial: sim.NewState(28, 98, 14, 22),
		Inputs:  make([]sim.Buttons, 60),
	}
}
