// Package scenario loads replay scenarios and runs them through the
// physics core. A scenario is the portability contract: initial state,
// parameters, world geometry, and one button bitset per frame. Any
// conforming host fed the same scenario must emit the identical trace.
package scenario

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/bchelf/platlab/internal/sim"
)

// ErrBadInput marks malformed scenario payloads. All validation happens
// here, before the first Step runs; the core itself never fails.
var ErrBadInput = errors.New("bad input")

// Scenario is a fully validated replay: run it with Run.
type Scenario struct {
	Name    string
	Params  sim.Params
	World   []sim.Rect
	Initial sim.State
	Inputs  []sim.Buttons
}

// rectPayload mirrors one world collider in the JSON encoding.
type rectPayload struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	W float32 `json:"w"`
	H float32 `json:"h"`
}

// paramsPayload carries the flat parameter record. Field tags match the
// external key names; omitted keys keep the reference defaults.
type paramsPayload struct {
	GroundMaxSpeed float32 `json:"ground_max_speed"`
	GroundAccel    float32 `json:"ground_accel"`
	GroundDecel    float32 `json:"ground_decel"`
	GroundFriction float32 `json:"ground_friction"`
	RunMultiplier  float32 `json:"run_multiplier"`

	AirMaxSpeed float32 `json:"air_max_speed"`
	AirAccel    float32 `json:"air_accel"`
	AirDecel    float32 `json:"air_decel"`
	AirDrag     float32 `json:"air_drag"`

	GravityUp          float32 `json:"gravity_up"`
	GravityDown        float32 `json:"gravity_down"`
	TerminalVelocity   float32 `json:"terminal_velocity"`
	FastFallMultiplier float32 `json:"fast_fall_multiplier"`

	JumpVelocity      float32 `json:"jump_velocity"`
	JumpCutMultiplier float32 `json:"jump_cut_multiplier"`
	CoyoteTime        float32 `json:"coyote_time"`
	JumpBuffer        float32 `json:"jump_buffer"`

	SnapToGround float32 `json:"snap_to_ground"`
	MaxStepPx    float32 `json:"max_step_px"`

	WorldW        float32 `json:"world_w"`
	WorldWrapMode float32 `json:"world_wrap_mode"`
}

func defaultParamsPayload() paramsPayload {
	d := sim.DefaultParams()
	return paramsPayload{
		GroundMaxSpeed:     d.GroundMaxSpeed,
		GroundAccel:        d.GroundAccel,
		GroundDecel:        d.GroundDecel,
		GroundFriction:     d.GroundFriction,
		RunMultiplier:      d.RunMultiplier,
		AirMaxSpeed:        d.AirMaxSpeed,
		AirAccel:           d.AirAccel,
		AirDecel:           d.AirDecel,
		AirDrag:            d.AirDrag,
		GravityUp:          d.GravityUp,
		GravityDown:        d.GravityDown,
		TerminalVelocity:   d.TerminalVelocity,
		FastFallMultiplier: d.FastFallMultiplier,
		JumpVelocity:       d.JumpVelocity,
		JumpCutMultiplier:  d.JumpCutMultiplier,
		CoyoteTime:         d.CoyoteTime,
		JumpBuffer:         d.JumpBuffer,
		SnapToGround:       d.SnapToGround,
		MaxStepPx:          d.MaxStepPx,
		WorldW:             d.WorldW,
		WorldWrapMode:      d.WorldWrapMode,
	}
}

func (p paramsPayload) toParams() sim.Params {
	return sim.Params{
		GroundMaxSpeed:     p.GroundMaxSpeed,
		GroundAccel:        p.GroundAccel,
		GroundDecel:        p.GroundDecel,
		GroundFriction:     p.GroundFriction,
		RunMultiplier:      p.RunMultiplier,
		AirMaxSpeed:        p.AirMaxSpeed,
		AirAccel:           p.AirAccel,
		AirDecel:           p.AirDecel,
		AirDrag:            p.AirDrag,
		GravityUp:          p.GravityUp,
		GravityDown:        p.GravityDown,
		TerminalVelocity:   p.TerminalVelocity,
		FastFallMultiplier: p.FastFallMultiplier,
		JumpVelocity:       p.JumpVelocity,
		JumpCutMultiplier:  p.JumpCutMultiplier,
		CoyoteTime:         p.CoyoteTime,
		JumpBuffer:         p.JumpBuffer,
		SnapToGround:       p.SnapToGround,
		MaxStepPx:          p.MaxStepPx,
		WorldW:             p.WorldW,
		WorldWrapMode:      p.WorldWrapMode,
	}
}

// statePayload carries the initial player record.
type statePayload struct {
	X           float32 `json:"x"`
	Y           float32 `json:"y"`
	VX          float32 `json:"vx"`
	VY          float32 `json:"vy"`
	W           float32 `json:"w"`
	H           float32 `json:"h"`
	Grounded    int     `json:"grounded"`
	Coyote      float32 `json:"coyote"`
	JumpBuffer  float32 `json:"jump_buffer"`
	JumpWasDown int     `json:"jump_was_down"`
}

type payload struct {
	Name         string        `json:"name"`
	Params       paramsPayload `json:"params"`
	World        []rectPayload `json:"world"`
	InitialState statePayload  `json:"initial_state"`
	Inputs       []uint32      `json:"inputs"`
}

// Parse decodes and validates a scenario from raw JSON.
func Parse(data []byte) (Scenario, error) {
	p := payload{Params: defaultParamsPayload()}
	if err := json.Unmarshal(data, &p); err != nil {
		return Scenario{}, fmt.Errorf("scenario: %w: %v", ErrBadInput, err)
	}

	sc := Scenario{
		Name:   p.Name,
		Params: p.Params.toParams(),
		Initial: sim.State{
			X:           p.InitialState.X,
			Y:           p.InitialState.Y,
			VX:          p.InitialState.VX,
			VY:          p.InitialState.VY,
			W:           p.InitialState.W,
			H:           p.InitialState.H,
			Grounded:    uint8(p.InitialState.Grounded),
			Coyote:      p.InitialState.Coyote,
			JumpBuffer:  p.InitialState.JumpBuffer,
			JumpWasDown: uint8(p.InitialState.JumpWasDown),
		},
	}

	sc.World = make([]sim.Rect, len(p.World))
	for i, r := range p.World {
		sc.World[i] = sim.NewRect(r.X, r.Y, r.W, r.H)
	}

	sc.Inputs = make([]sim.Buttons, len(p.Inputs))
	for i, bits := range p.Inputs {
		sc.Inputs[i] = sim.Buttons(bits)
	}

	if err := sc.validate(); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

// Load reads and validates a scenario file.
func Load(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario: cannot read %s: %w", path, err)
	}
	return Parse(data)
}

func (sc Scenario) validate() error {
	if len(sc.Inputs) == 0 {
		return fmt.Errorf("scenario: %w: no input frames", ErrBadInput)
	}
	if sc.Initial.W <= 0 || sc.Initial.H <= 0 {
		return fmt.Errorf("scenario: %w: player dimensions %vx%v must be positive",
			ErrBadInput, sc.Initial.W, sc.Initial.H)
	}
	for i, r := range sc.World {
		if r.W <= 0 || r.H <= 0 {
			return fmt.Errorf("scenario: %w: world rect %d has non-positive size %vx%v",
				ErrBadInput, i, r.W, r.H)
		}
	}
	return nil
}

// WorldFromBuffer builds world geometry from a contiguous x,y,w,h buffer,
// the layout bridge hosts hand over. The length must be a multiple of 4.
func WorldFromBuffer(buf []float32) ([]sim.Rect, error) {
	if len(buf)%4 != 0 {
		return nil, fmt.Errorf("scenario: %w: world buffer length %d not divisible by 4",
			ErrBadInput, len(buf))
	}
	world := make([]sim.Rect, len(buf)/4)
	for i := range world {
		world[i] = sim.NewRect(buf[4*i], buf[4*i+1], buf[4*i+2], buf[4*i+3])
	}
	return world, nil
}
