// Package config provides YAML-based lab configuration: physics tuning,
// world geometry, and the spawn point the interactive sandbox uses.
package config

import (
	"github.com/bchelf/platlab/internal/sim"
)

// LabConfig is the full sandbox configuration as loaded from YAML.
type LabConfig struct {
	Physics PhysicsConfig `yaml:"physics"`
	Player  PlayerConfig  `yaml:"player"`
	World   []RectConfig  `yaml:"world"`
}

// PhysicsConfig mirrors the parameter record key for key. Values are
// declared float64 because that is what the YAML decoder produces; the
// narrowing to the core's 32-bit floats happens once, in Params.
type PhysicsConfig struct {
	GroundMaxSpeed float64 `yaml:"ground_max_speed"`
	GroundAccel    float64 `yaml:"ground_accel"`
	GroundDecel    float64 `yaml:"ground_decel"`
	GroundFriction float64 `yaml:"ground_friction"`
	RunMultiplier  float64 `yaml:"run_multiplier"`

	AirMaxSpeed float64 `yaml:"air_max_speed"`
	AirAccel    float64 `yaml:"air_accel"`
	AirDecel    float64 `yaml:"air_decel"`
	AirDrag     float64 `yaml:"air_drag"`

	GravityUp          float64 `yaml:"gravity_up"`
	GravityDown        float64 `yaml:"gravity_down"`
	TerminalVelocity   float64 `yaml:"terminal_velocity"`
	FastFallMultiplier float64 `yaml:"fast_fall_multiplier"`

	JumpVelocity      float64 `yaml:"jump_velocity"`
	JumpCutMultiplier float64 `yaml:"jump_cut_multiplier"`
	CoyoteTime        float64 `yaml:"coyote_time"`
	JumpBuffer        float64 `yaml:"jump_buffer"`

	SnapToGround float64 `yaml:"snap_to_ground"`
	MaxStepPx    float64 `yaml:"max_step_px"`

	WorldW        float64 `yaml:"world_w"`
	WorldWrapMode float64 `yaml:"world_wrap_mode"`
}

// PlayerConfig defines the spawn pose of the sandbox player.
type PlayerConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// RectConfig is one static collider.
type RectConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// Params converts the physics section into the core's parameter record.
func (c LabConfig) Params() sim.Params {
	p := c.Physics
	return sim.Params{
		GroundMaxSpeed:     float32(p.GroundMaxSpeed),
		GroundAccel:        float32(p.GroundAccel),
		GroundDecel:        float32(p.GroundDecel),
		GroundFriction:     float32(p.GroundFriction),
		RunMultiplier:      float32(p.RunMultiplier),
		AirMaxSpeed:        float32(p.AirMaxSpeed),
		AirAccel:           float32(p.AirAccel),
		AirDecel:           float32(p.AirDecel),
		AirDrag:            float32(p.AirDrag),
		GravityUp:          float32(p.GravityUp),
		GravityDown:        float32(p.GravityDown),
		TerminalVelocity:   float32(p.TerminalVelocity),
		FastFallMultiplier: float32(p.FastFallMultiplier),
		JumpVelocity:       float32(p.JumpVelocity),
		JumpCutMultiplier:  float32(p.JumpCutMultiplier),
		CoyoteTime:         float32(p.CoyoteTime),
		JumpBuffer:         float32(p.JumpBuffer),
		SnapToGround:       float32(p.SnapToGround),
		MaxStepPx:          float32(p.MaxStepPx),
		WorldW:             float32(p.WorldW),
		WorldWrapMode:      float32(p.WorldWrapMode),
	}
}

// Colliders converts the world list into core rectangles, preserving
// order (ground snap picks the first hit).
func (c LabConfig) Colliders() []sim.Rect {
	world := make([]sim.Rect, len(c.World))
	for i, r := range c.World {
		world[i] = sim.NewRect(float32(r.X), float32(r.Y), float32(r.W), float32(r.H))
	}
	return world
}

// Spawn creates the initial player state at the configured spawn point.
func (c LabConfig) Spawn() sim.State {
	return sim.NewState(
		float32(c.Player.X),
		float32(c.Player.Y),
		float32(c.Player.Width),
		float32(c.Player.Height),
	)
}
