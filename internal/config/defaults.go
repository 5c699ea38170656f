package config

import (
	_ "embed"
)

//go:embed defaults/lab.yaml
var defaultLabYAML []byte

// DefaultLabConfig returns the hardcoded fallback configuration, used if
// even the embedded YAML fails to parse.
func DefaultLabConfig() LabConfig {
	return LabConfig{
		Physics: PhysicsConfig{
			GroundMaxSpeed: 260,
			GroundAccel:    1800,
			GroundDecel:    2200,
			GroundFriction: 2600,
			RunMultiplier:  1.35,

			AirMaxSpeed: 220,
			AirAccel:    1200,
			AirDecel:    900,
			AirDrag:     0,

			GravityUp:          1500,
			GravityDown:        2300,
			TerminalVelocity:   1200,
			FastFallMultiplier: 1.35,

			JumpVelocity:      520,
			JumpCutMultiplier: 0.45,
			CoyoteTime:        0.085,
			JumpBuffer:        0.100,

			SnapToGround: 6,
			MaxStepPx:    6,

			WorldW:        960,
			WorldWrapMode: 1,
		},
		Player: PlayerConfig{
			X:      80,
			Y:      436,
			Width:  28,
			Height: 44,
		},
		World: []RectConfig{
			{X: 0, Y: 480, W: 960, H: 60},
			{X: 220, Y: 392, W: 140, H: 16},
			{X: 430, Y: 320, W: 120, H: 16},
			{X: 640, Y: 392, W: 140, H: 16},
			{X: 320, Y: 180, W: 180, H: 12},
		},
	}
}
