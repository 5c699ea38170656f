// Package preset provides a registry of named physics tunings. Presets
// are data layered on top of sim.DefaultParams, never code paths; the CLI
// and the TUI select them by name.
package preset

import (
	"fmt"
	"sort"
	"sync"

	"github.com/bchelf/platlab/internal/sim"
)

// Info describes a registered preset.
type Info struct {
	Name        string
	Description string
}

var (
	mu      sync.RWMutex
	presets = make(map[string]sim.Params)
	infos   = make(map[string]string)
)

// Register adds a named preset. Panics on duplicate names; presets are
// registered from init functions and a collision is a programming error.
func Register(name, description string, p sim.Params) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := presets[name]; exists {
		panic(fmt.Sprintf("preset: %q already registered", name))
	}
	presets[name] = p
	infos[name] = description
}

// Get returns the params for a named preset.
func Get(name string) (sim.Params, error) {
	mu.RLock()
	defer mu.RUnlock()

	p, ok := presets[name]
	if !ok {
		return sim.Params{}, fmt.Errorf("preset: unknown preset %q", name)
	}
	return p, nil
}

// Exists reports whether a preset with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := presets[name]
	return ok
}

// List returns all registered presets sorted by name.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(presets))
	for name := range presets {
		result = append(result, Info{Name: name, Description: infos[name]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

func init() {
	Register("default", "reference tuning used by the parity scenarios", sim.DefaultParams())

	smb1 := sim.DefaultParams()
	smb1.GroundMaxSpeed = 153
	smb1.GroundAccel = 380
	smb1.GroundDecel = 520
	smb1.GroundFriction = 420
	smb1.RunMultiplier = 1.6
	smb1.AirMaxSpeed = 153
	smb1.AirAccel = 340
	smb1.AirDecel = 340
	smb1.GravityUp = 950
	smb1.GravityDown = 2200
	smb1.JumpVelocity = 380
	smb1.JumpCutMultiplier = 0.5
	smb1.CoyoteTime = 0
	smb1.JumpBuffer = sim.DT // a press counts on its own frame only
	Register("smb1ish", "slippery momentum, no coyote or buffer grace", smb1)

	floaty := sim.DefaultParams()
	floaty.GravityUp = 900
	floaty.GravityDown = 1400
	floaty.JumpVelocity = 430
	floaty.FastFallMultiplier = 2.0
	floaty.AirDrag = 60
	Register("floaty", "low gravity with a strong fast-fall", floaty)

	icy := sim.DefaultParams()
	icy.GroundAccel = 700
	icy.GroundDecel = 500
	icy.GroundFriction = 260
	Register("icy", "low friction ground, long stopping distances", icy)

	moon := sim.DefaultParams()
	moon.GravityUp = 420
	moon.GravityDown = 600
	moon.TerminalVelocity = 500
	moon.JumpVelocity = 340
	Register("moon", "one-sixth-ish gravity sandbox", moon)
}
