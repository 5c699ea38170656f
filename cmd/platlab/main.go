// platlab is a deterministic 2D platformer physics lab for the terminal.
//
// Usage:
//
//	platlab play               - Interactive sandbox
//	platlab replay <file>      - Run a JSON scenario, emit a CSV trace
//	platlab trace [name]       - Run a built-in parity scenario
//	platlab presets            - List physics tunings
//	platlab runs [scenario]    - Show archived runs
//	platlab serve              - Start SSH server for remote play
//
// Global flags:
//
//	--db <path>      - Run archive database (default: ~/.platlab/runs.db)
//	--params <path>  - Custom lab config YAML
//	--preset <name>  - Physics tuning preset
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bchelf/platlab/internal/config"
	"github.com/bchelf/platlab/internal/preset"
	"github.com/bchelf/platlab/internal/sim"
)

var (
	// Global flags
	flagDBPath string
	flagParams string
	flagPreset string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "platlab",
	Short: "platlab - deterministic platformer physics in your terminal",
	Long: `platlab hosts a deterministic 2D platformer physics core: the same
parameters, world, and inputs always produce the same trajectory,
bit for bit, on every host that embeds the core.

Available commands:
  play     - Interactive sandbox
  replay   - Run a JSON scenario and emit the CSV portability trace
  trace    - Run a built-in reference scenario and print its hash
  presets  - List physics tuning presets
  runs     - Browse archived runs
  serve    - Start SSH server for remote play

Examples:
  platlab play --preset icy
  platlab replay scenarios/hop.json --record
  platlab trace parity
  platlab serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.platlab/runs.db", "Path to run archive database")
	rootCmd.PersistentFlags().StringVar(&flagParams, "params", "", "Path to custom lab config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Physics tuning preset (see 'platlab presets')")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadLab resolves the lab configuration and the effective tuning: the
// YAML config supplies world and spawn; a --preset overrides the feel
// while keeping the config's world extent and wrap mode.
func loadLab() (sim.Params, []sim.Rect, sim.State, error) {
	cfg, err := config.Load(flagParams)
	if err != nil {
		return sim.Params{}, nil, sim.State{}, err
	}

	params := cfg.Params()
	if flagPreset != "" {
		p, err := preset.Get(flagPreset)
		if err != nil {
			return sim.Params{}, nil, sim.State{}, err
		}
		p.WorldW = params.WorldW
		p.WorldWrapMode = params.WorldWrapMode
		params = p
	}

	return params, cfg.Colliders(), cfg.Spawn(), nil
}
