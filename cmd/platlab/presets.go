package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bchelf/platlab/internal/preset"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List physics tuning presets",
	Long: `List the named tunings that can be selected with --preset.

Presets replace the physics parameters but keep the configured world
geometry; they are data, not separate simulations.`,
	Args: cobra.NoArgs,
	Run:  runPresets,
}

func runPresets(cmd *cobra.Command, args []string) {
	list := preset.List()

	fmt.Println("Available presets:")
	fmt.Println()
	for _, info := range list {
		p, err := preset.Get(info.Name)
		if err != nil {
			continue
		}
		fmt.Printf("  %-10s %s\n", info.Name, info.Description)
		fmt.Printf("  %-10s   jump=%g gravity=%g/%g ground=%g run=x%g\n",
			"", p.JumpVelocity, p.GravityUp, p.GravityDown, p.GroundMaxSpeed, p.RunMultiplier)
	}
	fmt.Println()
	fmt.Println("Use with: platlab play --preset <name>")
}
