package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bchelf/platlab/internal/platform/tui"
	"github.com/bchelf/platlab/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run the interactive physics sandbox",
	Long: `Start the sandbox in the current terminal.

Controls:
  a/d, arrows  - Move left/right
  A/D          - Run left/right
  Space/w/Up   - Jump (hold briefly, release early to cut the jump)
  s/Down       - Fast-fall
  Tab          - Cycle tuning preset
  r            - Respawn
  p/Esc        - Pause
  q/Ctrl+C     - Quit (archives the session run)

Examples:
  platlab play
  platlab play --preset moon
  platlab play --params ./my-lab.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	params, world, spawn, err := loadLab()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Get terminal size, fall back to a small viewport
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Open run archive
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run archive: %v\n", err)
		// Continue without storage - the sandbox still works
		store = nil
	}

	runErr := tui.Run(params, world, spawn, store, width, height)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running sandbox: %v\n", runErr)
		os.Exit(1)
	}
}
