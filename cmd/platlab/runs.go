package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bchelf/platlab/internal/platform/tui"
	"github.com/bchelf/platlab/internal/storage"
)

var (
	flagRunsLimit       int
	flagRunsInteractive bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [scenario]",
	Short: "Show archived runs",
	Long: `Display archived runs, newest first. Runs are recorded by
'platlab replay --record' and when an interactive sandbox session ends.

Examples:
  platlab runs
  platlab runs parity
  platlab runs sandbox --limit 5
  platlab runs -i`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Maximum number of runs to show")
	runsCmd.Flags().BoolVarP(&flagRunsInteractive, "interactive", "i", false, "Browse runs in a table UI")
}

func runRuns(cmd *cobra.Command, args []string) {
	scenarioName := ""
	if len(args) == 1 {
		scenarioName = args[0]
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run archive: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagRunsInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.BrowseRuns(store, scenarioName, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runs, err := store.Runs(scenarioName, flagRunsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	if len(runs) == 0 {
		fmt.Println("No runs archived yet.")
		fmt.Println()
		fmt.Println("Record one with 'platlab replay <scenario.json> --record'.")
		return
	}

	fmt.Printf("  %-16s  %-12s  %-6s  %-8s  %-7s  %s\n",
		"When", "Scenario", "Frames", "Final", "J/L/B", "Trace hash")
	fmt.Printf("  %-16s  %-12s  %-6s  %-8s  %-7s  %s\n",
		"----", "--------", "------", "-----", "-----", "----------")

	for _, r := range runs {
		fmt.Printf("  %-16s  %-12s  %-6d  %4.0f,%-3.0f  %d/%d/%d  %016x\n",
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.Scenario, r.Frames, r.FinalX, r.FinalY,
			r.Jumped, r.Landed, r.Bonked, r.TraceHash)
	}
}
