package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bchelf/platlab/internal/scenario"
	"github.com/bchelf/platlab/internal/storage"
)

var (
	flagReplayOut    string
	flagReplayRecord bool
	flagReplayHash   bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <scenario.json>",
	Short: "Run a scenario and emit the CSV portability trace",
	Long: `Step a JSON scenario through the core and write the per-frame trace
in the cross-host oracle format (frame,x,y,vx,vy,grounded).

The scenario file contains "params", "world", "initial_state", and a
per-frame "inputs" list of button bitsets. Omitted parameter keys fall
back to the reference tuning.

Examples:
  platlab replay hop.json
  platlab replay hop.json --out hop.csv
  platlab replay hop.json --hash
  platlab replay hop.json --record`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&flagReplayOut, "out", "", "Write the CSV trace to a file instead of stdout")
	replayCmd.Flags().BoolVar(&flagReplayRecord, "record", false, "Archive the run in the database")
	replayCmd.Flags().BoolVar(&flagReplayHash, "hash", false, "Print only the trace hash")
}

func runReplay(cmd *cobra.Command, args []string) {
	sc, err := scenario.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if sc.Name == "" {
		sc.Name = args[0]
	}

	tr := scenario.Run(sc)

	if flagReplayHash {
		fmt.Printf("%016x\n", tr.Hash())
	} else {
		out := os.Stdout
		if flagReplayOut != "" {
			f, createErr := os.Create(flagReplayOut)
			if createErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", createErr)
				os.Exit(1)
			}
			defer f.Close()
			out = f
		}
		if err := tr.WriteCSV(out); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing trace: %v\n", err)
			os.Exit(1)
		}
	}

	if flagReplayRecord {
		recordRun(sc.Name, tr)
	}
}

// recordRun archives a completed trace and reports hash drift against the
// previous run of the same scenario.
func recordRun(name string, tr scenario.Trace) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run archive: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	prev, havePrev, err := store.LastHash(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading run archive: %v\n", err)
		os.Exit(1)
	}

	_, err = store.SaveRun(storage.RunRecord{
		Scenario:  name,
		Frames:    len(tr.Frames),
		TraceHash: tr.Hash(),
		FinalX:    float64(tr.Final.X),
		FinalY:    float64(tr.Final.Y),
		Jumped:    tr.Jumped,
		Landed:    tr.Landed,
		Bonked:    tr.Bonked,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error archiving run: %v\n", err)
		os.Exit(1)
	}

	if havePrev && prev != tr.Hash() {
		fmt.Fprintf(os.Stderr, "Warning: trace hash changed for %q: %016x -> %016x\n",
			name, prev, tr.Hash())
	}
}
