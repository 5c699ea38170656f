package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bchelf/platlab/internal/scenario"
)

var traceCmd = &cobra.Command{
	Use:   "trace [name]",
	Short: "Run a built-in reference scenario and print its result",
	Long: `Run one of the built-in reference scenarios and print the final
snapshot plus the trace hash. For the "parity" scenario the hash is
checked against the cross-host reference value; a mismatch means this
build has broken floating-point parity.

Built-in scenarios: ` + strings.Join(scenario.BuiltinNames(), ", ") + `

Examples:
  platlab trace
  platlab trace parity
  platlab trace idle-drop`,
	Args: cobra.MaximumNArgs(1),
	Run:  runTrace,
}

func runTrace(cmd *cobra.Command, args []string) {
	name := "parity"
	if len(args) == 1 {
		name = args[0]
	}

	sc, err := scenario.Builtin(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Built-in scenarios: %s\n", strings.Join(scenario.BuiltinNames(), ", "))
		os.Exit(1)
	}

	tr := scenario.Run(sc)
	s := tr.Final

	fmt.Printf("{\"x\":%g,\"y\":%g,\"vx\":%g,\"vy\":%g,\"grounded\":%d,\"jumped\":%d,\"landed\":%d,\"bonked\":%d}\n",
		s.X, s.Y, s.VX, s.VY, s.Grounded, tr.Jumped, tr.Landed, tr.Bonked)
	fmt.Printf("trace_hash: %016x\n", tr.Hash())

	if name == "parity" {
		if tr.Hash() == scenario.ParityHash {
			fmt.Println("parity: OK")
		} else {
			fmt.Fprintf(os.Stderr, "parity: MISMATCH (want %016x)\n", scenario.ParityHash)
			os.Exit(1)
		}
	}
}
