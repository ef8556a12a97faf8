package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/waci"
	"github.com/etnz/waci/renderer"
	"github.com/google/subcommands"
)

// holdingsCmd holds the flags for the 'holdings' subcommand.
type holdingsCmd struct {
	branch string
	sort   bool
	json   bool
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display the weight and WACI of each holding" }
func (*holdingsCmd) Usage() string {
	return `waci holdings [-b portfolio|benchmark] [-s] [-json]

  Displays, for every complete holding of one branch, its weight, its carbon
  intensity and its contribution to the WACI.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.branch, "b", string(waci.Portfolio), "Holdings to display: portfolio or benchmark")
	f.BoolVar(&c.sort, "s", false, "Sort holdings by decreasing WACI contribution")
	f.BoolVar(&c.json, "json", false, "Print the holdings as JSON")
}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	kind := waci.Kind(c.branch)
	if kind != waci.Portfolio && kind != waci.Benchmark {
		fmt.Fprintf(os.Stderr, "Error: unknown holdings %q, want %q or %q\n", c.branch, waci.Portfolio, waci.Benchmark)
		return subcommands.ExitUsageError
	}

	_, r, err := ComputeReport()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing report: %v\n", err)
		return subcommands.ExitFailure
	}

	h := renderer.NewHoldings(r, kind, c.sort)
	if c.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(h); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding holdings: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RenderHoldings(h))
	return subcommands.ExitSuccess
}
