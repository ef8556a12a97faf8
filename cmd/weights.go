package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/waci"
	"github.com/etnz/waci/renderer"
	"github.com/google/subcommands"
)

type weightsCmd struct{}

func (*weightsCmd) Name() string { return "weights" }
func (*weightsCmd) Synopsis() string {
	return "compare benchmark index weights with revenue based weights"
}
func (*weightsCmd) Usage() string {
	return `waci weights

  For every complete benchmark holding, compares its IndexWeight with the
  share of its revenue in the total revenue of the benchmark.
`
}

func (c *weightsCmd) SetFlags(f *flag.FlagSet) {}

func (c *weightsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, r, err := ComputeReport()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing report: %v\n", err)
		return subcommands.ExitFailure
	}

	cmp := waci.CompareRevenueWeights(r.Benchmark.Holdings)
	if cmp == nil {
		fmt.Fprintln(os.Stderr, "Error: the benchmark holdings have no revenue, revenue weights are undefined")
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderWeights(renderer.NewWeights(cmp)))
	return subcommands.ExitSuccess
}
