package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/waci/renderer"
	"github.com/google/subcommands"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	json          bool
	noWarnings    bool
	noAssumptions bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "compare the WACI of the portfolio and its benchmark" }
func (*reportCmd) Usage() string {
	return `waci report [-json] [-no-warnings] [-no-assumptions]

  Computes the Weighted Average Carbon Intensity of the portfolio and of the
  benchmark, and breaks both down by category group.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "Print the report as JSON")
	f.BoolVar(&c.noWarnings, "no-warnings", false, "Do not list the data quality warnings")
	f.BoolVar(&c.noAssumptions, "no-assumptions", false, "Do not print the assumptions footer")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, r, err := ComputeReport()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing report: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding report: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.RenderReport(renderer.NewReport(r), renderer.ReportRenderOptions{
		SkipWarnings:    c.noWarnings,
		SkipAssumptions: c.noAssumptions,
	}))
	return subcommands.ExitSuccess
}
