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

// checkCmd holds the flags for the 'check' subcommand.
type checkCmd struct {
	strict bool
}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "validate the input files and show the data coverage" }
func (*checkCmd) Usage() string {
	return `waci check [-strict]

  Reads the four input files, joins them and reports how many holdings are
  complete, dropped or without a finite intensity, with every warning.
  This is shown even when a side has no complete holding left, in which
  case the command fails.
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.strict, "strict", false, "Fail when there is any warning")
}

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, t, err := DecodeTables()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading input files: %v\n", err)
		return subcommands.ExitFailure
	}

	// an empty branch still shows the coverage and the warnings that emptied it
	r, err := waci.Check(t)
	if r != nil {
		printMarkdown(renderer.RenderCheck(renderer.NewReport(r)))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.strict && len(r.Warnings) > 0 {
		fmt.Fprintf(os.Stderr, "%d warnings\n", len(r.Warnings))
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
