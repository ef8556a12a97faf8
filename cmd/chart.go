package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/waci/chart"
	"github.com/google/subcommands"
	log "github.com/sirupsen/logrus"
)

// chartCmd holds the flags for the 'chart' subcommand.
type chartCmd struct {
	output string
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "draw the category group breakdown as a PDF bar chart" }
func (*chartCmd) Usage() string {
	return `waci chart [-o <file.pdf>]

  Draws one bar per category group of the portfolio: the portfolio WACI with
  the benchmark WACI stacked on top of it.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output PDF file (default from the configuration, waci_breakdown.pdf)")
}

func (c *chartCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, r, err := ComputeReport()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing report: %v\n", err)
		return subcommands.ExitFailure
	}
	output := c.output
	if output == "" {
		output = cfg.Chart.Path
	}

	file, err := os.Create(output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating chart file %q: %v\n", output, err)
		return subcommands.ExitFailure
	}
	if err := chart.New(r.Breakdown).WritePDF(file); err != nil {
		file.Close()
		fmt.Fprintf(os.Stderr, "Error writing chart %q: %v\n", output, err)
		return subcommands.ExitFailure
	}
	if err := file.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing chart %q: %v\n", output, err)
		return subcommands.ExitFailure
	}
	log.WithField("path", output).Info("Chart written")
	return subcommands.ExitSuccess
}
