// Package cmd implements the CLI application to compare the carbon intensity
// of a portfolio with its benchmark.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/waci"
	"github.com/etnz/waci/config"
	"github.com/google/subcommands"
	log "github.com/sirupsen/logrus"
)

// Commands lists the subcommands of the application, main registers them all.
var Commands = []subcommands.Command{
	&reportCmd{},
	&holdingsCmd{},
	&weightsCmd{},
	&chartCmd{},
	&checkCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile    = flag.String("config", "", "Path to the TOML configuration file (default "+config.DefaultFile+" when present)")
	idmapFile     = flag.String("idmap", "", "Path to the ticker to SEDOL map (CSV)")
	portfolioFile = flag.String("portfolio", "", "Path to the portfolio holdings (CSV)")
	benchmarkFile = flag.String("benchmark", "", "Path to the benchmark holdings (CSV)")
	carbonFile    = flag.String("carbon", "", "Path to the carbon data (CSV)")
	currency      = flag.String("currency", "", "Currency of the portfolio prices (default USD)")
	verbose       = flag.Bool("v", false, "Log debug messages")
)

// loadConfig reads the configuration and applies the global flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	cfg.ApplyFlagOverrides(waci.Files{
		IDMap:     *idmapFile,
		Portfolio: *portfolioFile,
		Benchmark: *benchmarkFile,
		Carbon:    *carbonFile,
	}, *currency, *verbose)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	log.SetLevel(cfg.LogLevel())
	return cfg, nil
}

// DecodeTables loads the configuration and the four input tables.
func DecodeTables() (*config.Config, waci.Tables, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, waci.Tables{}, err
	}
	defer trackTime("DecodeTables", time.Now())
	t, err := waci.LoadTables(cfg.Files, cfg.Currency)
	if err != nil {
		return nil, waci.Tables{}, err
	}
	log.WithFields(log.Fields{
		"tickers":   t.IDMap.Len(),
		"portfolio": len(t.Portfolio),
		"benchmark": len(t.Benchmark),
		"carbon":    t.Emissions.Len(),
	}).Debug("Loaded tables")
	return cfg, t, nil
}

// ComputeReport loads the input tables and runs the WACI pipeline. Warnings
// of the run are logged.
func ComputeReport() (*config.Config, *waci.Report, error) {
	cfg, t, err := DecodeTables()
	if err != nil {
		return nil, nil, err
	}
	defer trackTime("Compute", time.Now())
	r, err := waci.Compute(t)
	if err != nil {
		return nil, nil, err
	}
	logWarnings(r.Warnings)
	return cfg, r, nil
}

func logWarnings(warnings []waci.Warning) {
	for _, w := range warnings {
		fields := log.Fields{"code": w.Code}
		if w.Branch != "" {
			fields["branch"] = w.Branch
		}
		if w.Ticker != "" {
			fields["ticker"] = w.Ticker
		}
		log.WithFields(fields).Warn(w.Message)
	}
}

func trackTime(name string, start time.Time) {
	log.Debugf("%s took %d ms", name, time.Since(start).Milliseconds())
}

// printMarkdown renders md for the terminal, or prints it raw when it cannot.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		log.Debugf("cannot render markdown: %v", err)
		fmt.Print(md)
		return
	}
	fmt.Fprint(os.Stdout, out)
}
