package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/waci/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	name := path.Base(os.Args[0])
	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	completion(commander).Complete(name)

	flag.Parse()

	if sub := flag.Arg(0); sub != "" && !registered(commander, sub) {
		if found, code := cmd.RunExtension(sub, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

// registered tells whether name is a command of the commander.
func registered(commander *subcommands.Commander, name string) bool {
	found := false
	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		if c.Name() == name {
			found = true
		}
	})
	return found
}

// completion describes the command line for shell completion: the global
// flags and every subcommand with its own flags.
func completion(commander *subcommands.Commander) *complete.Command {
	csv := predict.Files("*.csv")
	root := &complete.Command{
		Flags: map[string]complete.Predictor{
			"config":    predict.Files("*.toml"),
			"idmap":     csv,
			"portfolio": csv,
			"benchmark": csv,
			"carbon":    csv,
			"currency":  predict.Set{"USD", "EUR", "GBP", "CHF", "JPY"},
			"v":         predict.Nothing,
		},
		Sub: map[string]*complete.Command{},
	}
	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		sub := &complete.Command{Flags: map[string]complete.Predictor{}}
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		fs.VisitAll(func(f *flag.Flag) {
			sub.Flags[f.Name] = predict.Something
		})
		root.Sub[c.Name()] = sub
	})
	root.Sub["holdings"].Flags["b"] = predict.Set{"portfolio", "benchmark"}
	root.Sub["chart"].Flags["o"] = predict.Files("*.pdf")
	return root
}
