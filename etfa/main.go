package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/alimnaqvi/etf-analyzer/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the CLI for shell completion. Run
// `COMP_INSTALL=1 etfa` once to install it.
var completion = &complete.Command{
	Sub: map[string]*complete.Command{
		"analyze": {Flags: map[string]complete.Predictor{
			"i":     predict.Dirs("*"),
			"f":     predict.Files("*.csv"),
			"o":     predict.Dirs("*"),
			"funds": predict.Files("*.csv"),
			"d":     predict.Nothing,
		}},
		"summary": {Flags: map[string]complete.Predictor{
			"i":     predict.Dirs("*"),
			"f":     predict.Files("*.csv"),
			"funds": predict.Files("*.csv"),
			"d":     predict.Nothing,
		}},
		"returns": {Flags: map[string]complete.Predictor{
			"i":     predict.Dirs("*"),
			"f":     predict.Files("*.csv"),
			"funds": predict.Files("*.csv"),
			"d":     predict.Nothing,
		}},
		"exposure": {Flags: map[string]complete.Predictor{
			"v":     predict.Files("*.csv"),
			"funds": predict.Files("*.csv"),
			"cache": predict.Dirs("*"),
			"o":     predict.Dirs("*"),
		}},
		"import-holdings": {
			Flags: map[string]complete.Predictor{"cache": predict.Dirs("*")},
			Args:  predict.Files("*.json"),
		},
		"assist": {Flags: map[string]complete.Predictor{"r": predict.Dirs("*")}},
		"topic":  {Args: predict.Set{"readme", "formats", "returns", "exposure", "*"}},
	},
}

func main() {
	completion.Complete("etfa")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
