package cmd

import (
	"context"
	"flag"

	"github.com/alimnaqvi/etf-analyzer/renderer"
	"github.com/google/subcommands"
)

// returnsCmd holds the flags for the 'returns' subcommand.
type returnsCmd struct {
	inputDir  string
	file      string
	fundsFile string
	date      string
}

func (*returnsCmd) Name() string     { return "returns" }
func (*returnsCmd) Synopsis() string { return "display yearly returns by fund and for the portfolio" }
func (*returnsCmd) Usage() string {
	return `etfa returns [-i <dir>] [-f <file>] [-d <date>]

  Displays the calendar-year returns of every fund and the value-weighted
  portfolio blend.
`
}

func (c *returnsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputDir, "i", defaultInputDir, "Directory scanned for the newest transactions export.")
	f.StringVar(&c.file, "f", "", "Transactions file to analyze. Overrides -i.")
	f.StringVar(&c.fundsFile, "funds", defaultFundsFile, "Fund list CSV mapping ISINs to names.")
	f.StringVar(&c.date, "d", "", "Reference date (YYYY-MM-DD). Defaults to the newest transaction's date.")
}

func (c *returnsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, _, _, err := runAnalysis(c.inputDir, c.file, c.fundsFile, c.date)
	if err != nil {
		return fail(err)
	}

	printMarkdown(renderer.ReturnsMarkdown(report.FundYearly, report.PortfolioYearly))

	return subcommands.ExitSuccess
}
