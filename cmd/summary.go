package cmd

import (
	"context"
	"flag"

	"github.com/alimnaqvi/etf-analyzer/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	inputDir  string
	file      string
	fundsFile string
	date      string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the investment summary" }
func (*summaryCmd) Usage() string {
	return `etfa summary [-i <dir>] [-f <file>] [-d <date>]

  Displays the per-fund and portfolio investment summary without writing
  any report file.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputDir, "i", defaultInputDir, "Directory scanned for the newest transactions export.")
	f.StringVar(&c.file, "f", "", "Transactions file to analyze. Overrides -i.")
	f.StringVar(&c.fundsFile, "funds", defaultFundsFile, "Fund list CSV mapping ISINs to names.")
	f.StringVar(&c.date, "d", "", "Reference date (YYYY-MM-DD). Defaults to the newest transaction's date.")
}

func (c *summaryCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, _, _, err := runAnalysis(c.inputDir, c.file, c.fundsFile, c.date)
	if err != nil {
		return fail(err)
	}

	printMarkdown(renderer.SummaryMarkdown(report.FundSummaries, report.Portfolio))

	return subcommands.ExitSuccess
}
