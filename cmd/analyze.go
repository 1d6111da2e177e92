package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/alimnaqvi/etf-analyzer/renderer"
	"github.com/google/subcommands"
)

// analyzeCmd holds the flags for the 'analyze' subcommand.
type analyzeCmd struct {
	inputDir   string
	file       string
	outputRoot string
	fundsFile  string
	date       string
}

func (*analyzeCmd) Name() string { return "analyze" }
func (*analyzeCmd) Synopsis() string {
	return "run the full transactions analysis and write the report tables"
}
func (*analyzeCmd) Usage() string {
	return `etfa analyze [-i <dir>] [-f <file>] [-o <dir>] [-d <date>]

  Reads the newest transactions export, reconstructs prices, computes yearly
  and money-weighted returns, and writes the report tables under
  <output-root>/<export-date>/.
`
}

func (c *analyzeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputDir, "i", defaultInputDir, "Directory scanned for the newest transactions export.")
	f.StringVar(&c.file, "f", "", "Transactions file to analyze. Overrides -i.")
	f.StringVar(&c.outputRoot, "o", defaultOutputRoot, "Root directory for the report tables.")
	f.StringVar(&c.fundsFile, "funds", defaultFundsFile, "Fund list CSV mapping ISINs to names.")
	f.StringVar(&c.date, "d", "", "Reference date (YYYY-MM-DD). Defaults to the newest transaction's date.")
}

func (c *analyzeCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, _, tag, err := runAnalysis(c.inputDir, c.file, c.fundsFile, c.date)
	if err != nil {
		return fail(err)
	}

	dir := outputDir(c.outputRoot, tag)
	if err := report.Encode(dir); err != nil {
		return fail(err)
	}
	fmt.Printf("Report written to %s\n", dir)

	printMarkdown(renderer.SummaryMarkdown(report.FundSummaries, report.Portfolio))

	return subcommands.ExitSuccess
}
