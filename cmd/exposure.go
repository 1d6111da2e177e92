package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/alimnaqvi/etf-analyzer"
	"github.com/alimnaqvi/etf-analyzer/renderer"
	"github.com/google/subcommands"
)

// exposureCmd holds the flags for the 'exposure' subcommand.
type exposureCmd struct {
	valuationFile string
	fundsFile     string
	cacheDir      string
	outputRoot    string
	tag           string
	top           int
}

func (*exposureCmd) Name() string { return "exposure" }
func (*exposureCmd) Synopsis() string {
	return "break the portfolio down by country, sector and company"
}
func (*exposureCmd) Usage() string {
	return `etfa exposure -v <valuation.csv> [-cache <dir>] [-o <dir>]

  Looks through each held fund into its cached holdings and aggregates the
  account's market value by country, sector and company. Funds without
  cached holdings are reported under "Other / Data Unavailable".
`
}

func (c *exposureCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.valuationFile, "v", "", "Account valuation CSV export.")
	f.StringVar(&c.fundsFile, "funds", defaultFundsFile, "Fund list CSV mapping ISINs to names and slugs.")
	f.StringVar(&c.cacheDir, "cache", defaultCacheDir, "Directory holding one holdings CSV per fund slug.")
	f.StringVar(&c.outputRoot, "o", defaultOutputRoot, "Root directory for the exposure tables.")
	f.StringVar(&c.tag, "tag", "", "Subfolder name for the tables. Defaults to the valuation file's date.")
	f.IntVar(&c.top, "top", 15, "Rows displayed per dimension. 0 shows everything.")
}

func (c *exposureCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.valuationFile == "" {
		fmt.Fprintln(os.Stderr, "Error: -v <valuation.csv> is required")
		return subcommands.ExitUsageError
	}

	f, err := os.Open(c.valuationFile)
	if err != nil {
		return fail(fmt.Errorf("cannot open valuation file %q: %w", c.valuationFile, err))
	}
	valuation, err := analyzer.DecodeValuation(f)
	f.Close()
	if err != nil {
		return fail(err)
	}

	funds, err := decodeFundList(c.fundsFile)
	if err != nil {
		return fail(err)
	}

	exposure, err := analyzer.BuildExposure(valuation, funds, analyzer.DirHoldingsSource{Dir: c.cacheDir})
	if err != nil {
		return fail(err)
	}

	tag := c.tag
	if tag == "" {
		if t, ok := analyzer.FileTag(c.valuationFile); ok {
			tag = t
		} else {
			tag = "exposure"
		}
	}
	dir := outputDir(c.outputRoot, tag)
	if err := exposure.Encode(dir); err != nil {
		return fail(err)
	}
	fmt.Printf("Exposure tables written to %s\n", dir)

	printMarkdown(renderer.ExposureMarkdown(exposure, c.top))

	return subcommands.ExitSuccess
}
