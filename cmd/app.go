// Package cmd implements the CLI application to analyze an ETF account.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alimnaqvi/etf-analyzer"
	"github.com/alimnaqvi/etf-analyzer/date"
	"github.com/google/subcommands"
)

// Default locations, all relative to the working directory. As a CLI
// application with a short lived lifecycle, flags just override these.
const (
	defaultInputDir   = "."
	defaultOutputRoot = "output"
	defaultFundsFile  = "funds_list.csv"
	defaultCacheDir   = "mstar-data-cache"
)

// decodeLedger loads the transactions export. An empty file name picks the
// newest export in dir. It returns the ledger and the export's date tag,
// used to name the output folder.
func decodeLedger(dir, file string) (*analyzer.Ledger, string, error) {
	path := file
	if path == "" {
		var err error
		path, err = analyzer.PickLatestTransactionsFile(dir)
		if err != nil {
			return nil, "", err
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("cannot open transactions file %q: %w", path, err)
	}
	defer f.Close()

	ledger, err := analyzer.DecodeLedger(f)
	if err != nil {
		return nil, "", fmt.Errorf("cannot decode transactions file %q: %w", path, err)
	}

	tag, ok := analyzer.FileTag(path)
	if !ok {
		tag = date.Today().String()
	}
	return ledger, tag, nil
}

// decodeFundList loads the ISIN to name/slug table. A missing file is not an
// error: funds simply keep their ISIN as display name.
func decodeFundList(path string) (*analyzer.FundList, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return analyzer.NewFundList(), nil
		}
		return nil, fmt.Errorf("cannot open fund list %q: %w", path, err)
	}
	defer f.Close()

	funds, err := analyzer.DecodeFundList(f)
	if err != nil {
		return nil, fmt.Errorf("cannot decode fund list %q: %w", path, err)
	}
	return funds, nil
}

// parseAsOf parses an optional -d flag. Empty means "derive from the ledger"
// and returns the zero date.
func parseAsOf(s string) (date.Date, error) {
	if s == "" {
		return date.Date{}, nil
	}
	return date.Parse(s)
}

// runAnalysis is the shared body of the reporting commands: load inputs,
// run the pipeline.
func runAnalysis(inputDir, file, fundsFile, asOfFlag string) (*analyzer.Analytics, *analyzer.FundList, string, error) {
	asOf, err := parseAsOf(asOfFlag)
	if err != nil {
		return nil, nil, "", fmt.Errorf("cannot parse date: %w", err)
	}
	ledger, tag, err := decodeLedger(inputDir, file)
	if err != nil {
		return nil, nil, "", err
	}
	funds, err := decodeFundList(fundsFile)
	if err != nil {
		return nil, nil, "", err
	}
	report, err := analyzer.Analyze(ledger, funds, asOf)
	if err != nil {
		return nil, nil, "", err
	}
	return report, funds, tag, nil
}

// fail prints err and converts it to an exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}

func outputDir(root, tag string) string {
	return filepath.Join(root, tag)
}
