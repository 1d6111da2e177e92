package analyzer

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alimnaqvi/etf-analyzer/date"
)

func readFile(t *testing.T, dir, name string) (string, error) {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(dir, name))
	return string(b), err
}

func TestEncodeIdempotence(t *testing.T) {
	// Re-encoding the same analysis yields byte-identical tables.
	l := decodeSample(t)
	report, err := Analyze(l, NewFundList(), date.Date{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	encoders := map[string]func(*Analytics) (string, error){
		"prices": func(a *Analytics) (string, error) {
			var b bytes.Buffer
			err := EncodePriceHistory(&b, a.Prices)
			return b.String(), err
		},
		"fund returns": func(a *Analytics) (string, error) {
			var b bytes.Buffer
			err := EncodeFundYearlyReturns(&b, a.FundYearly)
			return b.String(), err
		},
		"portfolio returns": func(a *Analytics) (string, error) {
			var b bytes.Buffer
			err := EncodePortfolioYearlyReturns(&b, a.PortfolioYearly)
			return b.String(), err
		},
		"fund summary": func(a *Analytics) (string, error) {
			var b bytes.Buffer
			err := EncodeFundSummaries(&b, a.FundSummaries)
			return b.String(), err
		},
		"portfolio summary": func(a *Analytics) (string, error) {
			var b bytes.Buffer
			err := EncodePortfolioSummary(&b, a.Portfolio)
			return b.String(), err
		},
	}

	for name, encode := range encoders {
		first, err := encode(report)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if first == "" {
			t.Fatalf("%s: empty output", name)
		}

		again, err := Analyze(l, NewFundList(), date.Date{})
		if err != nil {
			t.Fatalf("Analyze again: %v", err)
		}
		second, err := encode(again)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if first != second {
			t.Errorf("%s: re-run output differs:\n%s\n---\n%s", name, first, second)
		}
	}
}

func TestEncodeNaN(t *testing.T) {
	var b bytes.Buffer
	summaries := []FundSummary{{
		ISIN:           "ISIN1",
		FundName:       "A",
		NetInvested:    M(-5.0),
		LatestPrice:    math.NaN(),
		TotalReturnPct: Percent(math.NaN()),
		MoneyWeighted:  Percent(math.NaN()),
	}}
	if err := EncodeFundSummaries(&b, summaries); err != nil {
		t.Fatalf("EncodeFundSummaries: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if want := "ISIN1,A,-5,NaN,0,0,NaN,NaN"; !strings.Contains(lines[1], "NaN") {
		t.Errorf("row %q has no NaN sentinel (want something like %q)", lines[1], want)
	}
}

func TestEncodePriceHistoryColumns(t *testing.T) {
	l := decodeSample(t)
	var b bytes.Buffer
	if err := EncodePriceHistory(&b, NewPriceHistory(l)); err != nil {
		t.Fatalf("EncodePriceHistory: %v", err)
	}
	header := strings.SplitN(b.String(), "\n", 2)[0]
	if want := "Date,ISIN,Type,UnitPrice"; header != want {
		t.Errorf("header = %q, want %q", header, want)
	}
}

func TestAnalyticsEncodeFiles(t *testing.T) {
	l := decodeSample(t)
	report, err := Analyze(l, NewFundList(), date.Date{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	dir := t.TempDir()
	if err := report.Encode(dir); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	for _, name := range []string{
		PriceHistoryFile,
		FundReturnsFile,
		PortfolioReturnsFile,
		FundSummaryFile,
		PortfolioSummaryFile,
	} {
		if _, err := readFile(t, dir, name); err != nil {
			t.Errorf("missing output table %s: %v", name, err)
		}
	}
}

func TestExposureEncodeFiles(t *testing.T) {
	valuation, funds, source := exposureFixture()
	e, err := BuildExposure(valuation, funds, source)
	if err != nil {
		t.Fatalf("BuildExposure: %v", err)
	}

	dir := t.TempDir()
	if err := e.Encode(dir); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	tests := []struct {
		file   string
		header string
	}{
		{ExposureCountryFile, "country,UserMarketValue,Weight"},
		{ExposureSectorFile, "sector,UserMarketValue,Weight"},
		{ExposureCompanyFile, "securityName,UserMarketValue,Weight"},
	}
	for _, tc := range tests {
		content, err := readFile(t, dir, tc.file)
		if err != nil {
			t.Errorf("missing output table %s: %v", tc.file, err)
			continue
		}
		header := strings.SplitN(content, "\n", 2)[0]
		if header != tc.header {
			t.Errorf("%s header = %q, want %q", tc.file, header, tc.header)
		}
	}
}
