package analyzer

import (
	"math"
	"strings"
	"testing"
)

func TestDecodeValuation(t *testing.T) {
	valuation := `Fund name,ISIN,2025-07-01 Market Value in Account (EUR)
Global All Cap,IE00B3RBWM25,7500.00
EM IMI,IE00BKM4GZ66,2500.00
`
	rows, err := DecodeValuation(strings.NewReader(valuation))
	if err != nil {
		t.Fatalf("DecodeValuation: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].ISIN != "IE00B3RBWM25" || rows[0].MarketValue != 7500.0 {
		t.Errorf("rows[0] = %+v", rows[0])
	}
}

func TestDecodeValuationMissingColumns(t *testing.T) {
	_, err := DecodeValuation(strings.NewReader("Fund name,Something\nx,y\n"))
	if err == nil {
		t.Fatal("expected an error for missing columns")
	}
	for _, col := range []string{"ISIN", "Market Value in Account"} {
		if !strings.Contains(err.Error(), col) {
			t.Errorf("error %q does not name %q", err, col)
		}
	}
}

func TestDecodeHoldings(t *testing.T) {
	snapshot := `securityName,country,sector,weighting,holdingType
Apple Inc,United States,Technology,4.5,Equity
,,Financial Services,2.0,Equity
US Treasury,United States,,1.0,Bond
`
	holdings, err := DecodeHoldings(strings.NewReader(snapshot))
	if err != nil {
		t.Fatalf("DecodeHoldings: %v", err)
	}
	if len(holdings) != 3 {
		t.Fatalf("got %d holdings, want 3", len(holdings))
	}
	if holdings[1].SecurityName != "Unknown" || holdings[1].Country != "Unknown" {
		t.Errorf("empty fields not defaulted: %+v", holdings[1])
	}
	if holdings[2].Sector != "Unknown" || holdings[2].HoldingType != "Bond" {
		t.Errorf("holdings[2] = %+v", holdings[2])
	}
}

func exposureFixture() ([]ValuationRow, *FundList, MapHoldingsSource) {
	valuation := []ValuationRow{
		{ISIN: "ISIN1", FundName: "Global All Cap", MarketValue: 8000},
		{ISIN: "ISIN2", FundName: "Obscure Fund", MarketValue: 2000},
	}
	funds := NewFundList(
		Fund{ISIN: "ISIN1", Name: "Global All Cap", Slug: "global-all-cap"},
		Fund{ISIN: "ISIN2", Name: "Obscure Fund", Slug: "obscure-fund"},
	)
	source := MapHoldingsSource{
		"global-all-cap": {
			{SecurityName: "Apple Inc", Country: "United States", Sector: "Technology", Weighting: 50, HoldingType: "Equity"},
			{SecurityName: "ASML", Country: "Netherlands", Sector: "Technology", Weighting: 30, HoldingType: "Equity"},
			{SecurityName: "Nestle SA", Country: "Switzerland", Sector: "Consumer Defensive", Weighting: 20, HoldingType: "Equity"},
		},
		// obscure-fund has no cached holdings.
	}
	return valuation, funds, source
}

func TestBuildExposure(t *testing.T) {
	valuation, funds, source := exposureFixture()

	e, err := BuildExposure(valuation, funds, source)
	if err != nil {
		t.Fatalf("BuildExposure: %v", err)
	}

	if e.TotalValue != 10000.0 {
		t.Fatalf("TotalValue = %v, want 10000", e.TotalValue)
	}

	find := func(records []ExposureRecord, key string) (ExposureRecord, bool) {
		for _, r := range records {
			if r.Key == key {
				return r, true
			}
		}
		return ExposureRecord{}, false
	}

	// The uncached fund lands in Other.
	apple, found := find(e.Company, "Apple Inc")
	if !found || apple.Value != 4000.0 {
		t.Errorf("Apple Inc = %+v, want 4000 of value", apple)
	}
	other, found := find(e.Company, "Other / Data Unavailable")
	if !found || other.Value != 2000.0 {
		t.Errorf("Other / Data Unavailable = %+v, want 2000 of value", other)
	}
	if _, found := find(e.Country, "Other"); !found {
		t.Error("no Other bucket in the country dimension")
	}

	// Sorted by weight descending.
	for _, records := range [][]ExposureRecord{e.Country, e.Sector, e.Company} {
		for i := 1; i < len(records); i++ {
			if records[i].Weight > records[i-1].Weight {
				t.Errorf("records not sorted by weight: %+v", records)
			}
		}
	}
}

func TestBuildExposureConservation(t *testing.T) {
	valuation, funds, source := exposureFixture()

	e, err := BuildExposure(valuation, funds, source)
	if err != nil {
		t.Fatalf("BuildExposure: %v", err)
	}

	// Every dimension's weights sum to 100% of the account value, whether
	// or not each fund has holdings data.
	for name, records := range map[string][]ExposureRecord{
		"country": e.Country,
		"sector":  e.Sector,
		"company": e.Company,
	} {
		total := Percent(0)
		for _, r := range records {
			total += r.Weight
		}
		if math.Abs(float64(total)-100.0) > 1e-9 {
			t.Errorf("%s weights sum to %v, want 100", name, total)
		}
	}
}

func TestBuildExposureEquityFilter(t *testing.T) {
	// Classified snapshots keep equity rows only.
	valuation := []ValuationRow{{ISIN: "ISIN1", FundName: "A", MarketValue: 1000}}
	funds := NewFundList(Fund{ISIN: "ISIN1", Name: "A", Slug: "a"})
	source := MapHoldingsSource{
		"a": {
			{SecurityName: "X", Country: "France", Sector: "Industrials", Weighting: 60, HoldingType: "Equity"},
			{SecurityName: "US Treasury", Country: "United States", Sector: "Unknown", Weighting: 40, HoldingType: "Bond"},
		},
	}

	e, err := BuildExposure(valuation, funds, source)
	if err != nil {
		t.Fatalf("BuildExposure: %v", err)
	}
	if len(e.Company) != 1 {
		t.Fatalf("got %d companies, want 1: %+v", len(e.Company), e.Company)
	}
	if e.Company[0].Key != "X" || e.Company[0].Value != 600.0 {
		t.Errorf("Company[0] = %+v, want X at 600", e.Company[0])
	}
}

func TestBuildExposureUnclassifiedSnapshot(t *testing.T) {
	// A snapshot without any holdingType is taken whole.
	valuation := []ValuationRow{{ISIN: "ISIN1", FundName: "A", MarketValue: 1000}}
	funds := NewFundList(Fund{ISIN: "ISIN1", Name: "A", Slug: "a"})
	source := MapHoldingsSource{
		"a": {
			{SecurityName: "X", Country: "France", Sector: "Industrials", Weighting: 60},
			{SecurityName: "Y", Country: "Germany", Sector: "Industrials", Weighting: 40},
		},
	}

	e, err := BuildExposure(valuation, funds, source)
	if err != nil {
		t.Fatalf("BuildExposure: %v", err)
	}
	if len(e.Company) != 2 {
		t.Fatalf("got %d companies, want 2: %+v", len(e.Company), e.Company)
	}
	if e.Company[0].Key != "X" || e.Company[0].Value != 600.0 {
		t.Errorf("Company[0] = %+v, want X at 600", e.Company[0])
	}
}

func TestBuildExposureUnknownFund(t *testing.T) {
	// A valuation row not in the fund list falls back to a slug derived
	// from the fund name.
	valuation := []ValuationRow{{ISIN: "ISIN9", FundName: "Mystery Fund", MarketValue: 500}}
	source := MapHoldingsSource{
		"mystery-fund": {
			{SecurityName: "Z", Country: "Japan", Sector: "Utilities", Weighting: 100, HoldingType: "Equity"},
		},
	}

	e, err := BuildExposure(valuation, NewFundList(), source)
	if err != nil {
		t.Fatalf("BuildExposure: %v", err)
	}
	if len(e.Company) != 1 || e.Company[0].Key != "Z" {
		t.Errorf("Company = %+v, want only Z", e.Company)
	}
}
