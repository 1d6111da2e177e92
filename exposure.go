package analyzer

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"sort"
	"strconv"
	"strings"
)

// unknownField is the default for holdings rows missing a dimension field:
// the row keeps contributing value instead of being dropped.
const unknownField = "Unknown"

// Catch-all bucket for funds without cached holdings data. Attributing their
// full market value here keeps the exposure totals conserved at 100%.
const (
	otherSecurityName = "Other / Data Unavailable"
	otherBucket       = "Other"
)

// Holding is one security inside a fund's holdings snapshot, with its weight
// in the fund on a 0-100 scale.
type Holding struct {
	SecurityName string
	Country      string
	Sector       string
	Weighting    float64
	// HoldingType classifies the security (Equity, Bond, Cash...). Empty when
	// the snapshot has no classification column.
	HoldingType string
}

// ValuationRow is one position of the account valuation table: a held fund
// and its absolute market value in the account.
type ValuationRow struct {
	ISIN        string
	FundName    string
	MarketValue float64
}

// ExposureRecord is the aggregated market value and portfolio weight of one
// dimension key (a country, a sector, or a company).
type ExposureRecord struct {
	Key    string
	Value  float64
	Weight Percent
}

// Exposure holds the three dimension breakdowns of the account, each sorted
// descending by weight.
type Exposure struct {
	Country    []ExposureRecord
	Sector     []ExposureRecord
	Company    []ExposureRecord
	TotalValue float64
}

// HoldingsSource looks up a fund's cached holdings snapshot by its slug.
// The second result reports whether the cache has the fund at all: absence
// is a documented fallback, not an error.
type HoldingsSource interface {
	Holdings(slug string) ([]Holding, bool, error)
}

// DecodeHoldings reads one fund's holdings snapshot CSV. A "weighting"
// column is required; securityName/country/sector/holdingType are optional
// and default to Unknown (or empty for holdingType). Unparseable weights
// coerce to 0.
func DecodeHoldings(r io.Reader) ([]Holding, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read holdings header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	if _, ok := col["weighting"]; !ok {
		return nil, fmt.Errorf("holdings file is missing required columns: [weighting]")
	}

	optional := func(record []string, name, fallback string) string {
		i, ok := col[name]
		if !ok || strings.TrimSpace(record[i]) == "" {
			return fallback
		}
		return strings.TrimSpace(record[i])
	}

	var holdings []Holding
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read holdings row: %w", err)
		}
		weight, err := strconv.ParseFloat(strings.TrimSpace(record[col["weighting"]]), 64)
		if err != nil {
			weight = 0
		}
		holdings = append(holdings, Holding{
			SecurityName: optional(record, "securityName", unknownField),
			Country:      optional(record, "country", unknownField),
			Sector:       optional(record, "sector", unknownField),
			Weighting:    weight,
			HoldingType:  optional(record, "holdingType", ""),
		})
	}
	return holdings, nil
}

// DecodeValuation reads the account valuation CSV. The market-value column
// is located by substring ("Market Value in Account" with a date prefix in
// the broker export); ISIN and Fund name are required.
func DecodeValuation(r io.Reader) ([]ValuationRow, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read valuation header: %w", err)
	}

	col := make(map[string]int, len(header))
	valueCol := -1
	for i, name := range header {
		name = strings.TrimSpace(name)
		col[name] = i
		if strings.Contains(name, "Market Value in Account") {
			valueCol = i
		}
	}
	var missing []string
	for _, name := range []string{"Fund name", "ISIN"} {
		if _, ok := col[name]; !ok {
			missing = append(missing, name)
		}
	}
	if valueCol < 0 {
		missing = append(missing, "Market Value in Account")
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("valuation file is missing required columns: %v", missing)
	}

	var rows []ValuationRow
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read valuation row: %w", err)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(record[valueCol]), 64)
		if err != nil {
			value = 0
		}
		rows = append(rows, ValuationRow{
			ISIN:        strings.TrimSpace(record[col["ISIN"]]),
			FundName:    strings.TrimSpace(record[col["Fund name"]]),
			MarketValue: value,
		})
	}
	return rows, nil
}

// BuildExposure combines each held fund's holdings weights with the fund's
// absolute market value, then aggregates across the three dimensions.
//
// Holdings are filtered to equity-type securities when the snapshot carries
// a type classification; snapshots without one are taken whole. A fund with
// no cached holdings contributes its entire value to the "Other" bucket, so
// the sum over any dimension always equals the total account value.
func BuildExposure(valuation []ValuationRow, funds *FundList, source HoldingsSource) (*Exposure, error) {
	type contribution struct {
		security string
		country  string
		sector   string
		value    float64
	}

	total := 0.0
	var contributions []contribution
	for _, row := range valuation {
		total += row.MarketValue

		slug, known := funds.Slug(row.ISIN)
		if !known {
			slug = Slugify(row.FundName)
		}
		holdings, cached, err := source.Holdings(slug)
		if err != nil {
			return nil, fmt.Errorf("cannot load holdings for %s (%s): %w", row.FundName, slug, err)
		}
		if !cached {
			log.Printf("warning: no holdings cache for %s (%s), attributing %.2f to %q", row.FundName, slug, row.MarketValue, otherBucket)
			contributions = append(contributions, contribution{
				security: otherSecurityName,
				country:  otherBucket,
				sector:   otherBucket,
				value:    row.MarketValue,
			})
			continue
		}

		classified := false
		for _, h := range holdings {
			if h.HoldingType != "" {
				classified = true
				break
			}
		}
		for _, h := range holdings {
			if classified && !strings.EqualFold(h.HoldingType, "Equity") {
				continue
			}
			contributions = append(contributions, contribution{
				security: h.SecurityName,
				country:  h.Country,
				sector:   h.Sector,
				value:    h.Weighting / 100.0 * row.MarketValue,
			})
		}
	}

	aggregate := func(key func(contribution) string) []ExposureRecord {
		sums := make(map[string]float64)
		for _, c := range contributions {
			sums[key(c)] += c.value
		}
		records := make([]ExposureRecord, 0, len(sums))
		for k, v := range sums {
			weight := Percent(0)
			if total != 0 {
				weight = Percent(v / total * 100.0)
			}
			records = append(records, ExposureRecord{Key: k, Value: v, Weight: weight})
		}
		sort.SliceStable(records, func(i, j int) bool {
			if records[i].Weight != records[j].Weight {
				return records[i].Weight > records[j].Weight
			}
			return records[i].Key < records[j].Key // deterministic tie-break
		})
		return records
	}

	return &Exposure{
		Country:    aggregate(func(c contribution) string { return c.country }),
		Sector:     aggregate(func(c contribution) string { return c.sector }),
		Company:    aggregate(func(c contribution) string { return c.security }),
		TotalValue: total,
	}, nil
}
