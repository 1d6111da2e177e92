// Package mstar normalizes raw Morningstar holdings responses into the
// holdings cache format.
//
// The holdings endpoint returns one JSON document per fund with the full
// portfolio split across several "pages" (equity, bond, other). Each page
// carries a holdingList array whose entries hold the security name, its
// weight in the fund and the classification fields.
package mstar

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/alimnaqvi/etf-analyzer"
)

// holdingListPaths are the pages a holdings document can carry, queried in
// a fixed order so the cache output is deterministic.
var holdingListPaths = []string{
	"$.equityHoldingPage.holdingList",
	"$.boldHoldingPage.holdingList",
	"$.otherHoldingPage.holdingList",
}

// DecodeHoldings extracts the holdings of one fund from a raw Morningstar
// JSON document.
func DecodeHoldings(r io.Reader) ([]analyzer.Holding, error) {
	var jobj any
	if err := json.NewDecoder(r).Decode(&jobj); err != nil {
		return nil, fmt.Errorf("cannot decode holdings document: %w", err)
	}

	var holdings []analyzer.Holding
	for _, path := range holdingListPaths {
		jval, err := jsonpath.Get(path, jobj)
		if err != nil {
			// Funds do not carry every page.
			continue
		}
		jentries, ok := jval.([]any)
		if !ok {
			continue
		}
		for _, jentry := range jentries {
			entry, ok := jentry.(map[string]any)
			if !ok {
				continue
			}
			holdings = append(holdings, analyzer.Holding{
				SecurityName: jstring(entry, "securityName"),
				Country:      jstring(entry, "country"),
				Sector:       jstring(entry, "sector"),
				Weighting:    jfloat(entry, "weighting"),
				HoldingType:  jstring(entry, "holdingType"),
			})
		}
	}
	if len(holdings) == 0 {
		return nil, fmt.Errorf("document has no holdingList entries")
	}
	return holdings, nil
}

// EncodeCache writes holdings in the cache CSV format read back by the
// exposure report.
func EncodeCache(w io.Writer, holdings []analyzer.Holding) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"securityName", "country", "sector", "weighting", "holdingType"}); err != nil {
		return err
	}
	for _, h := range holdings {
		record := []string{
			h.SecurityName,
			h.Country,
			h.Sector,
			strconv.FormatFloat(h.Weighting, 'g', -1, 64),
			h.HoldingType,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func jstring(entry map[string]any, key string) string {
	s, _ := entry[key].(string)
	return strings.TrimSpace(s)
}

// jfloat reads a float field, tolerating the string encoding this API
// sometimes uses.
func jfloat(entry map[string]any, key string) float64 {
	switch v := entry[key].(type) {
	case float64:
		return v
	case string:
		v = strings.ReplaceAll(v, ",", ".")
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
