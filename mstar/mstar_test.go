package mstar

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alimnaqvi/etf-analyzer"
)

const sampleDocument = `{
  "masterPortfolioId": "12345",
  "equityHoldingPage": {
    "pageSize": 25,
    "holdingList": [
      {
        "securityName": "Apple Inc",
        "country": "United States",
        "sector": "Technology",
        "weighting": 4.52,
        "holdingType": "Equity"
      },
      {
        "securityName": "ASML Holding NV",
        "country": "Netherlands",
        "sector": "Technology",
        "weighting": "1,23",
        "holdingType": "Equity"
      }
    ]
  },
  "boldHoldingPage": {
    "pageSize": 25,
    "holdingList": [
      {
        "securityName": "US Treasury N/B 4.5%",
        "country": "United States",
        "weighting": 0.8,
        "holdingType": "Bond"
      }
    ]
  }
}`

func TestDecodeHoldings(t *testing.T) {
	holdings, err := DecodeHoldings(strings.NewReader(sampleDocument))
	if err != nil {
		t.Fatalf("DecodeHoldings: %v", err)
	}
	if got, want := len(holdings), 3; got != want {
		t.Fatalf("got %d holdings, want %d: %+v", got, want, holdings)
	}

	byName := make(map[string]analyzer.Holding, len(holdings))
	for _, h := range holdings {
		byName[h.SecurityName] = h
	}

	apple := byName["Apple Inc"]
	if apple.Weighting != 4.52 || apple.Country != "United States" || apple.HoldingType != "Equity" {
		t.Errorf("Apple Inc = %+v", apple)
	}
	// The API sometimes encodes weights as comma-decimal strings.
	if asml := byName["ASML Holding NV"]; asml.Weighting != 1.23 {
		t.Errorf("ASML weighting = %v, want 1.23", asml.Weighting)
	}
	// Missing sector stays empty here; defaulting happens at read-back.
	if bond := byName["US Treasury N/B 4.5%"]; bond.Sector != "" || bond.HoldingType != "Bond" {
		t.Errorf("bond = %+v", bond)
	}
}

func TestDecodeHoldingsEmpty(t *testing.T) {
	if _, err := DecodeHoldings(strings.NewReader(`{"noHoldings": true}`)); err == nil {
		t.Error("expected an error for a document without holdings")
	}
	if _, err := DecodeHoldings(strings.NewReader(`not json`)); err == nil {
		t.Error("expected an error for invalid JSON")
	}
}

func TestEncodeCacheRoundTrip(t *testing.T) {
	holdings, err := DecodeHoldings(strings.NewReader(sampleDocument))
	if err != nil {
		t.Fatalf("DecodeHoldings: %v", err)
	}

	var buf bytes.Buffer
	if err := EncodeCache(&buf, holdings); err != nil {
		t.Fatalf("EncodeCache: %v", err)
	}

	// The cache file must read back through the exposure loader.
	decoded, err := analyzer.DecodeHoldings(&buf)
	if err != nil {
		t.Fatalf("analyzer.DecodeHoldings: %v", err)
	}
	if len(decoded) != len(holdings) {
		t.Fatalf("got %d holdings after round trip, want %d", len(decoded), len(holdings))
	}
	if decoded[0].SecurityName != "Apple Inc" || decoded[0].Weighting != 4.52 {
		t.Errorf("decoded[0] = %+v", decoded[0])
	}
	// The empty sector reads back as the Unknown bucket.
	if decoded[2].Sector != "Unknown" {
		t.Errorf("decoded[2].Sector = %q, want Unknown", decoded[2].Sector)
	}
}
