package analyzer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DirHoldingsSource serves holdings snapshots from a cache directory of
// per-fund CSV files named <slug>.csv, the layout the holdings extraction
// collaborator maintains.
type DirHoldingsSource struct {
	Dir string
}

// Holdings implements HoldingsSource. A missing cache file reports
// cached=false; any other read or parse failure is an error.
func (s DirHoldingsSource) Holdings(slug string) ([]Holding, bool, error) {
	f, err := os.Open(filepath.Join(s.Dir, slug+".csv"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cannot open holdings cache %q: %w", slug, err)
	}
	defer f.Close()

	holdings, err := DecodeHoldings(f)
	if err != nil {
		return nil, false, fmt.Errorf("cannot decode holdings cache %q: %w", slug, err)
	}
	return holdings, true, nil
}

// MapHoldingsSource is an in-memory HoldingsSource, convenient in tests.
type MapHoldingsSource map[string][]Holding

func (s MapHoldingsSource) Holdings(slug string) ([]Holding, bool, error) {
	holdings, ok := s[slug]
	return holdings, ok, nil
}
