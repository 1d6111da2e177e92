package analyzer

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"
)

// fundListColumns is the required column set of the fund reference table.
var fundListColumns = []string{"Fund name", "ISIN"}

// Fund is one entry of the fund reference table.
type Fund struct {
	ISIN string
	Name string
	// Slug is the filesystem-safe cache key for the fund's holdings snapshot.
	Slug string
}

// FundList maps fund identifiers to display names and holdings-cache slugs.
// All joins against it are left-outer: an unknown identifier falls back to
// itself as the name.
type FundList struct {
	byISIN map[string]Fund
}

// DecodeFundList reads the fund reference CSV. "Fund name" and "ISIN" are
// required; a "Slug" column is optional and derived from the fund name when
// absent.
func DecodeFundList(r io.Reader) (*FundList, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read funds list header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range fundListColumns {
		if _, ok := col[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("funds list file is missing required columns: %v", missing)
	}

	list := &FundList{byISIN: make(map[string]Fund)}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read funds list row: %w", err)
		}
		fund := Fund{
			ISIN: strings.TrimSpace(record[col["ISIN"]]),
			Name: strings.TrimSpace(record[col["Fund name"]]),
		}
		if i, ok := col["Slug"]; ok {
			fund.Slug = strings.TrimSpace(record[i])
		}
		if fund.Slug == "" {
			fund.Slug = Slugify(fund.Name)
		}
		if fund.ISIN != "" {
			list.byISIN[fund.ISIN] = fund
		}
	}
	return list, nil
}

// NewFundList creates a fund list from entries, deriving missing slugs.
func NewFundList(funds ...Fund) *FundList {
	list := &FundList{byISIN: make(map[string]Fund, len(funds))}
	for _, f := range funds {
		if f.Slug == "" {
			f.Slug = Slugify(f.Name)
		}
		list.byISIN[f.ISIN] = f
	}
	return list
}

// Name returns the display name for an identifier, falling back to the
// identifier itself when unknown.
func (l *FundList) Name(isin string) string {
	if f, ok := l.byISIN[isin]; ok && f.Name != "" {
		return f.Name
	}
	return isin
}

// Slug returns the holdings-cache key for an identifier and whether the fund
// is known at all.
func (l *FundList) Slug(isin string) (string, bool) {
	f, ok := l.byISIN[isin]
	return f.Slug, ok
}
