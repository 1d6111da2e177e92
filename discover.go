package analyzer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/alimnaqvi/etf-analyzer/date"
)

// transactionsFilePattern matches the broker's dated export file names.
var transactionsFilePattern = regexp.MustCompile(`scalable_transactions_(\d{4}-\d{2}-\d{2})\.csv$`)

// ErrNoTransactionsFile marks the fatal "no matching input file" condition,
// distinguishable from a run that produced empty output.
var ErrNoTransactionsFile = errors.New("no transactions file found")

// PickLatestTransactionsFile scans a directory for files named
// scalable_transactions_YYYY-MM-DD.csv and returns the path of the newest by
// embedded date. It wraps ErrNoTransactionsFile when none match.
func PickLatestTransactionsFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("cannot scan transactions directory: %w", err)
	}

	type candidate struct {
		day  date.Date
		path string
	}
	var candidates []candidate
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := transactionsFilePattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		day, err := date.Parse(m[1])
		if err != nil {
			continue
		}
		candidates = append(candidates, candidate{day: day, path: filepath.Join(dir, entry.Name())})
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w matching scalable_transactions_YYYY-MM-DD.csv in %s", ErrNoTransactionsFile, dir)
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].day.Before(candidates[j].day) })
	return candidates[len(candidates)-1].path, nil
}

var fileDatePattern = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`)

// FileTag extracts the date tag embedded in an export file name, for any of
// the broker's dated exports. It returns false when the name carries none.
func FileTag(path string) (string, bool) {
	m := fileDatePattern.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return "", false
	}
	if _, err := date.Parse(m[1]); err != nil {
		return "", false
	}
	return m[1], true
}
