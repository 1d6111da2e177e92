package analyzer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestPickLatestTransactionsFile(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "scalable_transactions_2025-03-01.csv")
	touch(t, dir, "scalable_transactions_2025-07-14.csv")
	touch(t, dir, "scalable_transactions_2024-12-31.csv")
	touch(t, dir, "valuation_2025-08-01.csv") // different export
	touch(t, dir, "notes.txt")

	got, err := PickLatestTransactionsFile(dir)
	if err != nil {
		t.Fatalf("PickLatestTransactionsFile: %v", err)
	}
	if want := filepath.Join(dir, "scalable_transactions_2025-07-14.csv"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPickLatestTransactionsFileNone(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "notes.txt")

	_, err := PickLatestTransactionsFile(dir)
	if !errors.Is(err, ErrNoTransactionsFile) {
		t.Errorf("err = %v, want ErrNoTransactionsFile", err)
	}
}

func TestFileTag(t *testing.T) {
	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"in/scalable_transactions_2025-07-14.csv", "2025-07-14", true},
		{"valuation_2025-08-01.csv", "2025-08-01", true},
		{"scalable_transactions.csv", "", false},
		{"scalable_transactions_2025-13-99.csv", "", false},
	}
	for _, tc := range tests {
		got, ok := FileTag(tc.path)
		if got != tc.want || ok != tc.ok {
			t.Errorf("FileTag(%q) = %q, %v, want %q, %v", tc.path, got, ok, tc.want, tc.ok)
		}
	}
}
