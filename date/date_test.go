package date

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Date
		err  bool
	}{
		{"2024-01-02", New(2024, 1, 2), false},
		{"2024-1-2", New(2024, 1, 2), false},
		{"2024-13-02", Date{}, true},
		{"yesterday", Date{}, true},
		{"", Date{}, true},
	}
	for _, tc := range tests {
		got, err := Parse(tc.in)
		if (err != nil) != tc.err {
			t.Errorf("Parse(%q) error = %v, want error %v", tc.in, err, tc.err)
			continue
		}
		if !tc.err && got != tc.want {
			t.Errorf("Parse(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in   string
		want Date
	}{
		{"2024-01-02", New(2024, 1, 2)},
		{"2024-01-02 15:04:05", New(2024, 1, 2)},
		{"2024-01-02T15:04:05", New(2024, 1, 2)},
		{"2024-01-02T15:04:05Z", New(2024, 1, 2)},
	}
	for _, tc := range tests {
		got, err := ParseTime(tc.in)
		if err != nil {
			t.Errorf("ParseTime(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTime(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}

	if _, err := ParseTime("02/01/2024"); err == nil {
		t.Error("ParseTime accepted an unsupported layout")
	}
}

func TestSub(t *testing.T) {
	tests := []struct {
		a, b Date
		want int
	}{
		{New(2024, 1, 2), New(2024, 1, 1), 1},
		{New(2024, 3, 1), New(2024, 2, 28), 2}, // leap year
		{New(2024, 1, 1), New(2024, 1, 1), 0},
		{New(2024, 1, 1), New(2025, 1, 1), -366},
		{New(2024, 1, 1), New(2020, 1, 1), 1461},
	}
	for _, tc := range tests {
		if got := tc.a.Sub(tc.b); got != tc.want {
			t.Errorf("%s.Sub(%s) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestCompare(t *testing.T) {
	a, b := New(2024, 1, 2), New(2024, 2, 1)
	if !a.Before(b) || b.Before(a) {
		t.Error("Before is inconsistent")
	}
	if !b.After(a) || a.After(b) {
		t.Error("After is inconsistent")
	}
	if a.Compare(b) >= 0 || b.Compare(a) <= 0 || a.Compare(a) != 0 {
		t.Error("Compare is inconsistent")
	}
	if got := Min(a, b); got != a {
		t.Errorf("Min = %s, want %s", got, a)
	}
}

func TestString(t *testing.T) {
	if got, want := New(2024, 3, 7).String(), "2024-03-07"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestIsZero(t *testing.T) {
	if !(Date{}).IsZero() {
		t.Error("zero value is not IsZero")
	}
	if New(2024, 1, 1).IsZero() {
		t.Error("a real date is IsZero")
	}
}
