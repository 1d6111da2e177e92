package analyzer

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Vanguard FTSE All-World", "vanguard-ftse-all-world"},
		{"iShares Core MSCI EM IMI", "ishares-core-msci-em-imi"},
		{"Xtrackers MSCI World (Acc)", "xtrackers-msci-world-acc"},
		{"Amundi Prime Eurozone UCITS ETF", "amundi-prime-eurozone-ucits-etf"},
		{"Fonds Münchner Rück", "fonds-munchner-ruck"},
		{"  padded   name  ", "padded-name"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
