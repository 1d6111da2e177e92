package analyzer

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugInvalid    = regexp.MustCompile(`[^\w\s-]`)
	slugSeparators = regexp.MustCompile(`[-\s]+`)
)

// Slugify converts a fund display name into a filesystem-safe cache key:
// lowercase ASCII, words joined by single dashes. "iShares Core MSCI World"
// becomes "ishares-core-msci-world".
func Slugify(value string) string {
	// Strip diacritics, then anything that is not alphanumeric, space or dash.
	stripper := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	ascii, _, err := transform.String(stripper, value)
	if err != nil {
		ascii = value
	}
	ascii = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, ascii)

	s := slugInvalid.ReplaceAllString(strings.ToLower(ascii), "")
	s = slugSeparators.ReplaceAllString(s, "-")
	return strings.Trim(s, "-_")
}
