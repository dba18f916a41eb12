package clients

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeSearch lowercases a search term and strips combining marks so
// "José" and "jose" match the same records.
func NormalizeSearch(term string) string {
	out, _, err := transform.String(stripAccents, term)
	if err != nil {
		out = term
	}
	return strings.ToLower(strings.TrimSpace(out))
}
