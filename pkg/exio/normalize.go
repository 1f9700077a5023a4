package exio

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize converts a stressor, sector or region label to its stored
// form: surrounding whitespace trimmed, lower-cased, spaces replaced with
// underscores. Normalize(Normalize(s)) == Normalize(s).
func Normalize(label string) string {
	s := strings.TrimSpace(label)
	// Caser keeps state, a fresh one per call is safe for concurrent use.
	s = cases.Lower(language.Und).String(s)
	return strings.ReplaceAll(s, " ", "_")
}
