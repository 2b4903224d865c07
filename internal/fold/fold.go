// Package fold reduces text to a form suitable for case- and
// diacritic-insensitive comparison.
//
// Folding is done in Go rather than in SQLite: SQLite's built-in NOCASE and
// LIKE only fold ASCII, so "Café" would never match "cafe". The store keeps a
// folded copy of every title next to the original and compares folded
// needles against it.
package fold

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// String folds s: canonical decomposition, combining marks removed, Unicode
// case folding, then NFC recomposition.
//
// Examples:
//
//	String("Café")       // "cafe"
//	String("MILK Shake") // "milk shake"
//	String("Straße")     // "strasse"
func String(s string) string {
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		// Transformers above never fail on valid input; fall back to case
		// folding the original so matching still works for ASCII.
		stripped = s
	}
	return cases.Fold().String(stripped)
}

// IsEmpty reports whether s folds to nothing but whitespace, e.g. a lone
// combining mark. Such text cannot narrow a search.
func IsEmpty(s string) bool {
	return strings.TrimSpace(String(s)) == ""
}

// Contains reports whether needle occurs in haystack after folding both.
// A needle that folds to empty matches everything.
func Contains(haystack, needle string) bool {
	if IsEmpty(needle) {
		return true
	}
	return strings.Contains(String(haystack), String(needle))
}
