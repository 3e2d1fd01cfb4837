// Package textproc provides the deterministic text canonicalization shared by
// the department classifier and the duplicate detector, so that both
// subsystems tokenize identically.
package textproc

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD, drops combining marks, and recomposes, turning
// e.g. "Canilla Rota Baño" into "canilla rota bano" once lowercased.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases s and removes diacritics.  Pure and deterministic.
func Normalize(s string) string {
	out, _, err := transform.String(stripMarks, strings.ToLower(s))
	if err != nil {
		// The transform chain cannot fail on valid UTF-8; fall back to the
		// lowercased input for malformed sequences.
		return strings.ToLower(s)
	}
	return out
}

// Tokenize normalizes s and splits it into word tokens.  A token is a maximal
// run of letters or digits; everything else is a separator.
func Tokenize(s string) []string {
	normalized := Normalize(s)
	return strings.FieldsFunc(normalized, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
