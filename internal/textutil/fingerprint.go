package textutil

import (
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Fingerprint is a term-frequency vector over a title's tokens.
type Fingerprint struct {
	tokens map[string]float64
	norm   float64
}

// NewFingerprint creates a fingerprint from text. It returns nil when text
// has no tokens.
func NewFingerprint(text string) *Fingerprint {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}
	counts := make(map[string]float64, len(tokens))
	for _, token := range tokens {
		counts[token]++
	}
	var norm float64
	for _, count := range counts {
		norm += count * count
	}
	return &Fingerprint{
		tokens: counts,
		norm:   math.Sqrt(norm),
	}
}

// Tokenize case folds text and splits it into runs of letters and digits.
// Leading articles are kept; titles are too short to drop words.
func Tokenize(text string) []string {
	folded := cases.Fold().String(text)
	return strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// TokenCount returns the number of distinct tokens.
func (f *Fingerprint) TokenCount() int {
	if f == nil {
		return 0
	}
	return len(f.tokens)
}
