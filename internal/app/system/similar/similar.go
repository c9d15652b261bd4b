// Package similar flags near-duplicate names before a record is created,
// e.g. "Congregação Central" against "Congregacao  Central".
package similar

import (
	"strings"

	"github.com/dalemusser/agenda/internal/app/system/format"
	"github.com/hbollon/go-edlib"
)

// Threshold is the minimum Levenshtein similarity reported.
const Threshold = 0.9

// Score compares a and b after folding case, accents and spacing.
// It returns 1 for equal folded strings.
func Score(a, b string) float32 {
	fa, fb := key(a), key(b)
	if fa == fb {
		return 1
	}
	s, err := edlib.StringsSimilarity(fa, fb, edlib.Levenshtein)
	if err != nil {
		return 0
	}
	return s
}

// Matches returns the candidates at least Threshold-similar to name,
// excluding exact (unfolded) repeats of name, in input order.
func Matches(name string, candidates []string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	var out []string
	for _, c := range candidates {
		if strings.TrimSpace(c) == name {
			continue
		}
		if Score(name, c) >= Threshold {
			out = append(out, c)
		}
	}
	return out
}

func key(s string) string {
	return strings.Join(strings.Fields(format.Fold(s)), " ")
}
