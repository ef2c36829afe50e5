package store

import (
	"github.com/pmezard/go-difflib/difflib"
)

// similarity computes a Ratcliff/Obershelp ratio between two strings:
// 2 * matched / (len(a) + len(b)), over rune sequences. 1.0 means the
// strings are identical, 0.0 means nothing matched.
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	m := difflib.NewMatcher(splitRunes(a), splitRunes(b))
	return m.Ratio()
}

func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
