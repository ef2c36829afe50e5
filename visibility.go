package taggin

import (
	"strings"
	"sync"

	"github.com/ESPR3SS0/Taggin/store"
)

// visibleSet is the active set of glob patterns deciding which tagged
// records reach the console. Empty means hide everything tagged.
type visibleSet struct {
	mu       sync.RWMutex
	raw      []string
	matchers []store.TagMatcher
}

// set replaces the pattern set. All patterns are compiled before the swap,
// so a malformed pattern leaves the previous set in place.
func (v *visibleSet) set(patterns []string) error {
	matchers := make([]store.TagMatcher, 0, len(patterns))
	for _, pat := range patterns {
		m, err := store.CompileTagPattern(pat)
		if err != nil {
			return err
		}
		matchers = append(matchers, m)
	}
	v.mu.Lock()
	v.raw = append([]string(nil), patterns...)
	v.matchers = matchers
	v.mu.Unlock()
	return nil
}

func (v *visibleSet) patterns() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]string(nil), v.raw...)
}

// visible reports whether tag matches any active pattern. Untagged
// records bypass this set entirely and never reach it.
func (v *visibleSet) visible(tag string) bool {
	if tag == "" {
		return false
	}
	v.mu.RLock()
	defer v.mu.RUnlock()
	for _, m := range v.matchers {
		if m.Match(tag) {
			return true
		}
	}
	return false
}

// SplitPatternList splits a comma or whitespace separated pattern list,
// the form handed over by environment configuration.
func SplitPatternList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
