package store

import (
	"fmt"

	"github.com/gobwas/glob"
)

// InvalidPatternError reports a malformed glob pattern handed to a
// visibility or tag-search API.
type InvalidPatternError struct {
	Pattern string
	Err     error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid tag pattern %q: %v", e.Pattern, e.Err)
}

func (e *InvalidPatternError) Unwrap() error { return e.Err }

// TagMatcher matches dotted tags against one compiled glob pattern.
// Matching is case-sensitive and * crosses dots, so "TRAIN.*" matches
// both "TRAIN.START" and "TRAIN.EPOCH.END".
type TagMatcher struct {
	all bool
	g   glob.Glob
}

// CompileTagPattern compiles a shell-style glob. The patterns "*", "ALL"
// and "all" match every non-empty tag.
func CompileTagPattern(pattern string) (TagMatcher, error) {
	if pattern == "*" || pattern == "ALL" || pattern == "all" {
		return TagMatcher{all: true}, nil
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return TagMatcher{}, &InvalidPatternError{Pattern: pattern, Err: err}
	}
	return TagMatcher{g: g}, nil
}

// Match reports whether tag matches the pattern. Untagged records (empty
// tag) never match.
func (m TagMatcher) Match(tag string) bool {
	if tag == "" {
		return false
	}
	if m.all {
		return true
	}
	if m.g == nil {
		return false
	}
	return m.g.Match(tag)
}
