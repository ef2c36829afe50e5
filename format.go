package taggin

import (
	"fmt"
	"strings"
)

// FormatError reports a template/argument mismatch at emission time. The
// record is not created; nothing reaches any sink.
type FormatError struct {
	Template string
	Rendered string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("bad log format %q: %s", e.Template, e.Rendered)
}

// formatMessage renders the template eagerly, before any policy decision,
// so a broken call site fails at call time rather than at query time.
// A verb/argument count mismatch is caught before rendering; wrong-type
// renderings are caught by fmt's "%!verb(" markers. The marker check is
// skipped when the template or an argument already carries such a
// sequence, so a message that legitimately contains "%!" is never
// rejected.
func formatMessage(template string, args []any) (string, error) {
	if len(args) == 0 {
		return template, nil
	}
	if !strings.Contains(template, "%[") && countVerbs(template) != len(args) {
		return "", &FormatError{Template: template, Rendered: fmt.Sprintf(template, args...)}
	}
	msg := fmt.Sprintf(template, args...)
	if hasFmtMarker(msg) && !inputsCarryMarker(template, args) {
		return "", &FormatError{Template: template, Rendered: msg}
	}
	return msg, nil
}

// countVerbs returns how many arguments the template consumes: one per
// verb, plus one per "*" width or precision. "%%" consumes none.
func countVerbs(template string) int {
	n := 0
	for i := 0; i < len(template); i++ {
		if template[i] != '%' {
			continue
		}
		i++
		if i < len(template) && template[i] == '%' {
			continue
		}
		for i < len(template) && strings.ContainsRune("+-# 0123456789.*", rune(template[i])) {
			if template[i] == '*' {
				n++
			}
			i++
		}
		if i < len(template) {
			n++
		}
	}
	return n
}

// hasFmtMarker reports whether s contains one of fmt's inline error
// markers: "%!(" (EXTRA, NOVERB, BADWIDTH, ...) or "%!" followed by a
// verb character and "(" (MISSING, wrong-type).
func hasFmtMarker(s string) bool {
	for i := 0; ; {
		j := strings.Index(s[i:], "%!")
		if j < 0 {
			return false
		}
		k := i + j + 2
		if k < len(s) && s[k] == '(' {
			return true
		}
		if k+1 < len(s) && s[k+1] == '(' {
			return true
		}
		i = k
	}
}

func inputsCarryMarker(template string, args []any) bool {
	if hasFmtMarker(template) {
		return true
	}
	for _, arg := range args {
		if s, ok := arg.(string); ok && hasFmtMarker(s) {
			return true
		}
	}
	return false
}
