package store

import (
	"fmt"
	"strings"
	"time"
)

// Level is the severity of a log record, dictionary encoded.
type Level uint8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelCritical
)

// Record is a single structured log entry. Records are immutable once
// appended to a Store: fields are set at emission time and never touched
// again.
type Record struct {
	Time    time.Time
	Level   Level
	Name    string
	Tag     string // dotted tag, empty for untagged records
	Message string
}

// String returns the canonical level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	case LevelCritical:
		return "CRITICAL"
	default:
		return "INFO"
	}
}

// ParseLevel converts a level name to its code. WARN and FATAL are accepted
// as aliases for WARNING and CRITICAL.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarning, nil
	case "ERROR":
		return LevelError, nil
	case "FATAL", "CRITICAL":
		return LevelCritical, nil
	}
	return LevelInfo, fmt.Errorf("unknown level %q", s)
}
