// Package storage persists structured log records to disk. Three
// interchangeable formats are supported, selected by file suffix:
//
//	.log, .txt  line-oriented text, human-readable
//	.tagc       columnar, zstd-compressed per column
//	.jsonl      one JSON object per line
package storage

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/ESPR3SS0/Taggin/store"
)

// ErrUnknownFormat is returned when a path's suffix does not map to a
// known codec.
var ErrUnknownFormat = errors.New("unrecognized log file format")

// Format identifies a persistence codec.
type Format int

const (
	FormatText Format = iota
	FormatColumnar
	FormatJSONL
)

// DetectFormat maps a file path to its codec by suffix.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".log", ".txt":
		return FormatText, nil
	case ".tagc":
		return FormatColumnar, nil
	case ".jsonl":
		return FormatJSONL, nil
	}
	return 0, errors.Wrapf(ErrUnknownFormat, "%s", path)
}

// Save writes records to path in the format implied by its suffix.
func Save(path string, records []store.Record, append bool) error {
	f, err := DetectFormat(path)
	if err != nil {
		return err
	}
	switch f {
	case FormatColumnar:
		return SaveColumnar(path, records, append)
	case FormatJSONL:
		return SaveJSONL(path, records, append)
	default:
		return SaveText(path, records, append)
	}
}

// Load reads records from path in the format implied by its suffix.
func Load(path string) ([]store.Record, error) {
	f, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	switch f {
	case FormatColumnar:
		return LoadColumnar(path)
	case FormatJSONL:
		return LoadJSONL(path)
	default:
		return LoadText(path)
	}
}
