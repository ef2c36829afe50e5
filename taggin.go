// Package taggin is a tag-first logging layer. Application code emits
// records under dotted hierarchical tags ("TRAIN.START", "io.net");
// per-tag policy controls console visibility, level overrides and rate
// limiting, while every admitted record is mirrored into a queryable
// structured store that can be persisted and searched by date range, tag
// glob or fuzzy text match.
package taggin

import (
	"github.com/ESPR3SS0/Taggin/store"
)

// Level re-exports the record severity scale.
type Level = store.Level

const (
	LevelDebug    = store.LevelDebug
	LevelInfo     = store.LevelInfo
	LevelWarning  = store.LevelWarning
	LevelError    = store.LevelError
	LevelCritical = store.LevelCritical
)

// Record re-exports the structured log entry type.
type Record = store.Record
