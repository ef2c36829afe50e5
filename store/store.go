// Package store holds the in-memory structured log store: an append-only,
// insertion-ordered collection of immutable records with date, tag-glob and
// fuzzy-text search.
package store

import (
	"sort"
	"sync"
	"time"
)

// Store is safe for concurrent appenders and readers. Readers always see a
// consistent point-in-time view; a snapshot is never affected by later
// appends.
type Store struct {
	mu      sync.RWMutex
	records []Record
}

// New returns an empty Store.
func New() *Store {
	return &Store{records: make([]Record, 0, 256)}
}

// FromRecords builds a Store from an existing record sequence, keeping
// its order. The slice is copied.
func FromRecords(records []Record) *Store {
	s := &Store{records: make([]Record, len(records))}
	copy(s.records, records)
	return s
}

// Append adds a record, preserving insertion order.
func (s *Store) Append(rec Record) {
	s.mu.Lock()
	s.records = append(s.records, rec)
	s.mu.Unlock()
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Snapshot returns an independent copy of all records in insertion order.
func (s *Store) Snapshot() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Clear atomically empties the store.
func (s *Store) Clear() {
	s.mu.Lock()
	s.records = s.records[:0]
	s.mu.Unlock()
}

// SearchByDate returns records with start <= Time <= end in insertion
// order. A zero start or end leaves that side unbounded.
func (s *Store) SearchByDate(start, end time.Time) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Record
	for _, rec := range s.records {
		if !start.IsZero() && rec.Time.Before(start) {
			continue
		}
		if !end.IsZero() && rec.Time.After(end) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// SearchByTag returns records whose tag matches the glob pattern, in
// insertion order. Untagged records never match.
func (s *Store) SearchByTag(pattern string) ([]Record, error) {
	m, err := CompileTagPattern(pattern)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Record
	for _, rec := range s.records {
		if m.Match(rec.Tag) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// SearchFuzzy returns records whose message scores at least threshold
// against query, ordered by descending score with insertion order breaking
// ties.
func (s *Store) SearchFuzzy(query string, threshold float64) []Record {
	return s.searchFuzzy(query, threshold, -1)
}

// SearchFuzzyN is SearchFuzzy truncated to at most limit results. A limit
// of zero or less returns nothing.
func (s *Store) SearchFuzzyN(query string, threshold float64, limit int) []Record {
	if limit <= 0 {
		return nil
	}
	return s.searchFuzzy(query, threshold, limit)
}

func (s *Store) searchFuzzy(query string, threshold float64, limit int) []Record {
	type scored struct {
		rec   Record
		score float64
	}

	s.mu.RLock()
	hits := make([]scored, 0, len(s.records))
	for _, rec := range s.records {
		score := similarity(query, rec.Message)
		if score >= threshold {
			hits = append(hits, scored{rec: rec, score: score})
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})

	if limit >= 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]Record, len(hits))
	for i, h := range hits {
		out[i] = h.rec
	}
	return out
}

// TagCounts returns the frequency of each distinct non-empty tag.
func (s *Store) TagCounts() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, rec := range s.records {
		if rec.Tag != "" {
			counts[rec.Tag]++
		}
	}
	return counts
}

// TagCount pairs a tag with its frequency.
type TagCount struct {
	Tag   string
	Count int
}

// SortedTagCounts returns tag frequencies ordered by descending count,
// ascending tag on ties.
func SortedTagCounts(counts map[string]int) []TagCount {
	out := make([]TagCount, 0, len(counts))
	for tag, n := range counts {
		out = append(out, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}
