package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	cases := map[string]Format{
		"a.log":      FormatText,
		"b.txt":      FormatText,
		"c.LOG":      FormatText,
		"d.tagc":     FormatColumnar,
		"e.jsonl":    FormatJSONL,
		"dir/f.tagc": FormatColumnar,
	}
	for path, want := range cases {
		got, err := DetectFormat(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
}

func TestDetectFormatUnknown(t *testing.T) {
	for _, path := range []string{"a.csv", "b", "c.parquet.gz"} {
		_, err := DetectFormat(path)
		require.Error(t, err, path)
		assert.ErrorIs(t, err, ErrUnknownFormat, path)
	}
}

func TestSaveLoadAutoDetect(t *testing.T) {
	recs := testRecords()
	for _, name := range []string{"r.log", "r.tagc", "r.jsonl"} {
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, Save(path, recs, false), name)
		loaded, err := Load(path)
		require.NoError(t, err, name)
		assertRecordsEqual(t, recs, loaded)
	}
}

func TestLoadUnknownFormat(t *testing.T) {
	_, err := Load("whatever.csv")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
