package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJSONLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.jsonl")
	recs := testRecords()

	require.NoError(t, SaveJSONL(path, recs, false))
	loaded, err := LoadJSONL(path)
	require.NoError(t, err)
	assertRecordsEqual(t, recs, loaded)
}

func TestJSONLAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.jsonl")
	recs := testRecords()

	require.NoError(t, SaveJSONL(path, recs[:2], false))
	require.NoError(t, SaveJSONL(path, recs[2:], true))

	loaded, err := LoadJSONL(path)
	require.NoError(t, err)
	assertRecordsEqual(t, recs, loaded)
}

func TestLoadJSONLMalformedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{not json\n"), 0644))

	_, err := LoadJSONL(path)
	require.Error(t, err)
}

func TestLoadJSONLMissingFile(t *testing.T) {
	_, err := LoadJSONL(filepath.Join(t.TempDir(), "nope.jsonl"))
	require.Error(t, err)
}
