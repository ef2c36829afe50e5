package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ESPR3SS0/Taggin/store"
)

func testRecords() []store.Record {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.Local)
	return []store.Record{
		{Time: base, Level: store.LevelInfo, Name: "demo", Tag: "TRAIN.START", Message: "epoch 0"},
		{Time: base.Add(10*time.Second + 123456789*time.Nanosecond), Level: store.LevelWarning, Name: "demo", Tag: "TRAIN.END", Message: "epoch done"},
		{Time: base.Add(20 * time.Second), Level: store.LevelError, Name: "demo", Tag: "", Message: "plain | with | separators"},
	}
}

func assertRecordsEqual(t *testing.T, want, got []store.Record) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Time.Equal(got[i].Time), "record %d time: want %v got %v", i, want[i].Time, got[i].Time)
		assert.Equal(t, want[i].Level, got[i].Level, "record %d level", i)
		assert.Equal(t, want[i].Name, got[i].Name, "record %d name", i)
		assert.Equal(t, want[i].Tag, got[i].Tag, "record %d tag", i)
		assert.Equal(t, want[i].Message, got[i].Message, "record %d message", i)
	}
}

func TestFormatLine(t *testing.T) {
	recs := testRecords()
	assert.Equal(t,
		"2025-01-01T12:00:00 | INFO    | demo | [TRAIN.START] epoch 0",
		FormatLine(recs[0]))
	assert.Equal(t,
		"2025-01-01T12:00:20 | ERROR   | demo | plain | with | separators",
		FormatLine(recs[2]))
}

func TestParseLineBracketAmbiguity(t *testing.T) {
	// An untagged message starting with "[x] " is indistinguishable from a
	// tagged one; the format is lossy there and the tag reading wins.
	rec, ok := ParseLine("2025-01-01T12:00:00 | INFO    | demo | [x] looks tagged")
	require.True(t, ok)
	assert.Equal(t, "x", rec.Tag)
	assert.Equal(t, "looks tagged", rec.Message)
}

func TestTextRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	recs := testRecords()

	require.NoError(t, SaveText(path, recs, false))
	loaded, err := LoadText(path)
	require.NoError(t, err)
	assertRecordsEqual(t, recs, loaded)
}

func TestTextSubSecondPrecision(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	rec := testRecords()[1]

	require.NoError(t, SaveText(path, []store.Record{rec}, false))
	loaded, err := LoadText(path)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, rec.Time.Nanosecond(), loaded[0].Time.Nanosecond())
}

func TestTextAppendPreservesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	recs := testRecords()

	require.NoError(t, SaveText(path, recs[:1], false))
	require.NoError(t, SaveText(path, recs[1:], true))

	loaded, err := LoadText(path)
	require.NoError(t, err)
	assertRecordsEqual(t, recs, loaded)
}

func TestTextTruncateWithoutAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	recs := testRecords()

	require.NoError(t, SaveText(path, recs, false))
	require.NoError(t, SaveText(path, recs[:1], false))

	loaded, err := LoadText(path)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
}

func TestLoadTextSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.log")
	content := "not even close\n" +
		"2025-01-01T12:00:00 | INFO | demo | [TRAIN.START] ok\n" +
		"invalid-timestamp | INFO | demo | [TRAIN.END] bad\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	loaded, err := LoadText(path)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "TRAIN.START", loaded[0].Tag)
	assert.Equal(t, "ok", loaded[0].Message)
}

func TestLoadTextMissingFile(t *testing.T) {
	_, err := LoadText(filepath.Join(t.TempDir(), "nope.log"))
	require.Error(t, err)
}
