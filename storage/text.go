package storage

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/ESPR3SS0/Taggin/store"
)

// timeLayout prints sub-second precision only when present, so
// whole-second timestamps stay clean. The parser accepts a fractional
// part either way.
const timeLayout = "2006-01-02T15:04:05.999999999"

const fieldSep = " | "

// FormatLine renders one record as a text line:
//
//	2025-01-01T12:00:00 | INFO    | demo | [TRAIN.START] epoch 0
//
// Untagged records omit the bracketed tag.
func FormatLine(rec store.Record) string {
	body := rec.Message
	if rec.Tag != "" {
		body = fmt.Sprintf("[%s] %s", rec.Tag, rec.Message)
	}
	return fmt.Sprintf("%s%s%-7s%s%s%s%s",
		rec.Time.Format(timeLayout), fieldSep, rec.Level.String(), fieldSep, rec.Name, fieldSep, body)
}

// ParseLine parses a text line back into a record. The boolean is false
// for lines that do not parse.
//
// The grammar is ambiguous in two places: an untagged message that itself
// starts with "[x] " loads back as tagged "x", and a name containing the
// " | " separator shifts the fields. Both are inherent to the line format
// and accepted as its lossiness.
func ParseLine(line string) (store.Record, bool) {
	parts := strings.SplitN(line, fieldSep, 4)
	if len(parts) != 4 {
		return store.Record{}, false
	}

	ts, err := time.ParseInLocation("2006-01-02T15:04:05", parts[0], time.Local)
	if err != nil {
		return store.Record{}, false
	}
	level, err := store.ParseLevel(parts[1])
	if err != nil {
		return store.Record{}, false
	}

	rec := store.Record{
		Time:  ts,
		Level: level,
		Name:  parts[2],
	}

	body := parts[3]
	if strings.HasPrefix(body, "[") {
		if idx := strings.Index(body, "] "); idx > 1 {
			rec.Tag = body[1:idx]
			body = body[idx+2:]
		}
	}
	rec.Message = body
	return rec, true
}

// SaveText writes records to path, one line each. With append the file is
// opened for append, leaving existing lines untouched; otherwise it is
// truncated.
func SaveText(path string, records []store.Record, append bool) error {
	flags := os.O_CREATE | os.O_WRONLY
	if append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return errors.Wrap(err, "open text log")
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, rec := range records {
		if _, err := w.WriteString(FormatLine(rec) + "\n"); err != nil {
			return errors.Wrap(err, "write text log")
		}
	}
	if err := w.Flush(); err != nil {
		return errors.Wrap(err, "flush text log")
	}
	return nil
}

// LoadText reads records from a text log. Lines that do not parse are
// skipped.
func LoadText(path string) ([]store.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open text log")
	}
	defer f.Close()

	var records []store.Record
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if rec, ok := ParseLine(line); ok {
			records = append(records, rec)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read text log")
	}
	return records, nil
}
