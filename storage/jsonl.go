package storage

import (
	"bufio"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/valyala/fastjson"

	"github.com/ESPR3SS0/Taggin/store"
)

// jsonRecord is the wire shape of a .jsonl line. Timestamps are unix
// nanoseconds so sub-second precision survives the round trip.
type jsonRecord struct {
	Timestamp int64  `json:"timestamp"`
	Level     string `json:"level"`
	Name      string `json:"name"`
	Tag       string `json:"tag,omitempty"`
	Message   string `json:"message"`
}

// SaveJSONL writes records to path, one JSON object per line.
func SaveJSONL(path string, records []store.Record, append bool) error {
	flags := os.O_CREATE | os.O_WRONLY
	if append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return errors.Wrap(err, "open jsonl log")
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, rec := range records {
		data, err := json.Marshal(jsonRecord{
			Timestamp: rec.Time.UnixNano(),
			Level:     rec.Level.String(),
			Name:      rec.Name,
			Tag:       rec.Tag,
			Message:   rec.Message,
		})
		if err != nil {
			return errors.Wrap(err, "marshal jsonl record")
		}
		if _, err := w.Write(data); err != nil {
			return errors.Wrap(err, "write jsonl log")
		}
		if err := w.WriteByte('\n'); err != nil {
			return errors.Wrap(err, "write jsonl log")
		}
	}
	return errors.Wrap(w.Flush(), "flush jsonl log")
}

var jsonlParsers fastjson.ParserPool

// LoadJSONL reads records from a .jsonl file.
func LoadJSONL(path string) ([]store.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open jsonl log")
	}
	defer f.Close()

	p := jsonlParsers.Get()
	defer jsonlParsers.Put(p)

	var records []store.Record
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		v, err := p.Parse(line)
		if err != nil {
			return nil, errors.Wrapf(err, "parse jsonl line %d", lineNo)
		}
		level, err := store.ParseLevel(string(v.GetStringBytes("level")))
		if err != nil {
			return nil, errors.Wrapf(err, "parse jsonl line %d", lineNo)
		}
		records = append(records, store.Record{
			Time:    time.Unix(0, v.GetInt64("timestamp")),
			Level:   level,
			Name:    string(v.GetStringBytes("name")),
			Tag:     string(v.GetStringBytes("tag")),
			Message: string(v.GetStringBytes("message")),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read jsonl log")
	}
	return records, nil
}
