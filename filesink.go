package taggin

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// FileWriter is the file sink capability. The dispatcher hands it every
// admitted record's formatted line; the sink enforces its own minimum
// level.
type FileWriter interface {
	WriteLine(level Level, line string)
}

type fileSink struct {
	mu  sync.Mutex
	w   io.Writer
	min Level
}

// NewFileSink wraps an io.Writer as a level-thresholded file sink.
func NewFileSink(w io.Writer, min Level) FileWriter {
	return &fileSink{w: w, min: min}
}

func (s *fileSink) WriteLine(level Level, line string) {
	if level < s.min {
		return
	}
	s.mu.Lock()
	fmt.Fprintln(s.w, line)
	s.mu.Unlock()
}

// OpenLogFile creates a per-run log file under dir, named with the start
// timestamp and a short run id so concurrent runs never collide.
func OpenLogFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	runID := uuid.NewString()[:8]
	name := fmt.Sprintf("taggin_%s_%s.log", time.Now().Format("20060102_150405"), runID)
	return os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}
