package taggin

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

// ConsoleWriter is the console sink capability. It receives a fully
// formatted line; buffering and progress-bar safety are its business.
type ConsoleWriter interface {
	WriteLine(line string)
}

type streamConsole struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsoleWriter wraps an io.Writer as a line-per-call console sink.
func NewConsoleWriter(w io.Writer) ConsoleWriter {
	return &streamConsole{w: w}
}

func (c *streamConsole) WriteLine(line string) {
	c.mu.Lock()
	fmt.Fprintln(c.w, line)
	c.mu.Unlock()
}

var styleColors = map[string]*color.Color{
	"black":   color.New(color.FgBlack),
	"red":     color.New(color.FgRed),
	"green":   color.New(color.FgGreen),
	"yellow":  color.New(color.FgYellow),
	"blue":    color.New(color.FgBlue),
	"magenta": color.New(color.FgMagenta),
	"cyan":    color.New(color.FgCyan),
	"white":   color.New(color.FgWhite),
}

// renderConsole produces the tag-first console line: optional emoji, the
// bracketed tag (colored when styling is on), then the message.
func (l *Logger) renderConsole(rec Record) string {
	if rec.Tag == "" {
		return fmt.Sprintf("%s: %s", rec.Level, rec.Message)
	}
	style := l.policies.styleOf(rec.Tag)
	label := "[" + rec.Tag + "]"
	if l.color {
		if c, ok := styleColors[style.Color]; ok {
			label = c.Sprint(label)
		}
	}
	if style.Emoji != "" {
		return fmt.Sprintf("%s %s %s", style.Emoji, label, rec.Message)
	}
	return fmt.Sprintf("%s %s", label, rec.Message)
}
