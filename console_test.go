package taggin

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderConsoleTagFirst(t *testing.T) {
	l := New(Options{Name: "test"})
	l.SetTagStyle("TRAIN.START", "", "🚂")

	line := l.renderConsole(Record{Tag: "TRAIN.START", Level: LevelInfo, Message: "payload"})
	assert.Equal(t, "🚂 [TRAIN.START] payload", line)

	line = l.renderConsole(Record{Tag: "IO.net", Level: LevelInfo, Message: "payload"})
	assert.Equal(t, "[IO.net] payload", line)
}

func TestRenderConsoleUntagged(t *testing.T) {
	l := New(Options{Name: "test"})
	line := l.renderConsole(Record{Level: LevelWarning, Message: "careful"})
	assert.Equal(t, "WARNING: careful", line)
}

func TestRenderConsoleColor(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = prev }()

	l := New(Options{Name: "test", Color: true})
	l.SetTagStyle("TRAIN.START", "cyan", "")

	line := l.renderConsole(Record{Tag: "TRAIN.START", Level: LevelInfo, Message: "payload"})
	assert.Contains(t, line, "\x1b[")
	assert.Contains(t, line, "[TRAIN.START]")
}

func TestRenderConsoleUnknownColorName(t *testing.T) {
	l := New(Options{Name: "test", Color: true})
	l.SetTagStyle("A", "chartreuse", "")
	line := l.renderConsole(Record{Tag: "A", Level: LevelInfo, Message: "x"})
	assert.Equal(t, "[A] x", line)
}

func TestStreamConsoleWritesLines(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleWriter(&buf)
	c.WriteLine("hello")
	c.WriteLine("world")
	require.Equal(t, "hello\nworld\n", buf.String())
}
