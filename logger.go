package taggin

import (
	"time"

	"github.com/benbjohnson/clock"

	"github.com/ESPR3SS0/Taggin/storage"
	"github.com/ESPR3SS0/Taggin/store"
)

// Options configures a Logger. Zero fields get working defaults: a fresh
// store, a wall clock, no sinks.
type Options struct {
	// Name identifies the emitting logger on every record.
	Name string
	// Console receives formatted lines for console-eligible records.
	Console ConsoleWriter
	// File receives every admitted record's text line, subject to its
	// own minimum level.
	File FileWriter
	// ConsoleLevel is the minimum level for untagged console output.
	// Visible tagged records bypass it.
	ConsoleLevel Level
	// Color enables ANSI styling on console lines.
	Color bool
	// Store overrides the structured store (shared stores are fine).
	Store *store.Store
	// Clock overrides the time source; tests inject a mock.
	Clock clock.Clock
}

// Logger dispatches emissions: it resolves the tag, applies per-tag
// policy (level override, rate limit, visibility) and fans the record out
// to the structured store, file sink and console sink.
type Logger struct {
	name         string
	store        *store.Store
	console      ConsoleWriter
	file         FileWriter
	consoleLevel Level
	color        bool
	clk          clock.Clock
	policies     *policyStore
	visible      *visibleSet
}

// New builds a Logger. All policy state is owned by the returned instance;
// independent loggers never share tag policies.
func New(opts Options) *Logger {
	if opts.Name == "" {
		opts.Name = "taggin"
	}
	if opts.Store == nil {
		opts.Store = store.New()
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	return &Logger{
		name:         opts.Name,
		store:        opts.Store,
		console:      opts.Console,
		file:         opts.File,
		consoleLevel: opts.ConsoleLevel,
		color:        opts.Color,
		clk:          opts.Clock,
		policies:     newPolicyStore(),
		visible:      &visibleSet{},
	}
}

// Store exposes the structured store for queries and persistence.
func (l *Logger) Store() *store.Store { return l.store }

// SetTagLevel forces every record under tag to the given level.
func (l *Logger) SetTagLevel(tag string, level Level) {
	l.policies.setLevel(tag, level)
}

// SetDefaultTagLevel sets the process-wide level for tagged emissions
// that carry no per-tag override.
func (l *Logger) SetDefaultTagLevel(level Level) {
	l.policies.setDefaultLevel(level)
}

// SetTagRateLimit suppresses emissions for tag arriving less than
// interval after the previous admitted one. Suppression covers every
// sink: console, file and store. Zero removes the limit.
func (l *Logger) SetTagRateLimit(tag string, interval time.Duration) {
	l.policies.setRateLimit(tag, interval)
}

// SetTagStyle attaches a display color and emoji to tag. Display-only.
func (l *Logger) SetTagStyle(tag, colorName, emoji string) {
	l.policies.setStyle(tag, Style{Color: colorName, Emoji: emoji})
}

// ShowTag forces tag onto the console regardless of the visible set.
func (l *Logger) ShowTag(tag string) { l.policies.setVisible(tag, true) }

// HideTag forces tag off the console regardless of the visible set.
func (l *Logger) HideTag(tag string) { l.policies.setVisible(tag, false) }

// SetVisibleTags replaces the global visible set. Patterns follow shell
// glob rules, case-sensitive, with "*"/"ALL"/"all" matching everything.
// A malformed pattern returns InvalidPatternError and changes nothing.
func (l *Logger) SetVisibleTags(patterns []string) error {
	return l.visible.set(patterns)
}

// VisibleTags returns the active pattern set.
func (l *Logger) VisibleTags() []string { return l.visible.patterns() }

// Debug emits an untagged DEBUG record.
func (l *Logger) Debug(format string, args ...any) error {
	return l.emit("", LevelDebug, true, format, args)
}

// Info emits an untagged INFO record.
func (l *Logger) Info(format string, args ...any) error {
	return l.emit("", LevelInfo, true, format, args)
}

// Warning emits an untagged WARNING record.
func (l *Logger) Warning(format string, args ...any) error {
	return l.emit("", LevelWarning, true, format, args)
}

// Error emits an untagged ERROR record.
func (l *Logger) Error(format string, args ...any) error {
	return l.emit("", LevelError, true, format, args)
}

// Critical emits an untagged CRITICAL record.
func (l *Logger) Critical(format string, args ...any) error {
	return l.emit("", LevelCritical, true, format, args)
}

// TagRef is an accumulated tag path. Building one is side-effect-free:
// no policy entry is created until configuration or emission touches the
// tag, and the same chain always yields the same tag string.
type TagRef struct {
	l    *Logger
	path string
}

// Tag starts a tag path: Tag("TRAIN", "START") addresses "TRAIN.START".
func (l *Logger) Tag(first string, rest ...string) TagRef {
	path := first
	for _, seg := range rest {
		path += "." + seg
	}
	return TagRef{l: l, path: path}
}

// Sub extends the path by one segment.
func (t TagRef) Sub(segment string) TagRef {
	return TagRef{l: t.l, path: t.path + "." + segment}
}

// String returns the canonical dotted tag.
func (t TagRef) String() string { return t.path }

// Emit logs under the tag with no explicit level; the tag's level
// override or the default tag level applies, INFO when neither is set.
func (t TagRef) Emit(format string, args ...any) error {
	return t.l.emit(t.path, LevelInfo, false, format, args)
}

// Debug logs under the tag at DEBUG.
func (t TagRef) Debug(format string, args ...any) error {
	return t.l.emit(t.path, LevelDebug, true, format, args)
}

// Info logs under the tag at INFO.
func (t TagRef) Info(format string, args ...any) error {
	return t.l.emit(t.path, LevelInfo, true, format, args)
}

// Warning logs under the tag at WARNING.
func (t TagRef) Warning(format string, args ...any) error {
	return t.l.emit(t.path, LevelWarning, true, format, args)
}

// Error logs under the tag at ERROR.
func (t TagRef) Error(format string, args ...any) error {
	return t.l.emit(t.path, LevelError, true, format, args)
}

// Critical logs under the tag at CRITICAL.
func (t TagRef) Critical(format string, args ...any) error {
	return t.l.emit(t.path, LevelCritical, true, format, args)
}

// emit is the dispatch core. Order matters: formatting first so call-site
// mistakes surface immediately, then the rate-limit gate covering all
// sinks, then fan-out with the console decision made last.
func (l *Logger) emit(tag string, call Level, hasCall bool, format string, args []any) error {
	msg, err := formatMessage(format, args)
	if err != nil {
		return err
	}

	now := l.clk.Now()
	level := call
	if tag != "" {
		level = l.policies.effectiveLevel(tag, call, hasCall)
		if !l.policies.admit(tag, now) {
			return nil
		}
	}

	rec := store.Record{Time: now, Level: level, Name: l.name, Tag: tag, Message: msg}
	l.store.Append(rec)

	line := storage.FormatLine(rec)
	if l.file != nil {
		l.file.WriteLine(level, line)
	}
	if l.console != nil && l.consoleEligible(rec) {
		l.console.WriteLine(l.renderConsole(rec))
	}
	return nil
}

// consoleEligible applies the visibility rules. Untagged records honor
// the console minimum level only; tagged records are governed by the
// visible set and per-tag overrides, independent of that threshold.
func (l *Logger) consoleEligible(rec store.Record) bool {
	if rec.Tag == "" {
		return rec.Level >= l.consoleLevel
	}
	if show, forced := l.policies.visibility(rec.Tag); forced {
		return show
	}
	return l.visible.visible(rec.Tag)
}
