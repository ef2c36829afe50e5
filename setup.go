package taggin

import (
	"os"

	"github.com/ESPR3SS0/Taggin/internal/config"
	"github.com/ESPR3SS0/Taggin/store"
)

// Setup builds a ready-to-use Logger: console sink on stderr, a fresh
// per-run log file under logDir, and policy defaults taken from TAGGIN_*
// environment variables.
func Setup(logDir string) (*Logger, error) {
	cfg := config.Load()

	consoleLevel := levelOr(cfg.ConsoleLevel, LevelInfo)
	fileLevel := levelOr(cfg.FileLevel, LevelDebug)

	f, err := OpenLogFile(logDir)
	if err != nil {
		return nil, err
	}

	l := New(Options{
		Name:         cfg.Name,
		Console:      NewConsoleWriter(os.Stderr),
		ConsoleLevel: consoleLevel,
		Color:        cfg.Color,
		File:         NewFileSink(f, fileLevel),
	})

	if cfg.VisibleTags != "" {
		if err := l.SetVisibleTags(SplitPatternList(cfg.VisibleTags)); err != nil {
			f.Close()
			return nil, err
		}
	}
	if cfg.TagLevel != "" {
		l.SetDefaultTagLevel(levelOr(cfg.TagLevel, LevelInfo))
	}
	return l, nil
}

func levelOr(name string, fallback Level) Level {
	lvl, err := store.ParseLevel(name)
	if err != nil {
		return fallback
	}
	return lvl
}
