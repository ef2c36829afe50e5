// Package config reads taggin setup configuration from environment
// variables.
package config

import (
	"os"
	"strconv"
)

// Config holds the setup-layer knobs handed to the policy core as plain
// strings.
type Config struct {
	// Name identifies the logger on emitted records.
	Name string
	// VisibleTags is a comma/space separated glob list for the global
	// visible set.
	VisibleTags string
	// TagLevel is the default level name for tagged emissions.
	TagLevel string
	// ConsoleLevel and FileLevel are the sink minimum level names.
	ConsoleLevel string
	FileLevel    string
	// Color toggles ANSI styling on console output.
	Color bool
}

// Load reads configuration from TAGGIN_* environment variables with
// sensible defaults.
func Load() Config {
	return Config{
		Name:         getenv("TAGGIN_NAME", "taggin"),
		VisibleTags:  os.Getenv("TAGGIN_VISIBLE_TAGS"),
		TagLevel:     os.Getenv("TAGGIN_TAG_LEVEL"),
		ConsoleLevel: getenv("TAGGIN_CONSOLE_LEVEL", "INFO"),
		FileLevel:    getenv("TAGGIN_FILE_LEVEL", "DEBUG"),
		Color:        getenvBool("TAGGIN_COLOR", true),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
