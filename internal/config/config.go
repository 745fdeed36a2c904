// Package config loads chatmark settings from a YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// Config is the top-level application configuration
type Config struct {
	ConfigVersion int           `mapstructure:"config_version" yaml:"config_version"`
	Editor        EditorConfig  `mapstructure:"editor" yaml:"editor"`
	History       HistoryConfig `mapstructure:"history" yaml:"history"`
	Search        SearchConfig  `mapstructure:"search" yaml:"search"`
	Logging       LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// CurrentConfigVersion marks the supported config version
const CurrentConfigVersion = 1

// LogLevels lists the accepted logging.level values
var LogLevels = []string{"trace", "debug", "info", "warn", "error"}

// EditorConfig controls the compose field
type EditorConfig struct {
	// FormatDelayMS is the quiet period after the last edit before the text
	// is re-scanned
	FormatDelayMS int `mapstructure:"format_delay_ms" yaml:"format_delay_ms"`
	// MarkerColor is the hex colour of retained marker glyphs
	MarkerColor string `mapstructure:"marker_color" yaml:"marker_color"`
}

// HistoryConfig controls the in-memory conversation
type HistoryConfig struct {
	// Limit caps the number of messages kept; 0 keeps everything
	Limit int `mapstructure:"limit" yaml:"limit"`
}

// SearchConfig controls fuzzy search over sent messages
type SearchConfig struct {
	MinScore int `mapstructure:"min_score" yaml:"min_score"`
}

// LoggingConfig controls where the terminal UI writes its log
type LoggingConfig struct {
	File  string `mapstructure:"file" yaml:"file"`
	Level string `mapstructure:"level" yaml:"level"`
}

// FormatDelay returns the editor debounce interval
func (c Config) FormatDelay() time.Duration {
	return time.Duration(c.Editor.FormatDelayMS) * time.Millisecond
}

// DefaultConfigDir returns the directory chatmark keeps its files in
func DefaultConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(configDir, "chatmark"), nil
}

// DefaultConfigPath returns the default config file location
func DefaultConfigPath() (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// DefaultConfig returns the built-in settings
func DefaultConfig() (Config, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		ConfigVersion: CurrentConfigVersion,
		Editor: EditorConfig{
			FormatDelayMS: 220,
			MarkerColor:   "#565f89",
		},
		History: HistoryConfig{
			Limit: 500,
		},
		Search: SearchConfig{
			MinScore: 0,
		},
		Logging: LoggingConfig{
			File:  filepath.Join(dir, "chatmark.log"),
			Level: "info",
		},
	}, nil
}

// Validate reports settings that cannot be used
func (c Config) Validate() error {
	if c.Editor.FormatDelayMS < 0 {
		return fmt.Errorf("editor.format_delay_ms must not be negative")
	}
	if !isHexColor(c.Editor.MarkerColor) {
		return fmt.Errorf("editor.marker_color must be a #rrggbb colour, got %q", c.Editor.MarkerColor)
	}
	if c.History.Limit < 0 {
		return fmt.Errorf("history.limit must not be negative")
	}
	if c.Search.MinScore < 0 {
		return fmt.Errorf("search.min_score must not be negative")
	}
	if !slices.Contains(LogLevels, strings.ToLower(c.Logging.Level)) {
		return fmt.Errorf("logging.level must be one of %s, got %q", strings.Join(LogLevels, ", "), c.Logging.Level)
	}
	return nil
}

func isHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
