package config

import "nexuschronicles/internal/logging"

// LoggingConfig controls the categorized file logger.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Level      string          `yaml:"level"`
	Categories map[string]bool `yaml:"categories,omitempty"`
}

// DefaultLoggingConfig returns production-mode logging (silent).
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		DebugMode: false,
		Level:     "info",
	}
}

// Options converts to the logging package's option struct.
func (l LoggingConfig) Options() logging.Options {
	return logging.Options{
		DebugMode:  l.DebugMode,
		Categories: l.Categories,
		Level:      l.Level,
	}
}
