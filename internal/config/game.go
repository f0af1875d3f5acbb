package config

import (
	"path/filepath"

	"nexuschronicles/internal/stats"
)

// GameConfig configures the rules layer and the save database.
type GameConfig struct {
	// SavePath is the SQLite save database. Empty means <data>/save.db.
	SavePath string `yaml:"save_path"`

	// Difficulty shifts attribute-check thresholds, never stat outputs.
	Difficulty string `yaml:"difficulty"`

	// AutosaveDebounceMS batches rapid mutations into one background save.
	AutosaveDebounceMS int `yaml:"autosave_debounce_ms"`
}

// DefaultGameConfig returns the shipped game defaults.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Difficulty:         string(stats.DifficultyNormal),
		AutosaveDebounceMS: 250,
	}
}

// ResolveSavePath returns the configured save path, defaulting into dataDir.
func (g GameConfig) ResolveSavePath(dataDir string) string {
	if g.SavePath != "" {
		return g.SavePath
	}
	return filepath.Join(dataDir, "save.db")
}

// DifficultyValid reports whether the configured difficulty is known.
func (g GameConfig) DifficultyValid() bool {
	return stats.Difficulty(g.Difficulty).Valid()
}

// DifficultyValue returns the typed difficulty.
func (g GameConfig) DifficultyValue() stats.Difficulty {
	return stats.Difficulty(g.Difficulty)
}
