// Package config holds all Nexus Chronicles configuration, loaded from a
// yaml file in the data directory with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Game rules and save location
	Game GameConfig `yaml:"game"`

	// Hosted model used by the AI side features
	LLM LLMConfig `yaml:"llm"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// DefaultConfig returns the shipped defaults.
func DefaultConfig() *Config {
	return &Config{
		Name:    "Nexus Chronicles",
		Version: "0.4.0",
		Game:    DefaultGameConfig(),
		LLM:     DefaultLLMConfig(),
		Logging: DefaultLoggingConfig(),
	}
}

// DefaultDataDir resolves the per-user data directory (~/.nexus).
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".nexus"
	}
	return filepath.Join(home, ".nexus")
}

// Load reads the config file at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the config as yaml, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// applyEnvOverrides lets the environment win over the file for secrets and
// the occasional path override.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("NEXUS_API_KEY"); key != "" {
		c.LLM.APIKey = key
	} else if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.LLM.APIKey = key
	}
	if path := os.Getenv("NEXUS_SAVE_PATH"); path != "" {
		c.Game.SavePath = path
	}
}

// Validate checks cross-field consistency. The API key is allowed to be
// empty: the game runs fully offline, only the AI side features need it.
func (c *Config) Validate() error {
	if !c.Game.DifficultyValid() {
		return fmt.Errorf("unknown difficulty %q", c.Game.Difficulty)
	}
	if c.Game.AutosaveDebounceMS < 0 {
		return fmt.Errorf("autosave_debounce_ms must be >= 0")
	}
	return nil
}
