package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Name != "Nexus Chronicles" {
		t.Errorf("expected Name=Nexus Chronicles, got %s", cfg.Name)
	}
	if cfg.Game.Difficulty != "normal" {
		t.Errorf("expected difficulty=normal, got %s", cfg.Game.Difficulty)
	}
	if cfg.LLM.Model == "" {
		t.Error("expected a default model")
	}
	if cfg.Logging.DebugMode {
		t.Error("logging defaults to production mode")
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	t.Setenv("NEXUS_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("NEXUS_SAVE_PATH", "")

	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Game.Difficulty = "hard"
	cfg.LLM.APIKey = "test-key"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Game.Difficulty != "hard" {
		t.Errorf("expected difficulty=hard, got %s", loaded.Game.Difficulty)
	}
	if loaded.LLM.APIKey != "test-key" {
		t.Errorf("expected APIKey=test-key, got %s", loaded.LLM.APIKey)
	}
}

func TestConfig_MissingFileYieldsDefaults(t *testing.T) {
	t.Setenv("NEXUS_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("NEXUS_SAVE_PATH", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.Game.Difficulty != "normal" {
		t.Errorf("expected defaults, got difficulty=%s", cfg.Game.Difficulty)
	}
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("NEXUS_API_KEY", "env-key")
	t.Setenv("NEXUS_SAVE_PATH", "/tmp/alt-save.db")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LLM.APIKey != "env-key" {
		t.Errorf("expected env override for API key, got %s", cfg.LLM.APIKey)
	}
	if cfg.Game.SavePath != "/tmp/alt-save.db" {
		t.Errorf("expected env override for save path, got %s", cfg.Game.SavePath)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}

	cfg.Game.Difficulty = "nightmare"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown difficulty must fail validation")
	}
}

func TestResolveSavePath(t *testing.T) {
	g := DefaultGameConfig()
	if got := g.ResolveSavePath("/data"); got != filepath.Join("/data", "save.db") {
		t.Errorf("unexpected default save path %s", got)
	}
	g.SavePath = "/explicit.db"
	if got := g.ResolveSavePath("/data"); got != "/explicit.db" {
		t.Errorf("explicit path must win, got %s", got)
	}
}
