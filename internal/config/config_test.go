package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigYAMLRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.UI.Emoji = false
	cfg.UI.FinalSeconds = 5
	cfg.History.MaxAgeDays = 30
	cfg.Messages = []string{"nice"}

	if err := WriteConfig(tmpDir, cfg); err != nil {
		t.Fatalf("WriteConfig failed: %v", err)
	}

	loaded, err := ReadConfig(tmpDir)
	if err != nil {
		t.Fatalf("ReadConfig failed: %v", err)
	}

	if loaded.UI.Emoji {
		t.Error("UI.Emoji: got true, want false")
	}
	if loaded.UI.FinalSeconds != 5 {
		t.Errorf("UI.FinalSeconds: got %d, want 5", loaded.UI.FinalSeconds)
	}
	if loaded.History.MaxAgeDays != 30 {
		t.Errorf("History.MaxAgeDays: got %d, want 30", loaded.History.MaxAgeDays)
	}
	if len(loaded.Messages) != 1 || loaded.Messages[0] != "nice" {
		t.Errorf("Messages: got %v, want [nice]", loaded.Messages)
	}
}

func TestPartialConfigKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	partial := `version: 1
ui:
  color: false
`
	if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte(partial), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := ReadConfig(tmpDir)
	if err != nil {
		t.Fatalf("ReadConfig failed: %v", err)
	}
	if cfg.UI.Color {
		t.Error("UI.Color: got true, want false")
	}
	if !cfg.History.Enabled {
		t.Error("History.Enabled: got false, want default true")
	}
	if len(cfg.Messages) == 0 {
		t.Error("Messages: got none, want defaults")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Version != 1 {
		t.Errorf("Version: got %d, want 1", cfg.Version)
	}
	if cfg.UI.FinalSeconds != MinFinalSeconds {
		t.Errorf("UI.FinalSeconds: got %d, want %d", cfg.UI.FinalSeconds, MinFinalSeconds)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte("ui: [\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := Load(tmpDir); err == nil {
		t.Error("expected error for malformed config, got nil")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HIIT_EMOJI", "false")
	t.Setenv("HIIT_INTERACTIVE", "false")
	t.Setenv("HIIT_FINAL_SECONDS", "9")
	t.Setenv("HIIT_HISTORY", "false")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.UI.Emoji {
		t.Error("UI.Emoji: got true, want false from env")
	}
	if cfg.UI.Interactive {
		t.Error("UI.Interactive: got true, want false from env")
	}
	if !cfg.UI.Color {
		t.Error("UI.Color: got false, want default true")
	}
	if cfg.UI.FinalSeconds != MaxFinalSeconds {
		t.Errorf("UI.FinalSeconds: got %d, want clamped %d", cfg.UI.FinalSeconds, MaxFinalSeconds)
	}
	if cfg.History.Enabled {
		t.Error("History.Enabled: got true, want false from env")
	}
}

func TestLoadInvalidEnv(t *testing.T) {
	t.Setenv("HIIT_FINAL_SECONDS", "soon")
	if _, err := Load(t.TempDir()); err == nil {
		t.Error("expected error for non-numeric HIIT_FINAL_SECONDS, got nil")
	}
}

func TestResolveDir(t *testing.T) {
	if got, _ := ResolveDir("/tmp/explicit"); got != "/tmp/explicit" {
		t.Errorf("ResolveDir(flag): got %q, want /tmp/explicit", got)
	}

	t.Setenv(HomeEnv, "/tmp/from-env")
	if got, _ := ResolveDir(""); got != "/tmp/from-env" {
		t.Errorf("ResolveDir(env): got %q, want /tmp/from-env", got)
	}

	t.Setenv(HomeEnv, "")
	got, err := ResolveDir("")
	if err != nil {
		t.Fatalf("ResolveDir: %v", err)
	}
	if filepath.Base(got) != ".hiit" {
		t.Errorf("ResolveDir(default): got %q, want ~/.hiit", got)
	}
}
