// Package config handles reading and writing the hiit config.yaml and
// resolving the data directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is the top-level structure for <data dir>/config.yaml.
type Config struct {
	Version  int           `yaml:"version"`
	UI       UIConfig      `yaml:"ui"`
	History  HistoryConfig `yaml:"history"`
	Messages []string      `yaml:"messages"`
}

// UIConfig controls how workouts are rendered. It is handed to the renderer
// at construction; nothing reads it globally.
type UIConfig struct {
	Color        bool `yaml:"color" env:"HIIT_COLOR"`
	Emoji        bool `yaml:"emoji" env:"HIIT_EMOJI"`
	Interactive  bool `yaml:"interactive" env:"HIIT_INTERACTIVE"`
	FinalSeconds int  `yaml:"final_seconds" env:"HIIT_FINAL_SECONDS"` // emphasis window, 3..5
}

// HistoryConfig controls the workout history store.
type HistoryConfig struct {
	Enabled    bool `yaml:"enabled" env:"HIIT_HISTORY"`
	MaxAgeDays int  `yaml:"max_age_days"` // 0 disables auto-prune
}

// Emphasis window bounds, in seconds.
const (
	MinFinalSeconds = 3
	MaxFinalSeconds = 5
)

const (
	configFile   = "config.yaml"
	routinesDir  = "routines"
	schedulesDir = "schedules"

	// HomeEnv overrides the default data directory.
	HomeEnv = "HIIT_HOME"
	// defaultDirName is created under the user's home directory.
	defaultDirName = ".hiit"
)

// ResolveDir returns the data directory: flagDir if set, else $HIIT_HOME,
// else ~/.hiit.
func ResolveDir(flagDir string) (string, error) {
	if flagDir != "" {
		return flagDir, nil
	}
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, defaultDirName), nil
}

// RoutinesDir returns the routines directory inside dir.
func RoutinesDir(dir string) string {
	return filepath.Join(dir, routinesDir)
}

// SchedulesDir returns the schedules directory inside dir.
func SchedulesDir(dir string) string {
	return filepath.Join(dir, schedulesDir)
}

// ReadConfig reads config.yaml from the given data directory.
// Returns an error if the file is not found or YAML is malformed.
func ReadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, configFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Load reads config.yaml from dir, falling back to defaults when the file
// does not exist, then applies environment overrides.
func Load(dir string) (*Config, error) {
	cfg, err := ReadConfig(dir)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = DefaultConfig()
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	cfg.UI.FinalSeconds = clampFinalSeconds(cfg.UI.FinalSeconds)
	return cfg, nil
}

// ApplyEnv overrides cfg fields from HIIT_* environment variables.
// Unset variables leave the field untouched.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(&cfg.UI); err != nil {
		return fmt.Errorf("parsing ui environment: %w", err)
	}
	if err := env.Parse(&cfg.History); err != nil {
		return fmt.Errorf("parsing history environment: %w", err)
	}
	return nil
}

// WriteConfig writes cfg to config.yaml in the given data directory.
// Creates the directory if it does not exist.
func WriteConfig(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	path := filepath.Join(dir, configFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		UI: UIConfig{
			Color:        true,
			Emoji:        true,
			Interactive:  true,
			FinalSeconds: MinFinalSeconds,
		},
		History: HistoryConfig{
			Enabled:    true,
			MaxAgeDays: 90,
		},
		Messages: []string{
			"Workout complete! Great job!",
			"You crushed it!",
			"Done! Hydrate and stretch.",
			"Another one in the books!",
			"Strong work today!",
		},
	}
}

func clampFinalSeconds(n int) int {
	if n < MinFinalSeconds {
		return MinFinalSeconds
	}
	if n > MaxFinalSeconds {
		return MaxFinalSeconds
	}
	return n
}
