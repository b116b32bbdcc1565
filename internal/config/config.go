// Package config loads tuning configuration for simz from a YAML file
// and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/simz/internal/quiz"
)

// Config holds the user-tunable knobs. Everything here has a working
// default; the file and environment only override.
type Config struct {
	// CooldownMS is the debounce window between phase transitions,
	// in milliseconds.
	CooldownMS int `yaml:"cooldown_ms"`

	// DBPath overrides the event database location.
	DBPath string `yaml:"db_path,omitempty"`

	// Labs holds per-lab overrides keyed by lab ID.
	Labs map[string]LabOverride `yaml:"labs,omitempty"`
}

// LabOverride adjusts a single lab's gating. Nil fields keep the lab's
// built-in values.
type LabOverride struct {
	// PassThreshold is the minimum quiz score to reach mastery.
	PassThreshold *int `yaml:"pass_threshold,omitempty"`

	// MinTrials is the number of parameter changes required to leave
	// a play phase. Zero disables the trial gate.
	MinTrials *int `yaml:"min_trials,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		CooldownMS: 400,
	}
}

// DefaultPath returns the config file location, ~/.simz/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".simz", "config.yaml")
}

// Load loads configuration layered as defaults, then the default config
// file if present, then environment variables.
func Load() (*Config, error) {
	cfg := Default()

	if path := DefaultPath(); path != "" {
		if _, err := os.Stat(path); err == nil {
			loaded, err := LoadFromFile(path)
			if err != nil {
				return nil, fmt.Errorf("loading config file: %w", err)
			}
			cfg = loaded
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a specific YAML file on top of
// the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Cooldown returns the debounce window as a duration.
func (c *Config) Cooldown() time.Duration {
	return time.Duration(c.CooldownMS) * time.Millisecond
}

// PassThreshold returns the override for a lab, or fallback when none
// is configured.
func (c *Config) PassThreshold(labID string, fallback int) int {
	if o, ok := c.Labs[labID]; ok && o.PassThreshold != nil {
		return *o.PassThreshold
	}
	return fallback
}

// MinTrials returns the trial-gate override for a lab, or -1 meaning
// "keep the lab's built-in value".
func (c *Config) MinTrials(labID string) int {
	if o, ok := c.Labs[labID]; ok && o.MinTrials != nil {
		return *o.MinTrials
	}
	return -1
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.CooldownMS < 0 {
		return fmt.Errorf("cooldown_ms must be non-negative, got %d", c.CooldownMS)
	}
	for id, o := range c.Labs {
		if o.PassThreshold != nil && (*o.PassThreshold < 1 || *o.PassThreshold > quiz.BankSize) {
			return fmt.Errorf("labs.%s.pass_threshold must be between 1 and %d, got %d", id, quiz.BankSize, *o.PassThreshold)
		}
		if o.MinTrials != nil && *o.MinTrials < 0 {
			return fmt.Errorf("labs.%s.min_trials must be non-negative, got %d", id, *o.MinTrials)
		}
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SIMZ_COOLDOWN_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.CooldownMS = n
		}
	}
	if v := os.Getenv("SIMZ_DB"); v != "" {
		cfg.DBPath = v
	}
}
