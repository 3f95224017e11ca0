// Package config loads client configuration from an optional YAML file and
// DOCSLM_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines the client configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Chat   ChatConfig   `yaml:"chat"`
	Log    LogConfig    `yaml:"log"`
	// StateDir holds the per-user state file (selected commessa restore).
	StateDir string `yaml:"state_dir"`
}

type ServerConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type ChatConfig struct {
	// Models populates the model picker; the first entry is preselected.
	Models []string `yaml:"models"`
}

type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// Timeout returns the request timeout as a duration.
func (s ServerConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Load reads configuration from an optional YAML file and environment
// variables. An empty path skips the file and uses defaults + env only.
func Load(path string) (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			BaseURL:        "http://localhost:8000",
			TimeoutSeconds: 30,
		},
		Chat: ChatConfig{
			Models: []string{"DocsLM Standard", "DocsLM Ragionamento"},
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if base := os.Getenv("DOCSLM_SERVER_URL"); base != "" {
		cfg.Server.BaseURL = base
	}
	if timeoutStr := os.Getenv("DOCSLM_TIMEOUT_SECONDS"); timeoutStr != "" {
		secs, err := strconv.Atoi(timeoutStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid DOCSLM_TIMEOUT_SECONDS: %w", err)
		}
		cfg.Server.TimeoutSeconds = secs
	}
	if dir := os.Getenv("DOCSLM_STATE_DIR"); dir != "" {
		cfg.StateDir = dir
	}
	if file := os.Getenv("DOCSLM_LOG_FILE"); file != "" {
		cfg.Log.File = file
	}
	if level := os.Getenv("DOCSLM_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if cfg.StateDir == "" {
		cfg.StateDir = defaultStateDir()
	}
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(cfg.StateDir, "docslm.log")
	}
	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func defaultStateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "docslm")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".docslm"
	}
	return filepath.Join(home, ".local", "state", "docslm")
}
