// Package config loads and saves the questdoctor configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ToolsConfig holds the host tool binary paths.
type ToolsConfig struct {
	Adb      string `yaml:"adb"`
	Fastboot string `yaml:"fastboot"`
	Aapt     string `yaml:"aapt"`
}

// HistoryConfig controls the snapshot history database.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path,omitempty"`
	// Keep bounds how many snapshots are retained per device.
	Keep int `yaml:"keep"`
}

// APIConfig configures the REST server.
type APIConfig struct {
	Addr string `yaml:"addr"`
}

// Config is the top-level configuration.
type Config struct {
	Tools          ToolsConfig   `yaml:"tools"`
	CommandTimeout time.Duration `yaml:"command_timeout"`
	PollInterval   time.Duration `yaml:"poll_interval"`
	History        HistoryConfig `yaml:"history"`
	API            APIConfig     `yaml:"api"`
	LogLevel       string        `yaml:"log_level"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Tools:          ToolsConfig{Adb: "adb", Fastboot: "fastboot", Aapt: "aapt"},
		CommandTimeout: 15 * time.Second,
		PollInterval:   time.Second,
		History:        HistoryConfig{Enabled: true, Keep: 500},
		API:            APIConfig{Addr: "127.0.0.1:8790"},
		LogLevel:       "info",
	}
}

// ConfigDir returns the config directory path.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "questdoctor")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "questdoctor")
}

// ConfigPath returns the config file path.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (*Config, error) {
	path := ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg *Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(ConfigPath(), data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// HistoryPath returns the snapshot database path, defaulting into the
// config dir.
func (c *Config) HistoryPath() string {
	if c.History.Path != "" {
		return c.History.Path
	}
	return filepath.Join(ConfigDir(), "history.db")
}

// applyEnvOverrides lets the environment point at alternate host tools.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("QUESTDOCTOR_ADB"); v != "" {
		c.Tools.Adb = v
	}
	if v := os.Getenv("QUESTDOCTOR_FASTBOOT"); v != "" {
		c.Tools.Fastboot = v
	}
	if v := os.Getenv("QUESTDOCTOR_AAPT"); v != "" {
		c.Tools.Aapt = v
	}
	if v := os.Getenv("QUESTDOCTOR_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}
