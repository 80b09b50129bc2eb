// Package config loads tool configuration from YAML files, .env files,
// and environment variables, in that order of increasing precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all settings.
type Config struct {
	// Git configuration
	Git GitConfig `yaml:"git" mapstructure:"git"`

	// History (batch audit log) configuration
	History HistoryConfig `yaml:"history" mapstructure:"history"`

	// Logging configuration
	Log LogConfig `yaml:"log" mapstructure:"log"`
}

type GitConfig struct {
	// Remote is the remote used for fetch and inbound comparison.
	Remote string `yaml:"remote" mapstructure:"remote"`
}

type HistoryConfig struct {
	// Path is the bbolt database holding past batch runs.
	Path string `yaml:"path" mapstructure:"path"`
	// MaxEntries bounds how many batches are retained.
	MaxEntries int `yaml:"max_entries" mapstructure:"max_entries"`
}

type LogConfig struct {
	Level      string `yaml:"level" mapstructure:"level"`
	JSONFormat bool   `yaml:"json_format" mapstructure:"json_format"`
}

// Default returns the default configuration.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		Git: GitConfig{
			Remote: "origin",
		},
		History: HistoryConfig{
			Path:       filepath.Join(homeDir, ".tidygit", "history.db"),
			MaxEntries: 200,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from an optional file path, falling back to the
// standard search locations. A missing config file is not an error.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetConfigType("yaml")

	cfg := Default()
	v.SetDefault("git", cfg.Git)
	v.SetDefault("history", cfg.History)
	v.SetDefault("log", cfg.Log)

	v.SetEnvPrefix("TIDYGIT")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".tidygit")
		v.AddConfigPath(".")
		homeDir, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(homeDir, ".tidygit"))
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// loadEnvFiles loads .env files in order of precedence.
func loadEnvFiles() {
	for _, file := range []string{".env.local", ".env"} {
		if _, err := os.Stat(file); err == nil {
			godotenv.Load(file)
		}
	}

	homeDir, _ := os.UserHomeDir()
	homeEnv := filepath.Join(homeDir, ".tidygit", ".env")
	if _, err := os.Stat(homeEnv); err == nil {
		godotenv.Load(homeEnv)
	}
}

// applyEnvOverrides applies plain environment variable overrides.
func applyEnvOverrides(cfg *Config) {
	if remote := os.Getenv("TIDYGIT_REMOTE"); remote != "" {
		cfg.Git.Remote = remote
	}
	if historyPath := os.Getenv("TIDYGIT_HISTORY_PATH"); historyPath != "" {
		cfg.History.Path = historyPath
	}
	if level := os.Getenv("TIDYGIT_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
}
