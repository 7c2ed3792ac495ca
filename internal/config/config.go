// Package config loads server settings from an optional YAML file with
// environment variable overrides. A .env file is honored in development.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultMaxFiles caps how many reports one batch may contain.
	DefaultMaxFiles = 12
	// DefaultMaxFileSize caps one uploaded report, in bytes.
	DefaultMaxFileSize = 10 << 20
)

// Config holds all settings for the application.
type Config struct {
	Port        int    `yaml:"port"`
	StaticDir   string `yaml:"static_dir"`
	MaxFiles    int    `yaml:"max_files"`
	MaxFileSize int    `yaml:"max_file_size"`
}

// Load reads the optional YAML config named by CONFIG_FILE, then applies
// environment overrides (PORT, STATIC_DIR, MAX_FILES, MAX_FILE_SIZE).
// Missing files are fine; defaults cover everything.
func Load() (*Config, error) {
	// Best effort: a missing .env is the normal case outside development.
	_ = godotenv.Load()

	cfg := &Config{
		Port:        8080,
		StaticDir:   "frontend/dist",
		MaxFiles:    DefaultMaxFiles,
		MaxFileSize: DefaultMaxFileSize,
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = n
	}
	if v := os.Getenv("STATIC_DIR"); v != "" {
		cfg.StaticDir = v
	}
	if v := os.Getenv("MAX_FILES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid MAX_FILES %q: %w", v, err)
		}
		cfg.MaxFiles = n
	}
	if v := os.Getenv("MAX_FILE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid MAX_FILE_SIZE %q: %w", v, err)
		}
		cfg.MaxFileSize = n
	}
	return nil
}
