package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds CLI settings read from the environment.
type Config struct {
	APIURL          string        `env:"BOXVIEW_API_URL"          envDefault:"https://view-api.box.com"`
	APIKey          string        `env:"BOXVIEW_API_KEY"`
	SessionDuration time.Duration `env:"BOXVIEW_SESSION_DURATION" envDefault:"60m"`
	Timeout         time.Duration `env:"BOXVIEW_TIMEOUT"          envDefault:"30s"`
	LogLevel        string        `env:"BOXVIEW_LOG_LEVEL"        envDefault:"warn"`
	ConfigDir       string        `env:"BOXVIEW_CONFIG_DIR"`
}

// Load parses the environment. When BOXVIEW_API_KEY is unset the key is
// read from the token file written by "boxview login".
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.SessionDuration < 0 {
		return Config{}, fmt.Errorf("BOXVIEW_SESSION_DURATION must not be negative, got %s", cfg.SessionDuration)
	}
	if cfg.ConfigDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("get home dir: %w", err)
		}
		cfg.ConfigDir = filepath.Join(home, ".boxview")
	}
	if cfg.APIKey == "" {
		cfg.APIKey = readToken(cfg.TokenPath())
	}
	return cfg, nil
}

// TokenPath returns the file holding the saved API key.
func (c Config) TokenPath() string {
	return filepath.Join(c.ConfigDir, "token")
}

// SlogLevel maps LogLevel onto a slog.Level, defaulting to warn.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// SaveToken writes the API key to the token file with owner-only permissions.
func (c Config) SaveToken(key string) error {
	if err := os.MkdirAll(c.ConfigDir, 0700); err != nil {
		return fmt.Errorf("create %s: %w", c.ConfigDir, err)
	}
	if err := os.WriteFile(c.TokenPath(), []byte(strings.TrimSpace(key)), 0600); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// RemoveToken deletes the token file. It reports false if none existed.
func (c Config) RemoveToken() (bool, error) {
	err := os.Remove(c.TokenPath())
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("remove token: %w", err)
	}
	return true, nil
}

func readToken(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
