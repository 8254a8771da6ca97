package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BOXVIEW_CONFIG_DIR", dir)
	unsetEnv(t, "BOXVIEW_API_KEY", "BOXVIEW_API_URL", "BOXVIEW_SESSION_DURATION")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.APIURL != "https://view-api.box.com" {
		t.Errorf("APIURL = %q, want default", cfg.APIURL)
	}
	if cfg.SessionDuration != time.Hour {
		t.Errorf("SessionDuration = %v, want 1h", cfg.SessionDuration)
	}
	if cfg.APIKey != "" {
		t.Errorf("APIKey = %q, want empty", cfg.APIKey)
	}
	if got, want := cfg.TokenPath(), filepath.Join(dir, "token"); got != want {
		t.Errorf("TokenPath() = %q, want %q", got, want)
	}
}

// unsetEnv clears keys for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k) //nolint:errcheck
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("BOXVIEW_CONFIG_DIR", t.TempDir())
	t.Setenv("BOXVIEW_API_URL", "http://localhost:9000")
	t.Setenv("BOXVIEW_API_KEY", "env-key")
	t.Setenv("BOXVIEW_SESSION_DURATION", "15m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.APIURL != "http://localhost:9000" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.APIKey != "env-key" {
		t.Errorf("APIKey = %q, want %q", cfg.APIKey, "env-key")
	}
	if cfg.SessionDuration != 15*time.Minute {
		t.Errorf("SessionDuration = %v, want 15m", cfg.SessionDuration)
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("BOXVIEW_CONFIG_DIR", t.TempDir())
	t.Setenv("BOXVIEW_SESSION_DURATION", "forever")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unparsable duration")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("BOXVIEW_CONFIG_DIR", filepath.Join(t.TempDir(), "nested"))
	unsetEnv(t, "BOXVIEW_API_KEY")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if err := cfg.SaveToken("  file-key\n"); err != nil {
		t.Fatalf("SaveToken() error: %v", err)
	}

	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.APIKey != "file-key" {
		t.Errorf("APIKey = %q, want %q", cfg.APIKey, "file-key")
	}

	removed, err := cfg.RemoveToken()
	if err != nil || !removed {
		t.Fatalf("RemoveToken() = %v, %v; want true, nil", removed, err)
	}
	removed, err = cfg.RemoveToken()
	if err != nil || removed {
		t.Errorf("second RemoveToken() = %v, %v; want false, nil", removed, err)
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"error", slog.LevelError},
		{"", slog.LevelWarn},
		{"verbose", slog.LevelWarn},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := (Config{LogLevel: tt.in}).SlogLevel(); got != tt.want {
				t.Errorf("SlogLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
