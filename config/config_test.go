package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.WSPort != 8080 {
		t.Errorf("expected WSPort=8080, got %d", cfg.WSPort)
	}
	if cfg.DatabaseURL != "" {
		t.Errorf("expected no DatabaseURL by default, got %q", cfg.DatabaseURL)
	}
	if len(cfg.AIProfiles) != 3 {
		t.Fatalf("expected 3 AI profiles, got %d", len(cfg.AIProfiles))
	}
	for i, p := range cfg.AIProfiles {
		if p.Tier != i+1 {
			t.Errorf("expected profile %d to be tier %d, got %d", i, i+1, p.Tier)
		}
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("WS_PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/fate")
	t.Setenv("AI_HARD_NAME", "Rival")
	t.Setenv("AI_THINK_DELAY_MS", "0")

	cfg := Load()

	if cfg.WSPort != 9090 {
		t.Errorf("expected WSPort=9090 after env override, got %d", cfg.WSPort)
	}
	if cfg.DatabaseURL != "postgres://localhost/fate" {
		t.Errorf("expected DatabaseURL override, got %q", cfg.DatabaseURL)
	}
	if cfg.AIProfiles[0].Name != "Rival" || cfg.AIProfiles[0].DelayMS != 0 {
		t.Errorf("expected first AI profile overridden, got %+v", cfg.AIProfiles[0])
	}
	// Non-overridden fields should remain default
	if cfg.AIProfiles[1].Name != "Expert AI" {
		t.Errorf("expected second profile untouched, got %q", cfg.AIProfiles[1].Name)
	}
}

func TestLoadWithInvalidEnv(t *testing.T) {
	t.Setenv("WS_PORT", "invalid")

	cfg := Load()

	if cfg.WSPort != 8080 {
		t.Errorf("expected WSPort=8080 (default) with invalid env, got %d", cfg.WSPort)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	data := `{"ws_port": 7000, "ai_profiles": [{"tier": 1, "name": "Solo", "delay_ms": 5}]}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	cfg := Load()

	if cfg.WSPort != 7000 {
		t.Errorf("expected WSPort=7000 from file, got %d", cfg.WSPort)
	}
	if len(cfg.AIProfiles) != 1 || cfg.AIProfiles[0].Name != "Solo" {
		t.Errorf("expected a single profile from file, got %+v", cfg.AIProfiles)
	}
	if _, ok := cfg.Profile(2); ok {
		t.Error("expected no tier 2 profile")
	}
}

func TestSlogLevel(t *testing.T) {
	cases := map[string]slog.Level{"debug": slog.LevelDebug, "warn": slog.LevelWarn, "error": slog.LevelError, "": slog.LevelInfo, "loud": slog.LevelInfo}
	for in, want := range cases {
		c := &Config{LogLevel: in}
		if got := c.SlogLevel(); got != want {
			t.Errorf("%q: expected %v, got %v", in, want, got)
		}
	}
}
