package config

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
)

// AIParams holds the parameters for one AI opponent tier.
type AIParams struct {
	Tier    int    `json:"tier"`
	Name    string `json:"name"`
	DelayMS int    `json:"delay_ms"` // pause before each decision so a human can follow
}

// Config holds all configurable server parameters. Rule constants live in
// package game and are not configurable.
type Config struct {
	WSPort      int    `json:"ws_port" env:"WS_PORT"`
	DatabaseURL string `json:"database_url" env:"DATABASE_URL"`
	SQLitePath  string `json:"sqlite_path" env:"SQLITE_PATH"`
	AuthBaseURL string `json:"auth_base_url" env:"AUTH_BASE_URL"`
	LogLevel    string `json:"log_level" env:"LOG_LEVEL"`

	// AIProfiles lists the opponent for each difficulty tier.
	AIProfiles []AIParams `json:"ai_profiles"`
}

// aiOverrides are the environment overrides for the first AI profile.
type aiOverrides struct {
	Name    string `env:"AI_HARD_NAME"`
	DelayMS int    `env:"AI_THINK_DELAY_MS"`
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		WSPort:     8080,
		SQLitePath: "fate-roulette.db",
		LogLevel:   "info",
		AIProfiles: []AIParams{
			{Tier: 1, Name: "Hard AI", DelayMS: 1000},
			{Tier: 2, Name: "Expert AI", DelayMS: 1200},
			{Tier: 3, Name: "Hell AI", DelayMS: 1500},
		},
	}
}

// Load reads configuration from an optional config.json file,
// then applies environment variable overrides. Fields not set
// in either source retain their default values.
func Load() *Config {
	cfg := Defaults()

	if f, err := os.Open("config.json"); err == nil {
		defer f.Close()
		if err := json.NewDecoder(f).Decode(cfg); err != nil {
			slog.Warn("failed to parse config.json", "tag", "config", "err", err)
		}
	}

	applyEnv(cfg)
	return cfg
}

func applyEnv(cfg *Config) {
	if err := env.Parse(cfg); err != nil {
		slog.Warn("invalid environment override", "tag", "config", "err", err)
	}
	if len(cfg.AIProfiles) == 0 {
		return
	}
	o := aiOverrides{Name: cfg.AIProfiles[0].Name, DelayMS: cfg.AIProfiles[0].DelayMS}
	if err := env.Parse(&o); err != nil {
		slog.Warn("invalid AI override", "tag", "config", "err", err)
	}
	cfg.AIProfiles[0].Name = o.Name
	cfg.AIProfiles[0].DelayMS = o.DelayMS
}

// Profile returns the AI profile for tier.
func (c *Config) Profile(tier int) (AIParams, bool) {
	for _, p := range c.AIProfiles {
		if p.Tier == tier {
			return p, true
		}
	}
	return AIParams{}, false
}

// SlogLevel maps LogLevel to a slog.Level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
