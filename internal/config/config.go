// Package config defines process configuration and its loading hooks.
//
// Conventions:
// - Fields carry koanf tags for file/env loading and validate tags for checks.
// - New() returns defaults; Load layers file and env on top.
// - Errors are wrapped with this package's sentinel kinds.
package config

import (
	"github.com/okian/xprank/internal/domain/rank"
	"github.com/okian/xprank/internal/domain/xp"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"omitempty,oneof=debug info warn warning error"`

	// LogFormat selects text or json output.
	LogFormat string `koanf:"log_format" validate:"omitempty,oneof=text json"`

	// Difficulties maps difficulty keys to XP multipliers.
	Difficulties map[string]float64 `koanf:"difficulties" validate:"required,min=1,dive,keys,required,endkeys,gt=0"`

	// Ranks optionally replaces the built-in ladder. Empty keeps the default.
	Ranks []RankConfig `koanf:"ranks" validate:"omitempty,dive"`

	// MetricsFile, when set, receives a Prometheus textfile after each command.
	MetricsFile string `koanf:"metrics_file"`

	// DedupeSize bounds the number of remembered match ids (<= 0 is unbounded).
	DedupeSize int `koanf:"dedupe_size"`

	// LeaderboardLimit caps how many players the replay summary prints.
	LeaderboardLimit int `koanf:"leaderboard_limit" validate:"gt=0,lte=1000"`
}

// RankConfig is a single configured rank.
type RankConfig struct {
	Name  string `koanf:"name" validate:"required"`
	MinXP int64  `koanf:"min_xp" validate:"gte=0"`
	Icon  string `koanf:"icon"`
	Color string `koanf:"color"`
	Tier  int    `koanf:"tier" validate:"gt=0"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Difficulties:     xp.DefaultDifficulties(),
		DedupeSize:       50_000,
		LeaderboardLimit: 10,
	}
}

// RankTable builds the configured ladder, or the built-in one when none is set.
func (c *Config) RankTable() (*rank.Table, error) {
	if len(c.Ranks) == 0 {
		return rank.Default(), nil
	}
	defs := make([]rank.Definition, len(c.Ranks))
	for i, r := range c.Ranks {
		defs[i] = rank.Definition{Name: r.Name, MinXP: r.MinXP, Icon: r.Icon, Color: r.Color, Tier: r.Tier}
	}
	return rank.NewTable(defs)
}
