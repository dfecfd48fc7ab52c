// Package config defines the collector's run configuration and provides
// validation helpers. Every fixed pipeline parameter (window size, roster
// size, pacing, cooldown, train ratio) lives here rather than as scattered
// package constants.
package config

import (
	"fmt"
	"path/filepath"
	"time"
)

// Config is the root configuration structure. Fields are populated from a
// TOML file and then optionally overridden by SKILLISSUE_* environment
// variables.
type Config struct {
	// Store is the dataset CSV path. Empty selects a timestamped default
	// under data/.
	Store string `toml:"store"`
	// Ledger is the sqlite collection-ledger path.
	Ledger string `toml:"ledger"`
	// Tournaments to collect, in processing order.
	Tournaments []string `toml:"tournaments"`

	API     APIConfig     `toml:"api"`
	Collect CollectConfig `toml:"collect"`
	Dataset DatasetConfig `toml:"dataset"`
}

// APIConfig holds the remote cargo query endpoint parameters.
type APIConfig struct {
	BaseURL     string `toml:"base_url"`
	UserAgent   string `toml:"user_agent"`
	TimeoutSecs int    `toml:"timeout_secs"`
}

// CollectConfig holds the aggregation-window and throttling parameters.
type CollectConfig struct {
	// Window is the number of most-recent historical matches averaged per
	// team, and the exact per-role entry count required by the role
	// aggregator.
	Window int `toml:"window"`
	// RosterSize is the number of roles per team.
	RosterSize int `toml:"roster_size"`
	// CutoffOffsetHours shifts the reference time earlier so same-day
	// history is excluded from snapshots.
	CutoffOffsetHours int `toml:"cutoff_offset_hours"`
	// PacingSecs is the courtesy delay before every non-retry remote call.
	PacingSecs int `toml:"pacing_secs"`
	// CooldownSecs is the sleep before the single rate-limit retry.
	CooldownSecs int `toml:"cooldown_secs"`
	// ListLimit caps the tournament match-listing query.
	ListLimit int `toml:"list_limit"`
}

// DatasetConfig holds the feature-matrix parameters.
type DatasetConfig struct {
	TrainRatio float64 `toml:"train_ratio"`
	// Seed fixes the shuffle order; 0 seeds from the clock.
	Seed int64 `toml:"seed"`
	// DropZeroTail enables the data-quality rule that discards rows whose
	// last feature column is zero.
	DropZeroTail bool `toml:"drop_zero_tail"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Ledger: filepath.Join("data", "ledger.db"),
		API: APIConfig{
			BaseURL:     "https://lol.fandom.com/api.php",
			UserAgent:   "skill-issue (match dataset collector)",
			TimeoutSecs: 30,
		},
		Collect: CollectConfig{
			Window:            10,
			RosterSize:        5,
			CutoffOffsetHours: 6,
			PacingSecs:        2,
			CooldownSecs:      30,
			ListLimit:         500,
		},
		Dataset: DatasetConfig{
			TrainRatio:   0.8,
			Seed:         123,
			DropZeroTail: true,
		},
	}
}

// StorePath returns the configured store path, or a timestamped default of
// the form data/yymmdd_HHMMSS-match_data.csv.
func (c *Config) StorePath(now time.Time) string {
	if c.Store != "" {
		return c.Store
	}
	return filepath.Join("data", now.Format("060102_150405")+"-match_data.csv")
}

func (c *CollectConfig) CutoffOffset() time.Duration {
	return time.Duration(c.CutoffOffsetHours) * time.Hour
}

func (c *CollectConfig) Pacing() time.Duration {
	return time.Duration(c.PacingSecs) * time.Second
}

func (c *CollectConfig) Cooldown() time.Duration {
	return time.Duration(c.CooldownSecs) * time.Second
}

func (c *APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	if c.Collect.Window <= 0 {
		return fmt.Errorf("collect.window must be positive, got %d", c.Collect.Window)
	}
	if c.Collect.RosterSize <= 0 {
		return fmt.Errorf("collect.roster_size must be positive, got %d", c.Collect.RosterSize)
	}
	if c.Collect.CutoffOffsetHours < 0 {
		return fmt.Errorf("collect.cutoff_offset_hours must not be negative, got %d", c.Collect.CutoffOffsetHours)
	}
	if c.Collect.ListLimit <= 0 {
		return fmt.Errorf("collect.list_limit must be positive, got %d", c.Collect.ListLimit)
	}
	if c.Dataset.TrainRatio <= 0 || c.Dataset.TrainRatio >= 1 {
		return fmt.Errorf("dataset.train_ratio must be in (0, 1), got %v", c.Dataset.TrainRatio)
	}
	return nil
}
