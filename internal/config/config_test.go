package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultsValidate(t *testing.T) {
	cfg := Defaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	if cfg.Collect.Window != 10 || cfg.Collect.RosterSize != 5 {
		t.Errorf("unexpected window/roster defaults: %d/%d", cfg.Collect.Window, cfg.Collect.RosterSize)
	}
	if cfg.Collect.Pacing() != 2*time.Second || cfg.Collect.Cooldown() != 30*time.Second {
		t.Errorf("unexpected throttling defaults: %v/%v", cfg.Collect.Pacing(), cfg.Collect.Cooldown())
	}
	if cfg.Dataset.TrainRatio != 0.8 {
		t.Errorf("unexpected train ratio default: %v", cfg.Dataset.TrainRatio)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty base url", func(c *Config) { c.API.BaseURL = "" }},
		{"zero window", func(c *Config) { c.Collect.Window = 0 }},
		{"zero roster", func(c *Config) { c.Collect.RosterSize = 0 }},
		{"negative cutoff", func(c *Config) { c.Collect.CutoffOffsetHours = -1 }},
		{"zero list limit", func(c *Config) { c.Collect.ListLimit = 0 }},
		{"train ratio too high", func(c *Config) { c.Dataset.TrainRatio = 1.5 }},
		{"train ratio of one leaves no test rows", func(c *Config) { c.Dataset.TrainRatio = 1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Defaults()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
store = "data/custom.csv"
tournaments = ["MSI 2024"]

[collect]
window = 5
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store != "data/custom.csv" {
		t.Errorf("store: %q", cfg.Store)
	}
	if len(cfg.Tournaments) != 1 || cfg.Tournaments[0] != "MSI 2024" {
		t.Errorf("tournaments: %v", cfg.Tournaments)
	}
	if cfg.Collect.Window != 5 {
		t.Errorf("window: %d", cfg.Collect.Window)
	}
	// Untouched sections keep defaults.
	if cfg.Collect.CooldownSecs != 30 {
		t.Errorf("cooldown default lost: %d", cfg.Collect.CooldownSecs)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Collect.Window != 10 {
		t.Errorf("window: %d", cfg.Collect.Window)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SKILLISSUE_COLLECT_WINDOW", "7")
	t.Setenv("SKILLISSUE_DATASET_TRAIN_RATIO", "0.9")
	t.Setenv("SKILLISSUE_LEDGER", "other/ledger.db")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Collect.Window != 7 {
		t.Errorf("window override: %d", cfg.Collect.Window)
	}
	if cfg.Dataset.TrainRatio != 0.9 {
		t.Errorf("train ratio override: %v", cfg.Dataset.TrainRatio)
	}
	if cfg.Ledger != "other/ledger.db" {
		t.Errorf("ledger override: %q", cfg.Ledger)
	}
}

func TestStorePath(t *testing.T) {
	cfg := Defaults()
	now := time.Date(2024, 5, 14, 18, 30, 45, 0, time.UTC)

	got := cfg.StorePath(now)
	want := filepath.Join("data", "240514_183045-match_data.csv")
	if got != want {
		t.Errorf("StorePath: want %q, got %q", want, got)
	}

	cfg.Store = "data/fixed.csv"
	if got := cfg.StorePath(now); got != "data/fixed.csv" {
		t.Errorf("explicit store: %q", got)
	}
}
