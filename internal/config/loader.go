package config

import (
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path (skipped when path is empty
// or missing), merges it on top of the built-in defaults, applies
// SKILLISSUE_* environment variable overrides, and validates the result.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return nil, err
			}
		}
	}

	// Load .env if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnvOverrides reads well-known SKILLISSUE_* environment variables and
// overwrites the corresponding Config fields when set.
func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.Store, "SKILLISSUE_STORE")
	setStr(&cfg.Ledger, "SKILLISSUE_LEDGER")

	setStr(&cfg.API.BaseURL, "SKILLISSUE_API_BASE_URL")
	setStr(&cfg.API.UserAgent, "SKILLISSUE_API_USER_AGENT")
	setInt(&cfg.API.TimeoutSecs, "SKILLISSUE_API_TIMEOUT_SECS")

	setInt(&cfg.Collect.Window, "SKILLISSUE_COLLECT_WINDOW")
	setInt(&cfg.Collect.RosterSize, "SKILLISSUE_COLLECT_ROSTER_SIZE")
	setInt(&cfg.Collect.CutoffOffsetHours, "SKILLISSUE_COLLECT_CUTOFF_OFFSET_HOURS")
	setInt(&cfg.Collect.PacingSecs, "SKILLISSUE_COLLECT_PACING_SECS")
	setInt(&cfg.Collect.CooldownSecs, "SKILLISSUE_COLLECT_COOLDOWN_SECS")
	setInt(&cfg.Collect.ListLimit, "SKILLISSUE_COLLECT_LIST_LIMIT")

	setFloat64(&cfg.Dataset.TrainRatio, "SKILLISSUE_DATASET_TRAIN_RATIO")
	setInt64(&cfg.Dataset.Seed, "SKILLISSUE_DATASET_SEED")
	setBool(&cfg.Dataset.DropZeroTail, "SKILLISSUE_DATASET_DROP_ZERO_TAIL")
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
