package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lewcab/skill-issue/internal/config"
)

var (
	configPath string
	ledgerPath string
)

var rootCmd = &cobra.Command{
	Use:   "skill-issue",
	Short: "League of Legends match dataset collector",
	Long: `Collects pro-match history from the Leaguepedia cargo API, computes
pre-match rolling averages per team and per role, and writes flat rows
to CSV stores ready for model training.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "path to TOML config file")
	rootCmd.PersistentFlags().StringVar(&ledgerPath, "ledger", "", "override the collection ledger path")

	rootCmd.AddCommand(collectCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(prepareCmd)
}

// loadConfig reads the configuration and applies root-level flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if ledgerPath != "" {
		cfg.Ledger = ledgerPath
	}
	return cfg, nil
}
