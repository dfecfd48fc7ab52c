package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lewcab/skill-issue/internal/aggregator"
	"github.com/lewcab/skill-issue/internal/cargo"
	"github.com/lewcab/skill-issue/internal/report"
)

// statsAt is the reference time for the rolling window (default: now).
var statsAt string

var statsCmd = &cobra.Command{
	Use:   "stats <team>",
	Short: "Show a team's rolling averages and per-role form",
	Long: `Fetches a team's most recent matches and prints the same rolling
averages the collector would write for an upcoming match: team-level
win rate, economy and objectives, plus per-role kills, deaths, assists,
gold, creep score and damage.

Examples:
  skill-issue stats "G2 Esports"
  skill-issue stats --at "2024-05-14 18:00:00" "G2 Esports"`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsAt, "at", "", "reference time (YYYY-MM-DD HH:MM:SS UTC, default now)")
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	team := args[0]

	ref := time.Now().UTC()
	if statsAt != "" {
		ref, err = cargo.ParseTime(statsAt)
		if err != nil {
			return fmt.Errorf("parse --at: %w", err)
		}
	}

	client := cargo.NewClient(cfg.API.BaseURL, cfg.API.UserAgent, cfg.API.Timeout())
	runner := cargo.NewRunner(client, cfg.Collect.Pacing(), cfg.Collect.Cooldown())
	agg := aggregator.New(runner, cfg.Collect)

	team1, err := agg.TeamStats(team, ref)
	if err != nil {
		return fmt.Errorf("team stats for %q: %w", team, err)
	}
	report.PrintTeamSnapshot(os.Stdout, team, team1)

	roles, err := agg.RoleStats(team, ref)
	if err != nil {
		if aggregator.IsSkip(err) {
			fmt.Fprintf(os.Stderr, "no complete role window: %v\n", err)
			return nil
		}
		return fmt.Errorf("role stats for %q: %w", team, err)
	}
	fmt.Println()
	report.PrintRoleTable(os.Stdout, roles)
	return nil
}
