package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lewcab/skill-issue/internal/report"
	"github.com/lewcab/skill-issue/internal/storage"
)

// listTournament filters the listing to one tournament.
var listTournament string

var listCmd = &cobra.Command{
	Use:   "list [match-id]",
	Short: "List collected matches from the ledger",
	Long: `Without arguments, lists every recorded match. With a match id,
shows that single ledger entry.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listTournament, "tournament", "", "only list matches of this tournament")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := storage.Open(cfg.Ledger)
	if err != nil {
		return err
	}
	defer db.Close()

	if len(args) == 1 {
		entry, err := db.GetMatch(args[0])
		if err != nil {
			return fmt.Errorf("get match: %w", err)
		}
		if entry == nil {
			return fmt.Errorf("match %q not in ledger", args[0])
		}
		report.PrintLedger(os.Stdout, []storage.Entry{*entry})
		return nil
	}

	entries, err := db.ListMatches(listTournament)
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}

	report.PrintLedger(os.Stdout, entries)

	counts, err := db.TournamentCounts()
	if err != nil {
		return err
	}
	if len(counts) > 1 && listTournament == "" {
		fmt.Println()
		report.PrintTournamentCounts(os.Stdout, counts)
	}
	return nil
}
