package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lewcab/skill-issue/internal/aggregator"
	"github.com/lewcab/skill-issue/internal/cargo"
	"github.com/lewcab/skill-issue/internal/dataset"
	"github.com/lewcab/skill-issue/internal/model"
	"github.com/lewcab/skill-issue/internal/storage"
)

// collect command flags.
var (
	// collectStore overrides the dataset store path from config.
	collectStore string
	// collectForce rebuilds rows even when the ledger already has them.
	collectForce bool
)

var collectCmd = &cobra.Command{
	Use:   "collect [tournament ...]",
	Short: "Collect match rows for one or more tournaments",
	Long: `Lists every finished match of the given tournaments (or the
tournaments from config when none are given), computes each side's
pre-match rolling averages, and appends one flat row per usable match
to the dataset store.

Matches already present in the collection ledger are skipped, so
repeated runs only fetch what is new.

Examples:
  skill-issue collect "LEC 2024 Summer"
  skill-issue collect --store data/msi.csv "MSI 2024"`,
	RunE: runCollect,
}

func init() {
	collectCmd.Flags().StringVar(&collectStore, "store", "", "dataset store path (default: timestamped file under data/)")
	collectCmd.Flags().BoolVar(&collectForce, "force", false, "rebuild rows even if already recorded in the ledger")
}

func runCollect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	tournaments := args
	if len(tournaments) == 0 {
		tournaments = cfg.Tournaments
	}
	if len(tournaments) == 0 {
		return fmt.Errorf("no tournaments given (pass as arguments or set tournaments in config)")
	}

	if collectStore != "" {
		cfg.Store = collectStore
	}
	storePath := cfg.StorePath(time.Now())

	db, err := storage.Open(cfg.Ledger)
	if err != nil {
		return err
	}
	defer db.Close()

	client := cargo.NewClient(cfg.API.BaseURL, cfg.API.UserAgent, cfg.API.Timeout())
	runner := cargo.NewRunner(client, cfg.Collect.Pacing(), cfg.Collect.Cooldown())
	agg := aggregator.New(runner, cfg.Collect)
	builder := aggregator.NewBuilder(agg)
	writer := dataset.NewWriter(storePath)

	total := 0
	for _, tournament := range tournaments {
		n, err := collectTournament(db, agg, builder, writer, tournament)
		if err != nil {
			return fmt.Errorf("collect %q: %w", tournament, err)
		}
		total += n
	}

	fmt.Printf("\nDone: %d rows written to %s\n", total, storePath)
	return nil
}

// collectTournament builds and appends rows for a single tournament,
// returning the number of rows written.
func collectTournament(db *storage.DB, agg *aggregator.Aggregator, builder *aggregator.Builder, writer *dataset.Writer, tournament string) (int, error) {
	fmt.Printf("Tournament: %s\n", tournament)

	refs, err := agg.TournamentMatches(tournament)
	if err != nil {
		return 0, fmt.Errorf("list matches: %w", err)
	}
	if len(refs) == 0 {
		fmt.Println("  no matches found")
		return 0, nil
	}

	var batch []*model.Record
	var written []model.MatchRef
	for i, ref := range refs {
		if !collectForce {
			exists, err := db.MatchExists(ref.MatchID)
			if err != nil {
				return 0, err
			}
			if exists {
				continue
			}
		}

		fmt.Printf("[%d/%d] %s  %s vs %s\n", i+1, len(refs), ref.MatchID, ref.Team1, ref.Team2)

		rec, err := builder.Build(ref)
		if err != nil {
			if aggregator.IsSkip(err) {
				fmt.Fprintf(os.Stderr, "  [skip] %s: %v\n", ref.MatchID, err)
				continue
			}
			return 0, fmt.Errorf("build %s: %w", ref.MatchID, err)
		}

		batch = append(batch, rec)
		written = append(written, ref)
	}

	if err := writer.Append(batch); err != nil {
		return 0, fmt.Errorf("append store: %w", err)
	}
	for _, ref := range written {
		if err := db.RecordMatch(ref, writer.Path()); err != nil {
			return 0, fmt.Errorf("record %s: %w", ref.MatchID, err)
		}
	}

	fmt.Printf("  %d/%d rows written\n", len(batch), len(refs))
	return len(batch), nil
}
