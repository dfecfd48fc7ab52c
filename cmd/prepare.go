package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lewcab/skill-issue/internal/dataset"
)

// prepare command flags.
var (
	// prepareOut is the directory the split matrices are written to.
	prepareOut string
	// prepareSeed overrides the shuffle seed from config.
	prepareSeed int64
)

var prepareCmd = &cobra.Command{
	Use:   "prepare <store ...>",
	Short: "Build normalized train/test matrices from dataset stores",
	Long: `Reads one or more CSV stores (plain, .gz or .zst), drops the
bookkeeping columns, shuffles, scales every feature into [0,1] and
splits the rows into train and test sets by the configured ratio.

Writes x_train.csv, y_train.csv, x_test.csv and y_test.csv to the
output directory.

Examples:
  skill-issue prepare data/240514_180000-match_data.csv
  skill-issue prepare --out data/prepared data/*.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPrepare,
}

func init() {
	prepareCmd.Flags().StringVar(&prepareOut, "out", filepath.Join("data", "prepared"), "output directory")
	prepareCmd.Flags().Int64Var(&prepareSeed, "seed", 0, "shuffle seed (default: from config; a zero seed draws from the clock)")
}

func runPrepare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	seed := cfg.Dataset.Seed
	if prepareSeed != 0 {
		seed = prepareSeed
	}

	m, err := dataset.Build(args, dataset.Options{
		TrainRatio:   cfg.Dataset.TrainRatio,
		Seed:         seed,
		DropZeroTail: cfg.Dataset.DropZeroTail,
	})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(prepareOut, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	files := []struct {
		name   string
		header []string
		write  func(*csv.Writer) error
	}{
		{"x_train.csv", m.Features, func(w *csv.Writer) error { return writeFeatureRows(w, m.XTrain) }},
		{"y_train.csv", []string{"label"}, func(w *csv.Writer) error { return writeLabelRows(w, m.YTrain) }},
		{"x_test.csv", m.Features, func(w *csv.Writer) error { return writeFeatureRows(w, m.XTest) }},
		{"y_test.csv", []string{"label"}, func(w *csv.Writer) error { return writeLabelRows(w, m.YTest) }},
	}
	for _, out := range files {
		if err := writeCSV(filepath.Join(prepareOut, out.name), out.header, out.write); err != nil {
			return err
		}
	}

	fmt.Printf("Prepared %d train / %d test rows (%d features) in %s\n",
		len(m.XTrain), len(m.XTest), len(m.Features), prepareOut)
	fmt.Printf("Label balance: train %.0f%% team-1 wins, test %.0f%%\n",
		(1-mean(m.YTrain))*100, (1-mean(m.YTest))*100)
	return nil
}

func mean(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

func writeCSV(path string, header []string, write func(*csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := write(w); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

func writeFeatureRows(w *csv.Writer, rows [][]float64) error {
	record := make([]string, 0, 64)
	for _, row := range rows {
		record = record[:0]
		for _, v := range row {
			record = append(record, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func writeLabelRows(w *csv.Writer, labels []float64) error {
	for _, v := range labels {
		if err := w.Write([]string{strconv.FormatFloat(v, 'g', -1, 64)}); err != nil {
			return err
		}
	}
	return nil
}
