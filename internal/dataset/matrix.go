package dataset

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
)

// identityColumns are bookkeeping fields dropped before training.
var identityColumns = map[string]bool{
	"MatchId":      true,
	"Tournament":   true,
	"DateTime_UTC": true,
	"Team1":        true,
	"Team2":        true,
}

const labelColumn = "Winner"

// Options controls how stored rows become a train/test matrix.
type Options struct {
	TrainRatio float64
	// Seed fixes the shuffle order; 0 seeds from the clock.
	Seed int64
	// DropZeroTail drops rows whose last feature column is zero. A zero
	// there means the snapshot never saw that stat in its window, which
	// usually marks a patch where the objective did not exist yet.
	DropZeroTail bool
}

// Matrix holds the prepared split. Feature values are min/max scaled per
// column within each store file before the files are concatenated; the
// scaling still sees that file's train and test rows together, and the
// resulting leakage is accepted to keep parity with the backtests this
// feeds.
type Matrix struct {
	Features []string
	XTrain   [][]float64
	YTrain   []float64
	XTest    [][]float64
	YTest    []float64
}

// Build reads one or more CSV stores and prepares a shuffled, normalized
// train/test split. Each store is processed on its own (shuffle, scale,
// prefix split by the train ratio) and the per-store results are
// concatenated in argument order. Stores ending in .zst or .gz are
// decompressed on the fly. All stores must carry the same feature columns.
func Build(paths []string, opts Options) (*Matrix, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no stores given")
	}
	if opts.TrainRatio <= 0 || opts.TrainRatio >= 1 {
		return nil, fmt.Errorf("train ratio %v outside (0,1)", opts.TrainRatio)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	out := &Matrix{}
	for _, path := range paths {
		header, rows, err := readStore(path)
		if err != nil {
			return nil, err
		}

		features, x, y, err := parseRows(header, rows, opts.DropZeroTail)
		if err != nil {
			return nil, fmt.Errorf("store %s: %w", path, err)
		}
		if len(x) == 0 {
			return nil, fmt.Errorf("store %s: no usable rows", path)
		}
		if out.Features == nil {
			out.Features = features
		} else if !sameColumns(out.Features, features) {
			return nil, fmt.Errorf("store %s: feature columns do not match %s", path, paths[0])
		}

		rng.Shuffle(len(x), func(i, j int) {
			x[i], x[j] = x[j], x[i]
			y[i], y[j] = y[j], y[i]
		})
		normalize(x)

		nTrain := int(float64(len(x)) * opts.TrainRatio)
		out.XTrain = append(out.XTrain, x[:nTrain]...)
		out.YTrain = append(out.YTrain, y[:nTrain]...)
		out.XTest = append(out.XTest, x[nTrain:]...)
		out.YTest = append(out.YTest, y[nTrain:]...)
	}
	return out, nil
}

// parseRows resolves the label and feature columns from the header and
// converts the raw rows to numeric form, applying the zero-tail filter.
func parseRows(header []string, rows [][]string, dropZeroTail bool) ([]string, [][]float64, []float64, error) {
	labelIdx := -1
	var featureIdx []int
	var features []string
	for i, name := range header {
		switch {
		case name == labelColumn:
			labelIdx = i
		case identityColumns[name]:
		default:
			featureIdx = append(featureIdx, i)
			features = append(features, name)
		}
	}
	if labelIdx < 0 {
		return nil, nil, nil, fmt.Errorf("no %s column in store header", labelColumn)
	}
	if len(featureIdx) == 0 {
		return nil, nil, nil, fmt.Errorf("no feature columns in store header")
	}

	var x [][]float64
	var y []float64
	for _, row := range rows {
		side, err := strconv.Atoi(row[labelIdx])
		if err != nil || (side != 1 && side != 2) {
			return nil, nil, nil, fmt.Errorf("bad %s value %q", labelColumn, row[labelIdx])
		}
		feats := make([]float64, len(featureIdx))
		for j, idx := range featureIdx {
			v, err := strconv.ParseFloat(row[idx], 64)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("bad %s value %q", header[idx], row[idx])
			}
			feats[j] = v
		}
		if dropZeroTail && feats[len(feats)-1] == 0 {
			continue
		}
		x = append(x, feats)
		y = append(y, float64(side-1))
	}
	return features, x, y, nil
}

// normalize scales each column into [0,1]. A constant column maps to 0.
func normalize(x [][]float64) {
	if len(x) == 0 {
		return
	}
	cols := len(x[0])
	for c := 0; c < cols; c++ {
		min, max := x[0][c], x[0][c]
		for _, row := range x {
			if row[c] < min {
				min = row[c]
			}
			if row[c] > max {
				max = row[c]
			}
		}
		span := max - min
		for _, row := range x {
			if span == 0 {
				row[c] = 0
			} else {
				row[c] = (row[c] - min) / span
			}
		}
	}
}

func readStore(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	switch {
	case strings.HasSuffix(path, ".zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, nil, fmt.Errorf("zstd reader for %s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, nil, fmt.Errorf("gzip reader for %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	cr := csv.NewReader(r)
	all, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read store %s: %w", path, err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("store %s is empty", path)
	}
	return all[0], all[1:], nil
}

func sameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
