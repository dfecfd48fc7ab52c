// Package dataset writes collected match rows to CSV stores and turns
// stored rows into normalized train/test matrices.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lewcab/skill-issue/internal/model"
)

// Writer appends match records to a CSV store. The header row is written
// once, when the store is new or empty, and is taken from the first
// record's keys. Existing rows are never rewritten.
type Writer struct {
	path string
}

// NewWriter returns a writer for the store at path.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Path returns the store path.
func (w *Writer) Path() string { return w.path }

// Append writes the given records to the store, creating it (and its
// parent directory) on first use. An empty batch is a no-op.
func (w *Writer) Append(records []*model.Record) error {
	if len(records) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat store: %w", err)
	}

	cw := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := cw.Write(records[0].Keys()); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	for _, rec := range records {
		if err := cw.Write(rec.Values()); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush store: %w", err)
	}
	return nil
}
