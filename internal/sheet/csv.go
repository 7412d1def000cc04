package sheet

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// CSV is a Backend over a local CSV file. A missing file reads as an
// empty grid; writes go through a temp file and rename so a crashed
// writer never leaves a half-written table behind.
type CSV struct {
	path string
}

// NewCSV returns a CSV backend for the given file path. The parent
// directory is created on first write.
func NewCSV(path string) *CSV {
	return &CSV{path: path}
}

func (c *CSV) Read(ctx context.Context) ([][]string, error) {
	f, err := os.Open(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: open %s: %v", ErrUnavailable, c.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	// Rows written by other tools may have ragged lengths.
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrUnavailable, c.path, err)
	}
	return rows, nil
}

func (c *CSV) Write(ctx context.Context, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("%w: create data dir: %v", ErrUnavailable, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(c.path), ".issues-*.csv")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", ErrUnavailable, err)
	}
	tmpName := tmp.Name()

	w := csv.NewWriter(tmp)
	if err := w.WriteAll(rows); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write %s: %v", ErrUnavailable, c.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close temp file: %v", ErrUnavailable, err)
	}
	if err := os.Rename(tmpName, c.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: replace %s: %v", ErrUnavailable, c.path, err)
	}
	return nil
}

func (c *CSV) Close() error { return nil }
