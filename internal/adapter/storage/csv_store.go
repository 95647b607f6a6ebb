package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// CSVStore persists catalog rows as a comma-delimited file, one product
// per line.
type CSVStore struct {
	path string
}

func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

func (s *CSVStore) Load(ctx context.Context) ([][]string, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		// first run: nothing persisted yet
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // malformed rows are reported by the catalog, not here
	r.LazyQuotes = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return rows, nil
}

func (s *CSVStore) Save(ctx context.Context, rows [][]string) error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create catalog file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("write catalog file: %w", err)
	}
	return f.Close()
}
