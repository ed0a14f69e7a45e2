package table

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadOptions controls how raw files become a Dataset.
type LoadOptions struct {
	// Delimiter for CSV. If 0, '\t' for .tsv files and ',' otherwise.
	Delimiter rune
	// SheetName selects an XLSX sheet; SheetIndex (1-based) is used when empty.
	SheetName  string
	SheetIndex int
	// MaxRows limits rows read; 0 means unlimited.
	MaxRows int
}

// Loader turns a file into a Dataset of raw string cells.
type Loader interface {
	CanLoad(path string) bool
	Load(ctx context.Context, path string, opt LoadOptions) (Dataset, error)
}

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

// ErrUnsupported indicates no registered loader accepts the file.
var ErrUnsupported = errors.New("unsupported dataset format")

// LoadFile selects a loader based on filename and loads the dataset.
func LoadFile(ctx context.Context, path string, opt LoadOptions) (Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		return Dataset{}, fmt.Errorf("stat dataset: %w", err)
	}
	for _, l := range registry {
		if l.CanLoad(path) {
			return l.Load(ctx, path, opt)
		}
	}
	return Dataset{}, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
}

func init() {
	Register(csvLoader{})
	Register(xlsxLoader{})
}

// fromRecords builds a dataset from a header and string records. Short
// records are padded with Null; extra cells beyond the header are dropped.
func fromRecords(header []string, records [][]string) Dataset {
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		r := make(Row, len(cols))
		for j, c := range cols {
			if j < len(rec) {
				r[c] = String(rec[j])
			} else {
				r[c] = Null()
			}
		}
		rows = append(rows, r)
	}
	return Dataset{columns: cols, rows: rows}
}
