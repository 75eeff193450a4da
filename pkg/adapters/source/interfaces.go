// Package source loads independently-sourced tabular files (delimited files,
// spreadsheets, schema dumps) into in-memory tables for the inference engine.
package source

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/inferra-data/inferra-engine/pkg/models"
)

// Format identifies how an input file is parsed.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "excel"
	FormatSQL   Format = "sql"
)

// TableSource materializes one input into a Table. Loading happens before
// analysis starts; the engine itself performs no I/O.
type TableSource interface {
	// ID is the stable table identifier, unique within a run.
	ID() string

	// Load reads and parses the input. A failed load never aborts the run;
	// the analyzer records an empty entry for the table and continues.
	Load(ctx context.Context) (*models.Table, error)
}

// Discover walks dir recursively and returns a source per supported file
// (.csv, .xlsx, .xlsm, .sql), keyed by slash-separated relative path.
// LibreOffice lock artifacts are skipped. The result is passed to the
// analyzer explicitly; nothing is discovered at package init.
func Discover(dir string) (map[string]TableSource, error) {
	sources := make(map[string]TableSource)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".~lock") {
			return nil
		}
		format, ok := formatForPath(path)
		if !ok {
			return nil
		}
		id := filepath.ToSlash(path)
		sources[id] = New(id, path, format)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover input files in %s: %w", dir, err)
	}
	return sources, nil
}

func formatForPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, true
	case ".xlsx", ".xlsm":
		return FormatExcel, true
	case ".sql":
		return FormatSQL, true
	default:
		return "", false
	}
}

// New creates a source for a file of a known format.
func New(id, path string, format Format) TableSource {
	switch format {
	case FormatExcel:
		return &excelSource{id: id, path: path}
	case FormatSQL:
		return &sqlDumpSource{id: id, path: path}
	default:
		return &csvSource{id: id, path: path}
	}
}
