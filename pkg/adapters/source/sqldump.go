package source

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/inferra-data/inferra-engine/pkg/apperrors"
	"github.com/inferra-data/inferra-engine/pkg/models"
)

var (
	primaryKeyRe = regexp.MustCompile(`(?i)PRIMARY KEY \(([^)]+)\)`)
	foreignKeyRe = regexp.MustCompile(`(?is)FOREIGN KEY \(([^)]+)\).*?REFERENCES\s+\w+\s*\(([^)]+)\)`)
)

// sqlDumpSource extracts declared key columns from a schema dump. The dump
// carries no row data, so the resulting table has zero rows and every miner
// produces empty results for it; only the declared keys feed the resolver.
type sqlDumpSource struct {
	id   string
	path string
}

func (s *sqlDumpSource) ID() string { return s.id }

func (s *sqlDumpSource) Load(ctx context.Context) (*models.Table, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", apperrors.ErrSourceUnreadable, s.path, err)
	}
	text := string(raw)

	table := &models.Table{ID: s.id}

	for _, match := range primaryKeyRe.FindAllStringSubmatch(text, -1) {
		table.DeclaredPrimaryKeys = append(table.DeclaredPrimaryKeys, splitColumnList(match[1])...)
	}
	for _, match := range foreignKeyRe.FindAllStringSubmatch(text, -1) {
		table.DeclaredForeignKeys = append(table.DeclaredForeignKeys, splitColumnList(match[1])...)
	}

	return table, nil
}

func splitColumnList(list string) []string {
	parts := strings.Split(list, ",")
	cols := make([]string, 0, len(parts))
	for _, part := range parts {
		col := strings.Trim(strings.TrimSpace(part), "`\"")
		if col != "" {
			cols = append(cols, col)
		}
	}
	return cols
}
