package source

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/inferra-data/inferra-engine/pkg/apperrors"
	"github.com/inferra-data/inferra-engine/pkg/models"
)

// csvSource reads a delimited file with an encoding fallback chain:
// UTF-8, then Windows-1252, then ISO-8859-1. Real-world exports from
// spreadsheet tools are frequently not UTF-8.
type csvSource struct {
	id   string
	path string
}

func (s *csvSource) ID() string { return s.id }

func (s *csvSource) Load(ctx context.Context) (*models.Table, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", apperrors.ErrSourceUnreadable, s.path, err)
	}

	decoded, err := decodeText(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", apperrors.ErrSourceUnreadable, s.path, err)
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.FieldsPerRecord = -1 // dirty inputs have ragged rows
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", apperrors.ErrSourceUnreadable, s.path, err)
	}

	table, err := tableFromRows(s.id, rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return table, nil
}

func decodeText(raw []byte) ([]byte, error) {
	if utf8.Valid(raw) {
		return raw, nil
	}
	if decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw); err == nil {
		return decoded, nil
	}
	return charmap.ISO8859_1.NewDecoder().Bytes(raw)
}
