package source

import (
	"strconv"
	"strings"
	"time"

	"github.com/inferra-data/inferra-engine/pkg/apperrors"
	"github.com/inferra-data/inferra-engine/pkg/models"
)

// timestampLayouts are tried in order when inferring timestamp columns.
var timestampLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
	"01/02/2006 15:04",
}

// nullLiterals are cell texts treated as NULL besides the empty string.
var nullLiterals = map[string]bool{
	"null": true,
	"NULL": true,
	"NaN":  true,
	"NA":   true,
}

// tableFromRows builds a typed Table from a header row plus raw string rows.
// Files carry no declared types, so each column's scalar kind is inferred
// from its non-null values and the values re-parsed accordingly. Short rows
// are padded with NULLs; long rows are truncated to the header width.
func tableFromRows(id string, rows [][]string) (*models.Table, error) {
	if len(rows) == 0 {
		return nil, apperrors.ErrNoHeader
	}
	header := rows[0]
	data := rows[1:]

	table := &models.Table{
		ID:       id,
		RowCount: len(data),
		Columns:  make([]*models.Column, len(header)),
	}

	for i, name := range header {
		raw := make([]string, len(data))
		for r, row := range data {
			if i < len(row) {
				raw[r] = row[i]
			}
		}
		kind := inferKind(raw)
		col := &models.Column{
			Name:   strings.TrimSpace(name),
			Kind:   kind,
			Values: make([]models.Value, len(raw)),
		}
		for r, cell := range raw {
			col.Values[r] = parseCell(cell, kind)
		}
		table.Columns[i] = col
	}
	return table, nil
}

func isNullCell(cell string) bool {
	trimmed := strings.TrimSpace(cell)
	return trimmed == "" || nullLiterals[trimmed]
}

// inferKind picks the narrowest scalar kind that fits every non-null cell:
// integer, float, timestamp, bool, then text. An all-null column is text.
func inferKind(cells []string) models.Kind {
	allInt, allFloat, allBool := true, true, true
	var tsLayout string
	allTS := true
	nonNull := 0

	for _, cell := range cells {
		if isNullCell(cell) {
			continue
		}
		nonNull++
		trimmed := strings.TrimSpace(cell)

		if allInt {
			if _, err := strconv.ParseInt(trimmed, 10, 64); err != nil {
				allInt = false
			}
		}
		if allFloat {
			if _, err := strconv.ParseFloat(trimmed, 64); err != nil {
				allFloat = false
			}
		}
		if allTS {
			if tsLayout == "" {
				tsLayout = matchLayout(trimmed)
				if tsLayout == "" {
					allTS = false
				}
			} else if _, err := time.Parse(tsLayout, trimmed); err != nil {
				allTS = false
			}
		}
		if allBool {
			switch strings.ToLower(trimmed) {
			case "true", "false":
			default:
				allBool = false
			}
		}
	}

	if nonNull == 0 {
		return models.KindText
	}
	switch {
	case allInt:
		return models.KindInteger
	case allFloat:
		return models.KindFloat
	case allTS:
		return models.KindTimestamp
	case allBool:
		return models.KindBool
	default:
		return models.KindText
	}
}

func matchLayout(cell string) string {
	for _, layout := range timestampLayouts {
		if _, err := time.Parse(layout, cell); err == nil {
			return layout
		}
	}
	return ""
}

func parseCell(cell string, kind models.Kind) models.Value {
	if isNullCell(cell) {
		return nil
	}
	trimmed := strings.TrimSpace(cell)
	switch kind {
	case models.KindInteger:
		if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return n
		}
	case models.KindFloat:
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return f
		}
	case models.KindTimestamp:
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, trimmed); err == nil {
				return t
			}
		}
	case models.KindBool:
		if b, err := strconv.ParseBool(strings.ToLower(trimmed)); err == nil {
			return b
		}
	}
	return trimmed
}
