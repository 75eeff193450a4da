package services

import (
	"time"

	"github.com/inferra-data/inferra-engine/pkg/config"
	"github.com/inferra-data/inferra-engine/pkg/models"
)

func testHeuristics() config.HeuristicsConfig {
	return config.HeuristicsConfig{
		BusinessUniqueThreshold:    0.1,
		BusinessNullThreshold:      0.1,
		MinOverlapRatio:            0.5,
		MaxConditionCardinality:    10,
		MaxViolationRatio:          0.05,
		CorrelationThreshold:       0.95,
		MinCorrelationSamples:      10,
		MaxDimensionCardinalityPct: 0.02,
		SampleSize:                 5,
	}
}

func intColumn(name string, values ...any) *models.Column {
	return &models.Column{Name: name, Kind: models.KindInteger, Values: values}
}

func textColumn(name string, values ...any) *models.Column {
	return &models.Column{Name: name, Kind: models.KindText, Values: values}
}

func timeColumn(name string, values ...any) *models.Column {
	return &models.Column{Name: name, Kind: models.KindTimestamp, Values: values}
}

func day(n int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func newTable(id string, rowCount int, cols ...*models.Column) *models.Table {
	return &models.Table{ID: id, RowCount: rowCount, Columns: cols}
}
