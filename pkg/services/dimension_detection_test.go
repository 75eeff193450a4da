package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/inferra-data/inferra-engine/pkg/models"
)

func TestDetectDimensionCandidates(t *testing.T) {
	detector := NewDimensionDetectorService(testHeuristics(), zap.NewNop())

	rows := 200
	category := &models.Column{Name: "category", Kind: models.KindText}
	customer := &models.Column{Name: "customer_id", Kind: models.KindInteger}
	notes := &models.Column{Name: "notes", Kind: models.KindText}
	for i := 0; i < rows; i++ {
		category.Values = append(category.Values, []any{"a", "b", "c"}[i%3])
		customer.Values = append(customer.Values, int64(i%3))
		notes.Values = append(notes.Values, models.FormatValue(int64(i)))
	}
	table := newTable("orders.csv", rows, category, customer, notes)

	// 3/200 = 1.5% cardinality qualifies; "_id" columns and high-cardinality
	// columns do not.
	assert.Equal(t, []string{"category"}, detector.Detect(table))
}

func TestDetectDimensionEmptyTable(t *testing.T) {
	detector := NewDimensionDetectorService(testHeuristics(), zap.NewNop())

	table := newTable("orders.csv", 0, textColumn("category"))

	assert.Empty(t, detector.Detect(table))
}

func TestDetectDimensionAllNullColumn(t *testing.T) {
	detector := NewDimensionDetectorService(testHeuristics(), zap.NewNop())

	table := newTable("orders.csv", 3, textColumn("category", nil, nil, nil))

	assert.Empty(t, detector.Detect(table))
}
