package services

import (
	"strings"

	"go.uber.org/zap"

	"github.com/inferra-data/inferra-engine/pkg/config"
	"github.com/inferra-data/inferra-engine/pkg/models"
)

// DimensionDetectorService flags low-cardinality non-key columns as candidate
// dimension attributes for analytical grouping.
type DimensionDetectorService interface {
	Detect(table *models.Table) []string
}

type dimensionDetectorService struct {
	heuristics config.HeuristicsConfig
	logger     *zap.Logger
}

// NewDimensionDetectorService creates a new dimension candidate detector.
func NewDimensionDetectorService(heuristics config.HeuristicsConfig, logger *zap.Logger) DimensionDetectorService {
	return &dimensionDetectorService{
		heuristics: heuristics,
		logger:     logger.Named("dimension-detector"),
	}
}

// Detect returns columns whose cardinality ratio is in (0, max] and whose
// name does not end in "_id" — those are already relational candidates.
func (s *dimensionDetectorService) Detect(table *models.Table) []string {
	candidates := make([]string, 0)
	if table.RowCount == 0 {
		return candidates
	}
	for _, col := range table.Columns {
		if strings.HasSuffix(strings.ToLower(col.Name), "_id") {
			continue
		}
		ratio := float64(len(col.DistinctNonNull())) / float64(table.RowCount)
		if ratio > 0 && ratio <= s.heuristics.MaxDimensionCardinalityPct {
			candidates = append(candidates, col.Name)
		}
	}
	return candidates
}
