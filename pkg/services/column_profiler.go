package services

import (
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/inferra-data/inferra-engine/pkg/config"
	"github.com/inferra-data/inferra-engine/pkg/models"
)

// ColumnProfilerService computes per-column statistics and semantic
// categories. Profiles are computed once per table load and read-only after.
type ColumnProfilerService interface {
	// ProfileTable profiles every column of the table in column order.
	ProfileTable(table *models.Table) []models.ColumnAnalysis

	// Profile computes the profile for a single column.
	Profile(col *models.Column, rowCount int) models.ColumnProfile

	// BusinessFields returns the business-field candidates among the
	// profiled columns: unique ratio and null ratio both strictly below
	// their thresholds.
	BusinessFields(columns []models.ColumnAnalysis) []models.BusinessFieldCandidate
}

type columnProfilerService struct {
	heuristics config.HeuristicsConfig
	logger     *zap.Logger
}

// NewColumnProfilerService creates a new column profiler.
func NewColumnProfilerService(heuristics config.HeuristicsConfig, logger *zap.Logger) ColumnProfilerService {
	return &columnProfilerService{
		heuristics: heuristics,
		logger:     logger.Named("column-profiler"),
	}
}

// categoryRule pairs a predicate with the category it assigns. The cascade is
// an explicit ordered list so precedence stays auditable and testable.
type categoryRule struct {
	category models.Category
	matches  func(name string, kind models.Kind) bool
}

var (
	temporalTokens = []string{"date", "data", "time", "inicio", "fim", "end", "updated", "created"}
	monetaryTokens = []string{"valor", "value", "amount", "preco", "price", "total"}
	booleanNames   = map[string]bool{"ativo": true, "active": true, "valid": true}
)

// categoryCascade is evaluated top to bottom; the first match wins.
var categoryCascade = []categoryRule{
	{models.CategoryRelational, func(name string, _ models.Kind) bool {
		return strings.HasSuffix(name, "_id")
	}},
	{models.CategoryTemporal, func(name string, _ models.Kind) bool {
		return strings.HasSuffix(name, "_at") || containsAny(name, temporalTokens)
	}},
	{models.CategoryBoolean, func(name string, _ models.Kind) bool {
		return booleanNames[name] || strings.HasPrefix(name, "is_") || strings.HasSuffix(name, "_flag")
	}},
	{models.CategoryMonetary, func(name string, _ models.Kind) bool {
		return containsAny(name, monetaryTokens)
	}},
	{models.CategoryStatus, func(name string, _ models.Kind) bool {
		return containsAny(name, []string{"status", "validation", "check"})
	}},
	{models.CategoryNumeric, func(_ string, kind models.Kind) bool {
		return kind.IsNumeric()
	}},
}

// CategorizeColumn assigns the semantic category for a column name and kind
// by walking the cascade. Falls through to categorical.
func CategorizeColumn(name string, kind models.Kind) models.Category {
	lower := strings.ToLower(name)
	for _, rule := range categoryCascade {
		if rule.matches(lower, kind) {
			return rule.category
		}
	}
	return models.CategoryCategorical
}

func containsAny(name string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(name, tok) {
			return true
		}
	}
	return false
}

func (s *columnProfilerService) ProfileTable(table *models.Table) []models.ColumnAnalysis {
	analyses := make([]models.ColumnAnalysis, 0, len(table.Columns))
	for _, col := range table.Columns {
		analyses = append(analyses, models.ColumnAnalysis{
			Name:    col.Name,
			Kind:    col.Kind,
			Profile: s.Profile(col, table.RowCount),
		})
	}
	return analyses
}

func (s *columnProfilerService) Profile(col *models.Column, rowCount int) models.ColumnProfile {
	profile := models.ColumnProfile{
		Category: CategorizeColumn(col.Name, col.Kind),
	}

	distinct := col.DistinctNonNull()
	nulls := col.NullCount()

	if rowCount > 0 {
		profile.NullRatio = float64(nulls) / float64(rowCount)
		profile.UniqueRatio = float64(len(distinct)) / float64(rowCount)
	}

	sampleSize := s.heuristics.SampleSize
	if len(distinct) < sampleSize {
		sampleSize = len(distinct)
	}
	if sampleSize > 0 {
		profile.Samples = distinct[:sampleSize]
	}

	profile.Entropy = columnEntropy(col)
	profile.Dead = nulls == len(col.Values) || len(distinct) <= 1

	return profile
}

// columnEntropy computes the Shannon entropy (base 2) of the non-null value
// frequency distribution, 0 for an empty or fully-null column.
func columnEntropy(col *models.Column) float64 {
	counts := make(map[string]int)
	total := 0
	for _, v := range col.Values {
		if v == nil {
			continue
		}
		counts[models.FormatValue(v)]++
		total++
	}
	if total == 0 {
		return 0
	}

	entropy := 0.0
	for _, n := range counts {
		p := float64(n) / float64(total)
		entropy -= p * math.Log2(p)
	}
	return entropy
}

func (s *columnProfilerService) BusinessFields(columns []models.ColumnAnalysis) []models.BusinessFieldCandidate {
	candidates := make([]models.BusinessFieldCandidate, 0)
	for _, col := range columns {
		p := col.Profile
		if p.UniqueRatio < s.heuristics.BusinessUniqueThreshold && p.NullRatio < s.heuristics.BusinessNullThreshold {
			candidates = append(candidates, models.BusinessFieldCandidate{
				Column:      col.Name,
				UniqueRatio: p.UniqueRatio,
				NullRatio:   p.NullRatio,
				Samples:     p.Samples,
			})
		}
	}
	return candidates
}
