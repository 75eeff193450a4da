package services

import (
	"math"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/inferra-data/inferra-engine/pkg/models"
)

// DerivedFields suggests numeric columns that are derivable from the day
// difference between two timestamp columns. For every numeric column and
// every pair of genuinely timestamp-typed temporal columns (in table column
// order, later minus earlier), the per-row day differences are aligned
// against the numeric values by row identity and Pearson-correlated. An
// undefined correlation (constant series, too few samples) is "no
// suggestion", never an error.
func (s *ruleMinerService) DerivedFields(table *models.Table) []models.DerivedFieldSuggestion {
	suggestions := make([]models.DerivedFieldSuggestion, 0)

	var dateCols, numericCols []*models.Column
	for _, col := range table.Columns {
		if CategorizeColumn(col.Name, col.Kind) == models.CategoryTemporal {
			dateCols = append(dateCols, col)
		}
		if col.Kind.IsNumeric() {
			numericCols = append(numericCols, col)
		}
	}
	if len(dateCols) < 2 {
		return suggestions
	}

	for _, num := range numericCols {
		if num.NullCount() == len(num.Values) {
			continue
		}
		for i := 0; i < len(dateCols); i++ {
			for j := i + 1; j < len(dateCols); j++ {
				earlier, later := dateCols[i], dateCols[j]
				if earlier.Kind != models.KindTimestamp || later.Kind != models.KindTimestamp {
					continue
				}
				if sug := s.correlateDatePair(num, earlier, later); sug != nil {
					suggestions = append(suggestions, *sug)
				}
			}
		}
	}
	return suggestions
}

func (s *ruleMinerService) correlateDatePair(num, earlier, later *models.Column) *models.DerivedFieldSuggestion {
	var values, diffs []float64
	for row := range num.Values {
		x, ok := numericValue(num.Values[row])
		if !ok {
			continue
		}
		lat, okLat := later.Values[row].(time.Time)
		ear, okEar := earlier.Values[row].(time.Time)
		if !okLat || !okEar {
			continue
		}
		values = append(values, x)
		diffs = append(diffs, dayDifference(ear, lat))
	}

	if len(values) < s.heuristics.MinCorrelationSamples {
		return nil
	}

	corr, err := stats.Pearson(stats.Float64Data(values), stats.Float64Data(diffs))
	if err != nil || math.IsNaN(corr) || math.IsInf(corr, 0) {
		return nil
	}
	if math.Abs(corr) < s.heuristics.CorrelationThreshold {
		return nil
	}

	return &models.DerivedFieldSuggestion{
		Field:         num.Name,
		LaterColumn:   later.Name,
		EarlierColumn: earlier.Name,
		Correlation:   round2(corr),
	}
}

// dayDifference is the whole-day difference b − a, truncated toward zero.
func dayDifference(a, b time.Time) float64 {
	return float64(int64(b.Sub(a).Hours() / 24))
}

func numericValue(v models.Value) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case float64:
		return float64(x), true
	default:
		return 0, false
	}
}
