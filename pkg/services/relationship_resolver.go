package services

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/inferra-data/inferra-engine/pkg/config"
	"github.com/inferra-data/inferra-engine/pkg/models"
)

// RelationshipResolverService links FK-name candidates across tables to
// PK candidates. Resolution is two-phase: exact name matching first, then
// value-set overlap for the columns left unresolved. This is the only
// component that needs every table's data at once, so it runs after the
// per-table passes complete.
type RelationshipResolverService interface {
	Resolve(tables map[string]*models.Table, keys map[string]models.KeySet) (explicit, implicit []models.Relationship)
}

type relationshipResolverService struct {
	heuristics config.HeuristicsConfig
	logger     *zap.Logger
}

// NewRelationshipResolverService creates a new relationship resolver.
func NewRelationshipResolverService(heuristics config.HeuristicsConfig, logger *zap.Logger) RelationshipResolverService {
	return &relationshipResolverService{
		heuristics: heuristics,
		logger:     logger.Named("relationship-resolver"),
	}
}

// Resolve produces the explicit name-matched relationships and the implicit
// overlap-derived suggestions. Tables are visited in lexicographic order so
// reruns on unchanged input yield identical output. When an FK name is a PK
// candidate in several tables, every match is recorded; implicit search only
// runs for FK columns with no explicit match at all.
func (s *relationshipResolverService) Resolve(tables map[string]*models.Table, keys map[string]models.KeySet) ([]models.Relationship, []models.Relationship) {
	tableIDs := make([]string, 0, len(tables))
	for id := range tables {
		tableIDs = append(tableIDs, id)
	}
	sort.Strings(tableIDs)

	explicit := make([]models.Relationship, 0)
	resolved := make(map[string]map[string]bool, len(tables)) // table -> fk -> matched

	for _, from := range tableIDs {
		resolved[from] = make(map[string]bool)
		for _, fk := range keys[from].ForeignKeys {
			for _, to := range tableIDs {
				if to == from {
					continue
				}
				if containsString(keys[to].PrimaryKeys, fk) {
					explicit = append(explicit, models.Relationship{
						FromTable: from,
						FKColumn:  fk,
						ToTable:   to,
						PKColumn:  fk,
					})
					resolved[from][fk] = true
				}
			}
		}
	}

	implicit := make([]models.Relationship, 0)
	for _, from := range tableIDs {
		for _, fk := range keys[from].ForeignKeys {
			if resolved[from][fk] {
				continue
			}
			if sug := s.bestOverlap(tables, keys, tableIDs, from, fk); sug != nil {
				implicit = append(implicit, *sug)
			}
		}
	}

	s.logger.Info("Relationship resolution complete",
		zap.Int("explicit", len(explicit)),
		zap.Int("implicit", len(implicit)))

	return explicit, implicit
}

// bestOverlap finds the single best-scoring PK candidate for an unresolved FK
// column by value-set overlap. Candidates are visited in lexicographic
// (table, column) order and only a strictly greater ratio displaces the
// current best, so the first maximal candidate wins ties deterministically.
func (s *relationshipResolverService) bestOverlap(tables map[string]*models.Table, keys map[string]models.KeySet, tableIDs []string, from, fk string) *models.Relationship {
	fromTable := tables[from]
	if fromTable == nil {
		return nil
	}
	fkCol := fromTable.Column(fk)
	if fkCol == nil {
		return nil
	}
	fkValues := valueSet(fkCol)
	if len(fkValues) == 0 {
		return nil // no non-null values, no suggestion can be made
	}

	bestRatio := 0.0
	var bestTable, bestPK string

	for _, to := range tableIDs {
		if to == from {
			continue
		}
		toTable := tables[to]
		if toTable == nil {
			continue
		}
		pks := append([]string(nil), keys[to].PrimaryKeys...)
		sort.Strings(pks)
		for _, pk := range pks {
			pkCol := toTable.Column(pk)
			if pkCol == nil {
				continue
			}
			pkValues := valueSet(pkCol)
			if len(pkValues) == 0 {
				continue
			}
			ratio := overlapRatio(fkValues, pkValues)
			if ratio > bestRatio {
				bestRatio = ratio
				bestTable = to
				bestPK = pk
			}
		}
	}

	if bestTable == "" || bestRatio < s.heuristics.MinOverlapRatio {
		return nil
	}

	return &models.Relationship{
		FromTable:  from,
		FKColumn:   fk,
		ToTable:    bestTable,
		PKColumn:   bestPK,
		Confidence: round2(bestRatio),
	}
}

// overlapRatio is |intersection| / min(|a|, |b|).
func overlapRatio(a, b map[string]struct{}) float64 {
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	overlap := 0
	for v := range small {
		if _, ok := large[v]; ok {
			overlap++
		}
	}
	return float64(overlap) / float64(len(small))
}

func valueSet(col *models.Column) map[string]struct{} {
	set := make(map[string]struct{})
	for _, v := range col.Values {
		if v == nil {
			continue
		}
		set[models.FormatValue(v)] = struct{}{}
	}
	return set
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
