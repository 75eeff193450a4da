package services

import (
	"strings"

	"go.uber.org/zap"

	"github.com/inferra-data/inferra-engine/pkg/models"
)

// KeyDetectorService identifies primary-key candidates and foreign-key-name
// candidates within a single table. Keys are heuristic candidates, not
// verified constraints.
type KeyDetectorService interface {
	DetectKeys(table *models.Table, profiles []models.ColumnAnalysis) models.KeySet
}

type keyDetectorService struct {
	logger *zap.Logger
}

// NewKeyDetectorService creates a new key detector.
func NewKeyDetectorService(logger *zap.Logger) KeyDetectorService {
	return &keyDetectorService{logger: logger.Named("key-detector")}
}

// DetectKeys returns the key candidates for a table. A primary-key candidate
// is fully non-null with all-distinct values; no uniqueness test is meaningful
// on an empty table, and dead columns never qualify. Foreign-key candidates
// are columns whose name ends in "_id". Keys declared by a schema dump are
// merged in.
func (s *keyDetectorService) DetectKeys(table *models.Table, profiles []models.ColumnAnalysis) models.KeySet {
	keys := models.KeySet{
		PrimaryKeys: make([]string, 0),
		ForeignKeys: make([]string, 0),
	}

	profileByName := make(map[string]models.ColumnProfile, len(profiles))
	for _, p := range profiles {
		profileByName[p.Name] = p.Profile
	}

	for _, col := range table.Columns {
		p := profileByName[col.Name]
		if table.RowCount >= 1 && !p.Dead && p.NullRatio == 0 && p.UniqueRatio == 1 {
			keys.PrimaryKeys = append(keys.PrimaryKeys, col.Name)
		}
		if strings.HasSuffix(strings.ToLower(col.Name), "_id") {
			keys.ForeignKeys = append(keys.ForeignKeys, col.Name)
		}
	}

	keys.PrimaryKeys = appendMissing(keys.PrimaryKeys, table.DeclaredPrimaryKeys)
	keys.ForeignKeys = appendMissing(keys.ForeignKeys, table.DeclaredForeignKeys)

	return keys
}

func appendMissing(existing, extra []string) []string {
	seen := make(map[string]struct{}, len(existing))
	for _, name := range existing {
		seen[name] = struct{}{}
	}
	for _, name := range extra {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		existing = append(existing, name)
	}
	return existing
}
