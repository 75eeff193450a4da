package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inferra-data/inferra-engine/pkg/adapters/source"
	"github.com/inferra-data/inferra-engine/pkg/config"
	"github.com/inferra-data/inferra-engine/pkg/models"
)

// AnalyzerService orchestrates one inference run: it loads every source,
// runs the per-table stages, then the cross-table relationship resolution.
// The engine is stateless; rerunning on unchanged inputs yields structurally
// identical output (the RunID and timestamp aside).
type AnalyzerService interface {
	Run(ctx context.Context, sources map[string]source.TableSource) (*models.AnalysisResult, error)
}

type analyzerService struct {
	profiler          ColumnProfilerService
	keyDetector       KeyDetectorService
	resolver          RelationshipResolverService
	ruleMiner         RuleMinerService
	workflowMiner     WorkflowMinerService
	dimensionDetector DimensionDetectorService
	logger            *zap.Logger
}

// NewAnalyzerService wires the full inference pipeline from configuration.
func NewAnalyzerService(cfg *config.Config, logger *zap.Logger) AnalyzerService {
	return &analyzerService{
		profiler:          NewColumnProfilerService(cfg.Heuristics, logger),
		keyDetector:       NewKeyDetectorService(logger),
		resolver:          NewRelationshipResolverService(cfg.Heuristics, logger),
		ruleMiner:         NewRuleMinerService(cfg.Heuristics, logger),
		workflowMiner:     NewWorkflowMinerService(cfg.Workflow, logger),
		dimensionDetector: NewDimensionDetectorService(cfg.Heuristics, logger),
		logger:            logger.Named("analyzer"),
	}
}

func (s *analyzerService) Run(ctx context.Context, sources map[string]source.TableSource) (*models.AnalysisResult, error) {
	start := time.Now()

	ids := make([]string, 0, len(sources))
	for id := range sources {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := &models.AnalysisResult{
		RunID:                 uuid.New(),
		GeneratedAt:           time.Now().UTC(),
		Tables:                make(map[string]*models.TableAnalysis, len(ids)),
		Relationships:         make([]models.Relationship, 0),
		ImplicitRelationships: make([]models.Relationship, 0),
	}

	// Load every source up front. A table that fails to load gets an empty
	// entry; the rest of the run is unaffected.
	tables := make(map[string]*models.Table, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		table, err := sources[id].Load(ctx)
		if err != nil {
			s.logger.Warn("Failed to load source",
				zap.String("table", id),
				zap.Error(err))
			result.Tables[id] = &models.TableAnalysis{
				TableID:   id,
				LoadError: err.Error(),
				Keys:      models.KeySet{PrimaryKeys: []string{}, ForeignKeys: []string{}},
			}
			continue
		}
		tables[id] = table
	}

	// Per-table stages depend only on that table's data, so they fan out
	// across goroutines. Each goroutine owns one result slot; the merge
	// below happens only after the barrier.
	loadedIDs := make([]string, 0, len(tables))
	for _, id := range ids {
		if _, ok := tables[id]; ok {
			loadedIDs = append(loadedIDs, id)
		}
	}

	analyses := make([]*models.TableAnalysis, len(loadedIDs))
	var wg sync.WaitGroup
	for i, id := range loadedIDs {
		wg.Add(1)
		go func(slot int, tableID string) {
			defer wg.Done()
			analyses[slot] = s.analyzeTable(tables[tableID])
		}(i, id)
	}
	wg.Wait()

	keys := make(map[string]models.KeySet, len(loadedIDs))
	for i, id := range loadedIDs {
		result.Tables[id] = analyses[i]
		keys[id] = analyses[i].Keys
	}

	// Cross-table pass: needs every table's keys and raw values, so it only
	// runs once the per-table barrier is crossed.
	result.Relationships, result.ImplicitRelationships = s.resolver.Resolve(tables, keys)

	s.logger.Info("Analysis run complete",
		zap.String("run_id", result.RunID.String()),
		zap.Int("tables", len(ids)),
		zap.Int("loaded", len(loadedIDs)),
		zap.Duration("elapsed", time.Since(start)))

	return result, nil
}

// analyzeTable runs every per-table stage. All stages treat an empty table
// as a defined empty result, never an error.
func (s *analyzerService) analyzeTable(table *models.Table) *models.TableAnalysis {
	columns := s.profiler.ProfileTable(table)

	analysis := &models.TableAnalysis{
		TableID:     table.ID,
		RowCount:    table.RowCount,
		ColumnCount: len(table.Columns),
		Columns:     columns,
	}

	analysis.Keys = s.keyDetector.DetectKeys(table, columns)
	analysis.BusinessFields = s.profiler.BusinessFields(columns)
	analysis.TemporalRules = s.ruleMiner.TemporalRules(table)
	analysis.MultivariateRules = s.ruleMiner.MultivariateRules(table, columns)
	analysis.DerivedFields = s.ruleMiner.DerivedFields(table)
	analysis.DimensionCandidates = s.dimensionDetector.Detect(table)
	analysis.Workflow = s.workflowMiner.Mine(table)

	analysis.DeadColumns = make([]string, 0)
	for _, col := range columns {
		if col.Profile.Dead {
			analysis.DeadColumns = append(analysis.DeadColumns, col.Name)
		}
	}

	return analysis
}
