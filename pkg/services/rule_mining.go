package services

import (
	"strings"

	"go.uber.org/zap"

	"github.com/inferra-data/inferra-engine/pkg/config"
	"github.com/inferra-data/inferra-engine/pkg/models"
)

// RuleMinerService mines business-rule candidates from a single table:
// temporal orderings from column names, conditional non-null constraints from
// row data, and derivable numeric fields from date-difference correlation.
// Each heuristic is independent and an empty table yields empty results.
type RuleMinerService interface {
	TemporalRules(table *models.Table) []models.TemporalRule
	MultivariateRules(table *models.Table, profiles []models.ColumnAnalysis) []models.MultivariateRule
	DerivedFields(table *models.Table) []models.DerivedFieldSuggestion
}

type ruleMinerService struct {
	heuristics config.HeuristicsConfig
	logger     *zap.Logger
}

// NewRuleMinerService creates a new rule miner.
func NewRuleMinerService(heuristics config.HeuristicsConfig, logger *zap.Logger) RuleMinerService {
	return &ruleMinerService{
		heuristics: heuristics,
		logger:     logger.Named("rule-miner"),
	}
}

// earlyTokens and lateTokens drive temporal rule mining: a pair of temporal
// columns where the first name carries an "early" token and the second a
// "late" token yields an earlier ≤ later candidate.
var (
	earlyTokens = []string{"inicio", "start", "issue", "created", "emissao", "emit", "kick_off"}
	lateTokens  = []string{"fim", "end", "due", "payment", "venc", "updated", "update"}
)

// TemporalRules infers ordering rules between temporal-category columns from
// their names alone; nothing is validated against row values. Exact duplicate
// rules are collapsed.
func (s *ruleMinerService) TemporalRules(table *models.Table) []models.TemporalRule {
	var temporal []*models.Column
	for _, col := range table.Columns {
		if CategorizeColumn(col.Name, col.Kind) == models.CategoryTemporal {
			temporal = append(temporal, col)
		}
	}

	rules := make([]models.TemporalRule, 0)
	seen := make(map[string]struct{})
	for _, a := range temporal {
		for _, b := range temporal {
			if a.Name == b.Name {
				continue
			}
			aLow := strings.ToLower(a.Name)
			bLow := strings.ToLower(b.Name)
			if containsAny(aLow, earlyTokens) && containsAny(bLow, lateTokens) {
				rule := models.TemporalRule{Earlier: a.Name, Later: b.Name}
				if _, dup := seen[rule.String()]; dup {
					continue
				}
				seen[rule.String()] = struct{}{}
				rules = append(rules, rule)
			}
		}
	}
	return rules
}

// MultivariateRules mines conditional non-null constraints: for every
// low-cardinality condition column, every other column as target, and every
// observed condition value, a rule is emitted when the target's null rate
// among matching rows stays within the violation budget. Dead columns are
// skipped as conditions since a constant condition produces noise. The
// low-cardinality prefilter bounds the quadratic search.
func (s *ruleMinerService) MultivariateRules(table *models.Table, profiles []models.ColumnAnalysis) []models.MultivariateRule {
	rules := make([]models.MultivariateRule, 0)
	if table.RowCount == 0 {
		return rules
	}

	deadByName := make(map[string]bool, len(profiles))
	for _, p := range profiles {
		deadByName[p.Name] = p.Profile.Dead
	}

	condSet := make(map[string]bool)
	var condCols, targetCols []*models.Column
	for _, col := range table.Columns {
		if len(col.DistinctNonNull()) <= s.heuristics.MaxConditionCardinality && !deadByName[col.Name] {
			condCols = append(condCols, col)
			condSet[col.Name] = true
		}
	}
	for _, col := range table.Columns {
		if !condSet[col.Name] {
			targetCols = append(targetCols, col)
		}
	}

	for _, cond := range condCols {
		for _, target := range targetCols {
			rules = append(rules, s.mineConditionPair(cond, target)...)
		}
	}
	return rules
}

// mineConditionPair evaluates one (condition, target) column pair over the
// rows where the condition is non-null, grouping by condition value in
// first-observed order.
func (s *ruleMinerService) mineConditionPair(cond, target *models.Column) []models.MultivariateRule {
	type group struct {
		rows     int
		nullRows int
	}
	groups := make(map[string]*group)
	order := make([]string, 0)

	for i, v := range cond.Values {
		if v == nil {
			continue
		}
		key := models.FormatValue(v)
		g, ok := groups[key]
		if !ok {
			g = &group{}
			groups[key] = g
			order = append(order, key)
		}
		g.rows++
		if target.Values[i] == nil {
			g.nullRows++
		}
	}

	rules := make([]models.MultivariateRule, 0)
	for _, key := range order {
		g := groups[key]
		violation := float64(g.nullRows) / float64(g.rows)
		if violation <= s.heuristics.MaxViolationRatio {
			rules = append(rules, models.MultivariateRule{
				ConditionColumn: cond.Name,
				ConditionValue:  key,
				TargetColumn:    target.Name,
				ViolationPct:    round3(violation),
			})
		}
	}
	return rules
}
