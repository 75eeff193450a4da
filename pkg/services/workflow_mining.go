package services

import (
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/inferra-data/inferra-engine/pkg/config"
	"github.com/inferra-data/inferra-engine/pkg/models"
)

// WorkflowMinerService reconstructs the state machine implied by a
// status-like column: the distinct states and, when an event timestamp is
// available, the observed per-entity state transitions.
type WorkflowMinerService interface {
	// Mine returns the workflow model for a table, or nil when no
	// status-like column with more than one distinct value exists.
	Mine(table *models.Table) *models.WorkflowModel
}

type workflowMinerService struct {
	workflow config.WorkflowConfig
	logger   *zap.Logger
}

// NewWorkflowMinerService creates a new workflow miner.
func NewWorkflowMinerService(workflow config.WorkflowConfig, logger *zap.Logger) WorkflowMinerService {
	return &workflowMinerService{
		workflow: workflow,
		logger:   logger.Named("workflow-miner"),
	}
}

func (s *workflowMinerService) Mine(table *models.Table) *models.WorkflowModel {
	status := selectStatusColumn(table)
	if status == nil {
		return nil
	}

	states := status.DistinctNonNull()
	sort.Strings(states)

	model := &models.WorkflowModel{
		StatusColumn: status.Name,
		States:       states,
		Transitions:  make([]models.StateTransition, 0),
	}

	ts := table.Column(s.workflow.TimestampColumn)
	if ts == nil || ts.NullCount() == len(ts.Values) {
		// Without a usable timestamp, transitions cannot be ordered.
		return model
	}

	model.Transitions = s.mineTransitions(table, status, ts)
	return model
}

// selectStatusColumn returns the first column, in table order, whose name
// contains "status" or "state" and that has more than one distinct value.
func selectStatusColumn(table *models.Table) *models.Column {
	for _, col := range table.Columns {
		lower := strings.ToLower(col.Name)
		if !strings.Contains(lower, "status") && !strings.Contains(lower, "state") {
			continue
		}
		if len(col.DistinctNonNull()) > 1 {
			return col
		}
	}
	return nil
}

// mineTransitions sorts the rows holding both a status and a timestamp by
// time, groups them by the entity column, and records every adjacent pair
// where the status changed. Without an entity column each row is its own
// group, which observes no transitions; that degenerate case is kept as-is.
func (s *workflowMinerService) mineTransitions(table *models.Table, status, ts *models.Column) []models.StateTransition {
	rows := make([]int, 0, table.RowCount)
	for i := 0; i < table.RowCount; i++ {
		if status.Values[i] == nil || ts.Values[i] == nil {
			continue
		}
		rows = append(rows, i)
	}
	sort.SliceStable(rows, func(a, b int) bool {
		return lessValue(ts.Values[rows[a]], ts.Values[rows[b]])
	})

	entity := table.Column(s.workflow.EntityColumn)
	if entity == nil {
		return nil
	}

	groups := make(map[string][]int)
	groupOrder := make([]string, 0)
	for _, row := range rows {
		v := entity.Values[row]
		if v == nil {
			continue
		}
		key := models.FormatValue(v)
		if _, ok := groups[key]; !ok {
			groupOrder = append(groupOrder, key)
		}
		groups[key] = append(groups[key], row)
	}

	seen := make(map[models.StateTransition]struct{})
	for _, key := range groupOrder {
		prev := ""
		first := true
		for _, row := range groups[key] {
			cur := models.FormatValue(status.Values[row])
			if !first && prev != cur {
				seen[models.StateTransition{From: prev, To: cur}] = struct{}{}
			}
			prev = cur
			first = false
		}
	}

	transitions := make([]models.StateTransition, 0, len(seen))
	for t := range seen {
		transitions = append(transitions, t)
	}
	sort.Slice(transitions, func(a, b int) bool {
		if transitions[a].From != transitions[b].From {
			return transitions[a].From < transitions[b].From
		}
		return transitions[a].To < transitions[b].To
	})
	return transitions
}

// lessValue orders two cell values: timestamps chronologically, numbers
// numerically, everything else by stringified form.
func lessValue(a, b models.Value) bool {
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Before(tb)
		}
	}
	fa, okA := numericValue(a)
	fb, okB := numericValue(b)
	if okA && okB {
		return fa < fb
	}
	return models.FormatValue(a) < models.FormatValue(b)
}
