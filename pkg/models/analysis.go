package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// ColumnAnalysis pairs a column with its computed profile, preserving the
// table's column order for reporting.
type ColumnAnalysis struct {
	Name    string        `json:"name" yaml:"name"`
	Kind    Kind          `json:"kind" yaml:"kind"`
	Profile ColumnProfile `json:"profile" yaml:"profile"`
}

// TableAnalysis is the per-table output of one analysis run. Raw row data is
// deliberately not stored here; the analyzer keeps a separate table lookup
// for the cross-table passes.
type TableAnalysis struct {
	TableID     string `json:"table_id" yaml:"table_id"`
	RowCount    int    `json:"row_count" yaml:"row_count"`
	ColumnCount int    `json:"column_count" yaml:"column_count"`

	// LoadError is set when the source could not be read. All derived
	// fields are empty in that case; the run continues with other tables.
	LoadError string `json:"load_error,omitempty" yaml:"load_error,omitempty"`

	Keys                KeySet                   `json:"keys" yaml:"keys"`
	Columns             []ColumnAnalysis         `json:"columns,omitempty" yaml:"columns,omitempty"`
	BusinessFields      []BusinessFieldCandidate `json:"business_fields,omitempty" yaml:"business_fields,omitempty"`
	TemporalRules       []TemporalRule           `json:"temporal_rules,omitempty" yaml:"temporal_rules,omitempty"`
	MultivariateRules   []MultivariateRule       `json:"multivariate_rules,omitempty" yaml:"multivariate_rules,omitempty"`
	DerivedFields       []DerivedFieldSuggestion `json:"derived_fields,omitempty" yaml:"derived_fields,omitempty"`
	DeadColumns         []string                 `json:"dead_columns,omitempty" yaml:"dead_columns,omitempty"`
	DimensionCandidates []string                 `json:"dimension_candidates,omitempty" yaml:"dimension_candidates,omitempty"`
	Workflow            *WorkflowModel           `json:"workflow,omitempty" yaml:"workflow,omitempty"`
}

// Profile returns the profile for the named column, or nil when absent.
func (a *TableAnalysis) Profile(name string) *ColumnProfile {
	for i := range a.Columns {
		if a.Columns[i].Name == name {
			return &a.Columns[i].Profile
		}
	}
	return nil
}

// AnalysisResult is the aggregate handed to the report layer: one entry per
// table plus the cross-table relationship suggestions.
type AnalysisResult struct {
	RunID       uuid.UUID `json:"run_id" yaml:"run_id"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`

	Tables map[string]*TableAnalysis `json:"tables" yaml:"tables"`

	// Relationships are explicit name-matched FK→PK links.
	Relationships []Relationship `json:"relationships" yaml:"relationships"`

	// ImplicitRelationships are overlap-derived suggestions with confidence.
	ImplicitRelationships []Relationship `json:"implicit_relationships" yaml:"implicit_relationships"`
}

// TableIDs returns the analyzed table identifiers in lexicographic order.
func (r *AnalysisResult) TableIDs() []string {
	ids := make([]string, 0, len(r.Tables))
	for id := range r.Tables {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
