package report

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/inferra-data/inferra-engine/pkg/models"
)

// yamlDocument is the stable machine-readable export shape. It flattens the
// result into plain scalars so consumers do not depend on internal types.
type yamlDocument struct {
	RunID       string             `yaml:"run_id"`
	GeneratedAt string             `yaml:"generated_at"`
	Tables      []yamlTable        `yaml:"tables"`
	Explicit    []yamlRelationship `yaml:"relationships"`
	Implicit    []yamlRelationship `yaml:"implicit_relationships,omitempty"`
}

type yamlTable struct {
	ID                  string             `yaml:"id"`
	RowCount            int                `yaml:"row_count"`
	ColumnCount         int                `yaml:"column_count"`
	LoadError           string             `yaml:"load_error,omitempty"`
	PrimaryKeys         []string           `yaml:"primary_keys"`
	ForeignKeys         []string           `yaml:"foreign_keys"`
	Columns             []yamlColumn       `yaml:"columns,omitempty"`
	TemporalRules       []string           `yaml:"temporal_rules,omitempty"`
	MultivariateRules   []yamlMultivariate `yaml:"multivariate_rules,omitempty"`
	DerivedFields       []yamlDerived      `yaml:"derived_fields,omitempty"`
	DeadColumns         []string           `yaml:"dead_columns,omitempty"`
	DimensionCandidates []string           `yaml:"dimension_candidates,omitempty"`
	Workflow            *yamlWorkflow      `yaml:"workflow,omitempty"`
}

type yamlMultivariate struct {
	ConditionColumn string  `yaml:"condition_column"`
	ConditionValue  string  `yaml:"condition_value"`
	TargetColumn    string  `yaml:"target_column"`
	ViolationPct    float64 `yaml:"violation_pct"`
}

type yamlWorkflow struct {
	StatusColumn string   `yaml:"status_column"`
	States       []string `yaml:"states"`
	Transitions  []string `yaml:"transitions,omitempty"`
}

type yamlColumn struct {
	Name        string  `yaml:"name"`
	Kind        string  `yaml:"kind"`
	Category    string  `yaml:"category"`
	NullRatio   float64 `yaml:"null_ratio"`
	UniqueRatio float64 `yaml:"unique_ratio"`
	Entropy     float64 `yaml:"entropy"`
	Dead        bool    `yaml:"dead,omitempty"`
}

type yamlDerived struct {
	Field       string  `yaml:"field"`
	Formula     string  `yaml:"formula"`
	Correlation float64 `yaml:"correlation"`
}

type yamlRelationship struct {
	FromTable  string  `yaml:"from_table"`
	FKColumn   string  `yaml:"fk_column"`
	ToTable    string  `yaml:"to_table"`
	PKColumn   string  `yaml:"pk_column"`
	Confidence float64 `yaml:"confidence,omitempty"`
}

// WriteYAML serializes the full analysis to w in a format suitable for diffing
// between runs and for loading into downstream tooling.
func WriteYAML(w io.Writer, res *models.AnalysisResult) error {
	doc := yamlDocument{
		RunID:       res.RunID.String(),
		GeneratedAt: res.GeneratedAt.UTC().Format(time.RFC3339),
		Tables:      make([]yamlTable, 0, len(res.Tables)),
		Explicit:    convertRelationships(res.Relationships),
		Implicit:    convertRelationships(res.ImplicitRelationships),
	}

	for _, id := range res.TableIDs() {
		info := res.Tables[id]
		t := yamlTable{
			ID:                  id,
			RowCount:            info.RowCount,
			ColumnCount:         info.ColumnCount,
			LoadError:           info.LoadError,
			PrimaryKeys:         info.Keys.PrimaryKeys,
			ForeignKeys:         info.Keys.ForeignKeys,
			DeadColumns:         info.DeadColumns,
			DimensionCandidates: info.DimensionCandidates,
		}
		for _, rule := range info.MultivariateRules {
			t.MultivariateRules = append(t.MultivariateRules, yamlMultivariate{
				ConditionColumn: rule.ConditionColumn,
				ConditionValue:  rule.ConditionValue,
				TargetColumn:    rule.TargetColumn,
				ViolationPct:    rule.ViolationPct,
			})
		}
		if info.Workflow != nil {
			wf := &yamlWorkflow{
				StatusColumn: info.Workflow.StatusColumn,
				States:       info.Workflow.States,
			}
			for _, tr := range info.Workflow.Transitions {
				wf.Transitions = append(wf.Transitions, fmt.Sprintf("%s -> %s", tr.From, tr.To))
			}
			t.Workflow = wf
		}
		for _, col := range info.Columns {
			t.Columns = append(t.Columns, yamlColumn{
				Name:        col.Name,
				Kind:        string(col.Kind),
				Category:    string(col.Profile.Category),
				NullRatio:   col.Profile.NullRatio,
				UniqueRatio: col.Profile.UniqueRatio,
				Entropy:     col.Profile.Entropy,
				Dead:        col.Profile.Dead,
			})
		}
		for _, rule := range info.TemporalRules {
			t.TemporalRules = append(t.TemporalRules, rule.String())
		}
		for _, d := range info.DerivedFields {
			t.DerivedFields = append(t.DerivedFields, yamlDerived{
				Field:       d.Field,
				Formula:     d.DerivedFrom(),
				Correlation: d.Correlation,
			})
		}
		doc.Tables = append(doc.Tables, t)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode analysis: %w", err)
	}
	return enc.Close()
}

func convertRelationships(rels []models.Relationship) []yamlRelationship {
	out := make([]yamlRelationship, 0, len(rels))
	for _, rel := range rels {
		out = append(out, yamlRelationship{
			FromTable:  rel.FromTable,
			FKColumn:   rel.FKColumn,
			ToTable:    rel.ToTable,
			PKColumn:   rel.PKColumn,
			Confidence: rel.Confidence,
		})
	}
	return out
}
