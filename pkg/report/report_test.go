package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/inferra-data/inferra-engine/pkg/models"
)

func sampleResult() *models.AnalysisResult {
	return &models.AnalysisResult{
		RunID:       uuid.MustParse("a8c2e6de-0000-4000-8000-000000000001"),
		GeneratedAt: time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC),
		Tables: map[string]*models.TableAnalysis{
			"invoices.csv": {
				TableID:     "invoices.csv",
				RowCount:    100,
				ColumnCount: 3,
				Keys: models.KeySet{
					PrimaryKeys: []string{"id"},
					ForeignKeys: []string{"customer_id"},
				},
				Columns: []models.ColumnAnalysis{
					{Name: "id", Kind: models.KindInteger, Profile: models.ColumnProfile{
						UniqueRatio: 1, Category: models.CategoryRelational,
					}},
					{Name: "customer_id", Kind: models.KindInteger, Profile: models.ColumnProfile{
						NullRatio: 0.995, Category: models.CategoryRelational,
					}},
					{Name: "status", Kind: models.KindText, Profile: models.ColumnProfile{
						UniqueRatio: 0.02, Category: models.CategoryStatus,
						Samples: []string{"open", "paid"},
					}},
				},
				BusinessFields: []models.BusinessFieldCandidate{
					{Column: "status", UniqueRatio: 0.02, Samples: []string{"open", "paid"}},
				},
				TemporalRules: []models.TemporalRule{
					{Earlier: "data_emissao", Later: "data_vencimento"},
				},
				DeadColumns:         []string{"legacy_code"},
				DimensionCandidates: []string{"status"},
				Workflow: &models.WorkflowModel{
					StatusColumn: "status",
					States:       []string{"open", "paid"},
					Transitions:  []models.StateTransition{{From: "open", To: "paid"}},
				},
			},
			"customers.csv": {
				TableID:   "customers.csv",
				LoadError: "file is not valid UTF-8",
				Keys:      models.KeySet{PrimaryKeys: []string{}, ForeignKeys: []string{}},
			},
		},
		Relationships: []models.Relationship{},
		ImplicitRelationships: []models.Relationship{
			{FromTable: "invoices.csv", FKColumn: "customer_id", ToTable: "customers.csv", PKColumn: "id", Confidence: 0.97},
		},
	}
}

func TestMarkdownSections(t *testing.T) {
	out := Markdown(sampleResult())

	assert.Contains(t, out, "# Integrated Structural Analysis Report")
	assert.Contains(t, out, "- PKs: id")
	assert.Contains(t, out, "- FKs: customer_id")
	assert.Contains(t, out, "**status**: probable domain (open, paid)")
	assert.Contains(t, out, "Rule: data_emissao <= data_vencimento")
	assert.Contains(t, out, "No flow identified.")
	assert.Contains(t, out, "invoices.csv(customer_id) -> customers.csv(id) (confidence 97%)")
	assert.Contains(t, out, "| invoices.csv | id | PK |")
	assert.Contains(t, out, "| invoices.csv | status | filter |")
}

func TestRAGMarkers(t *testing.T) {
	out := RAG(sampleResult())

	assert.Contains(t, out, "<!-- @rag:table=invoices.csv -->")
	assert.Contains(t, out, "<!-- @rag:columns=invoices.csv -->")
	assert.Contains(t, out, "<!-- @rag:workflow=invoices.csv -->")
	assert.Contains(t, out, "<!-- @rag:relationships=global -->")
	assert.Contains(t, out, "## Entity: invoice (invoices.csv)")
	assert.Contains(t, out, "Table could not be loaded: file is not valid UTF-8")
	assert.Contains(t, out, "- open -> paid")
	assert.Contains(t, out, "invoice.customer_id likely references customer.id (value overlap 97%)")
}

func TestCurationFindings(t *testing.T) {
	out := Curation(sampleResult())

	assert.Contains(t, out, "- Tables analyzed: 2")
	assert.Contains(t, out, "- Tables failed to load: 1")
	assert.Contains(t, out, "**customers.csv**: file is not valid UTF-8")
	assert.Contains(t, out, "**invoices.csv.customer_id** is 99.50% null")
	assert.Contains(t, out, "**invoices.csv**: legacy_code")
	assert.Contains(t, out, "status could be extracted into lookup tables")
	assert.Contains(t, out, "`status` with 2 states and 1 observed transitions")
}

func TestCurationEmptyResult(t *testing.T) {
	res := &models.AnalysisResult{Tables: map[string]*models.TableAnalysis{}}

	out := Curation(res)

	assert.Contains(t, out, "- Tables analyzed: 0")
	assert.Contains(t, out, "None found.")
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, sampleResult()))

	var doc struct {
		RunID  string `yaml:"run_id"`
		Tables []struct {
			ID          string   `yaml:"id"`
			PrimaryKeys []string `yaml:"primary_keys"`
			LoadError   string   `yaml:"load_error"`
		} `yaml:"tables"`
		Implicit []struct {
			Confidence float64 `yaml:"confidence"`
		} `yaml:"implicit_relationships"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "a8c2e6de-0000-4000-8000-000000000001", doc.RunID)
	require.Len(t, doc.Tables, 2)
	assert.Equal(t, "customers.csv", doc.Tables[0].ID)
	assert.Equal(t, "file is not valid UTF-8", doc.Tables[0].LoadError)
	assert.Equal(t, []string{"id"}, doc.Tables[1].PrimaryKeys)
	require.Len(t, doc.Implicit, 1)
	assert.InDelta(t, 0.97, doc.Implicit[0].Confidence, 1e-9)
}

func TestEntityLabel(t *testing.T) {
	assert.Equal(t, "invoice", entityLabel("data/invoices.csv"))
	assert.Equal(t, "category", entityLabel("categories.xlsx"))
	assert.Equal(t, "schema", entityLabel("schema.sql"))
}
