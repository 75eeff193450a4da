package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/inferra-data/inferra-engine/pkg/adapters/source"
	"github.com/inferra-data/inferra-engine/pkg/config"
	"github.com/inferra-data/inferra-engine/pkg/models"
)

type stubSource struct {
	id    string
	table *models.Table
	err   error
}

func (s stubSource) ID() string { return s.id }

func (s stubSource) Load(ctx context.Context) (*models.Table, error) {
	return s.table, s.err
}

func testConfig() *config.Config {
	return &config.Config{
		Heuristics: testHeuristics(),
		Workflow: config.WorkflowConfig{
			TimestampColumn: "updated_at",
			EntityColumn:    "invoice_id",
		},
	}
}

func invoiceSources() map[string]source.TableSource {
	invoices := newTable("invoices.csv", 3,
		intColumn("id", int64(1), int64(2), int64(3)),
		intColumn("order_id", int64(1), int64(2), int64(3)),
		textColumn("status", "open", "paid", "open"),
	)
	orders := newTable("orders.csv", 4,
		intColumn("id", int64(1), int64(2), int64(3), int64(4)),
		textColumn("channel", "web", "web", "shop", "web"),
	)
	return map[string]source.TableSource{
		"invoices.csv": stubSource{id: "invoices.csv", table: invoices},
		"orders.csv":   stubSource{id: "orders.csv", table: orders},
	}
}

func TestAnalyzerRunEndToEnd(t *testing.T) {
	analyzer := NewAnalyzerService(testConfig(), zap.NewNop())

	result, err := analyzer.Run(context.Background(), invoiceSources())

	require.NoError(t, err)
	require.Len(t, result.Tables, 2)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", result.RunID.String())

	invoices := result.Tables["invoices.csv"]
	require.NotNil(t, invoices)
	assert.Equal(t, 3, invoices.RowCount)
	assert.Equal(t, []string{"id", "order_id"}, invoices.Keys.PrimaryKeys)
	assert.Equal(t, []string{"order_id"}, invoices.Keys.ForeignKeys)

	// "order_id" is not a PK name anywhere else, so resolution falls back to
	// value overlap against orders.id.
	assert.Empty(t, result.Relationships)
	require.Len(t, result.ImplicitRelationships, 1)
	rel := result.ImplicitRelationships[0]
	assert.Equal(t, "orders.csv", rel.ToTable)
	assert.Equal(t, "id", rel.PKColumn)
	assert.InDelta(t, 1.0, rel.Confidence, 1e-9)
}

func TestAnalyzerRunIsDeterministic(t *testing.T) {
	analyzer := NewAnalyzerService(testConfig(), zap.NewNop())

	first, err := analyzer.Run(context.Background(), invoiceSources())
	require.NoError(t, err)
	second, err := analyzer.Run(context.Background(), invoiceSources())
	require.NoError(t, err)

	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Equal(t, first.Relationships, second.Relationships)
	assert.Equal(t, first.ImplicitRelationships, second.ImplicitRelationships)
	assert.Equal(t, first.Tables, second.Tables)
}

func TestAnalyzerRunToleratesLoadFailure(t *testing.T) {
	analyzer := NewAnalyzerService(testConfig(), zap.NewNop())

	sources := invoiceSources()
	sources["broken.csv"] = stubSource{id: "broken.csv", err: errors.New("unreadable")}

	result, err := analyzer.Run(context.Background(), sources)

	require.NoError(t, err)
	require.Len(t, result.Tables, 3)

	broken := result.Tables["broken.csv"]
	require.NotNil(t, broken)
	assert.Equal(t, "unreadable", broken.LoadError)
	assert.Empty(t, broken.Columns)
	assert.NotNil(t, broken.Keys.PrimaryKeys)

	// The healthy tables are unaffected.
	assert.Len(t, result.ImplicitRelationships, 1)
}

func TestAnalyzerRunCancelledContext(t *testing.T) {
	analyzer := NewAnalyzerService(testConfig(), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := analyzer.Run(ctx, invoiceSources())

	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzerRunEmptyInput(t *testing.T) {
	analyzer := NewAnalyzerService(testConfig(), zap.NewNop())

	result, err := analyzer.Run(context.Background(), map[string]source.TableSource{})

	require.NoError(t, err)
	assert.Empty(t, result.Tables)
	assert.Empty(t, result.Relationships)
}
