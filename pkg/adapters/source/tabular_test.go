package source

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inferra-data/inferra-engine/pkg/apperrors"
	"github.com/inferra-data/inferra-engine/pkg/models"
)

func TestTableFromRowsKindInference(t *testing.T) {
	rows := [][]string{
		{"id", "amount", "issued", "active", "name"},
		{"1", "10.5", "2024-01-02", "true", "ana"},
		{"2", "11", "2024-02-03", "false", "rui"},
		{"3", "NaN", "null", "", "3"},
	}

	table, err := tableFromRows("t.csv", rows)
	require.NoError(t, err)

	assert.Equal(t, 3, table.RowCount)
	require.Len(t, table.Columns, 5)
	assert.Equal(t, models.KindInteger, table.Columns[0].Kind)
	assert.Equal(t, models.KindFloat, table.Columns[1].Kind)
	assert.Equal(t, models.KindTimestamp, table.Columns[2].Kind)
	assert.Equal(t, models.KindBool, table.Columns[3].Kind)
	assert.Equal(t, models.KindText, table.Columns[4].Kind)

	assert.Equal(t, int64(1), table.Columns[0].Values[0])
	assert.Equal(t, 10.5, table.Columns[1].Values[0])
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), table.Columns[2].Values[0])
	assert.Equal(t, true, table.Columns[3].Values[0])
	assert.Equal(t, "ana", table.Columns[4].Values[0])

	// null literals and blanks parse to NULL
	assert.Nil(t, table.Columns[1].Values[2])
	assert.Nil(t, table.Columns[2].Values[2])
	assert.Nil(t, table.Columns[3].Values[2])
}

func TestTableFromRowsMixedColumnFallsBackToText(t *testing.T) {
	rows := [][]string{
		{"code"},
		{"12"},
		{"A-7"},
	}

	table, err := tableFromRows("t.csv", rows)
	require.NoError(t, err)

	assert.Equal(t, models.KindText, table.Columns[0].Kind)
	assert.Equal(t, "12", table.Columns[0].Values[0])
}

func TestTableFromRowsRaggedRows(t *testing.T) {
	rows := [][]string{
		{"a", "b"},
		{"1"},
		{"2", "3", "extra"},
	}

	table, err := tableFromRows("t.csv", rows)
	require.NoError(t, err)

	require.Len(t, table.Columns, 2)
	assert.Nil(t, table.Columns[1].Values[0])             // short row padded
	assert.Equal(t, int64(3), table.Columns[1].Values[1]) // long row truncated
}

func TestTableFromRowsNoHeader(t *testing.T) {
	_, err := tableFromRows("t.csv", nil)

	assert.ErrorIs(t, err, apperrors.ErrNoHeader)
}

func TestTableFromRowsHeaderOnly(t *testing.T) {
	table, err := tableFromRows("t.csv", [][]string{{"id", "name"}})

	require.NoError(t, err)
	assert.Zero(t, table.RowCount)
	assert.Equal(t, []string{"id", "name"}, table.ColumnNames())
}

func TestTableFromRowsAllNullColumnIsText(t *testing.T) {
	table, err := tableFromRows("t.csv", [][]string{{"x"}, {""}, {"NA"}})

	require.NoError(t, err)
	assert.Equal(t, models.KindText, table.Columns[0].Kind)
	assert.Nil(t, table.Columns[0].Values[0])
	assert.Nil(t, table.Columns[0].Values[1])
}

func TestInferKindSingleTimestampLayout(t *testing.T) {
	// Cells matching different layouts cannot share one timestamp column.
	kind := inferKind([]string{"2024-01-02", "02/01/2024"})

	assert.Equal(t, models.KindText, kind)
}
