package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatValue(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   Value
		want string
	}{
		{"nil", nil, ""},
		{"string", "open", "open"},
		{"int64", int64(-42), "-42"},
		{"float64", 10.5, "10.5"},
		{"float64 integral", float64(3), "3"},
		{"bool", true, "true"},
		{"time", ts, "2024-03-01T12:30:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.in))
		})
	}
}

func TestDistinctNonNullFirstObservedOrder(t *testing.T) {
	col := &Column{Name: "status", Kind: KindText, Values: []Value{
		"open", nil, "closed", "open", "paid", "closed",
	}}

	assert.Equal(t, []string{"open", "closed", "paid"}, col.DistinctNonNull())
}

func TestDistinctNonNullCrossKindStringification(t *testing.T) {
	// An integer 7 and the string "7" collapse to one distinct value; this is
	// what makes FK overlap across differently-typed columns well defined.
	col := &Column{Name: "ref", Kind: KindText, Values: []Value{int64(7), "7"}}

	assert.Equal(t, []string{"7"}, col.DistinctNonNull())
}

func TestNullCount(t *testing.T) {
	col := &Column{Name: "x", Values: []Value{nil, int64(1), nil}}

	assert.Equal(t, 2, col.NullCount())
}

func TestTableColumnLookup(t *testing.T) {
	table := &Table{
		ID: "t.csv",
		Columns: []*Column{
			{Name: "id"},
			{Name: "status"},
		},
	}

	assert.NotNil(t, table.Column("status"))
	assert.Nil(t, table.Column("missing"))
	assert.Equal(t, []string{"id", "status"}, table.ColumnNames())
}
