package models

import (
	"strconv"
	"time"
)

// Kind is the scalar kind declared (or inferred) for a column.
type Kind string

const (
	KindInteger   Kind = "integer"
	KindFloat     Kind = "float"
	KindText      Kind = "text"
	KindTimestamp Kind = "timestamp"
	KindBool      Kind = "bool"
)

// IsNumeric reports whether the kind carries numeric values.
func (k Kind) IsNumeric() bool {
	return k == KindInteger || k == KindFloat
}

// Value is a single nullable cell. A nil Value is NULL; non-nil values are
// one of int64, float64, bool, time.Time or string, matching the column Kind.
type Value = any

// Column is a named, typed sequence of values. The value slice always has
// exactly RowCount entries for the owning table.
type Column struct {
	Name   string  `json:"name" yaml:"name"`
	Kind   Kind    `json:"kind" yaml:"kind"`
	Values []Value `json:"-" yaml:"-"`
}

// NullCount returns the number of NULL values in the column.
func (c *Column) NullCount() int {
	nulls := 0
	for _, v := range c.Values {
		if v == nil {
			nulls++
		}
	}
	return nulls
}

// DistinctNonNull returns the distinct non-null values, stringified, in
// first-observed order. Distinctness is decided on the stringified form so
// that cross-kind comparisons (implicit FK overlap) are well defined.
func (c *Column) DistinctNonNull() []string {
	seen := make(map[string]struct{}, len(c.Values))
	distinct := make([]string, 0)
	for _, v := range c.Values {
		if v == nil {
			continue
		}
		s := FormatValue(v)
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		distinct = append(distinct, s)
	}
	return distinct
}

// Table is an immutable loaded dataset: an identifier, ordered columns and a
// row count. SQL schema dumps produce tables with zero rows but declared keys.
type Table struct {
	ID       string
	Columns  []*Column
	RowCount int

	// Declared key columns parsed from a schema dump. Empty for tabular files.
	DeclaredPrimaryKeys []string
	DeclaredForeignKeys []string
}

// Column returns the named column, or nil when absent.
func (t *Table) Column(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ColumnNames returns the column names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// FormatValue renders a cell value as a stable string. NULL renders empty.
func FormatValue(v Value) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return ""
	}
}
