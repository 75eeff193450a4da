package models

// Category is the semantic category assigned to a column by the profiler's
// priority cascade. The first matching rule wins.
type Category string

const (
	CategoryRelational  Category = "relational"
	CategoryTemporal    Category = "temporal"
	CategoryBoolean     Category = "boolean"
	CategoryMonetary    Category = "monetary"
	CategoryStatus      Category = "status"
	CategoryNumeric     Category = "numeric"
	CategoryCategorical Category = "categorical"
)

// ColumnProfile holds per-column statistics computed once at table load.
type ColumnProfile struct {
	// NullRatio is null_count / row_count, 0 for an empty table.
	NullRatio float64 `json:"null_ratio" yaml:"null_ratio"`

	// UniqueRatio is distinct_count / row_count, 0 for an empty table.
	UniqueRatio float64 `json:"unique_ratio" yaml:"unique_ratio"`

	// Samples holds up to N distinct non-null values, stringified, in
	// first-observed order.
	Samples []string `json:"samples,omitempty" yaml:"samples,omitempty"`

	// Category is the semantic category from the name/kind cascade.
	Category Category `json:"category" yaml:"category"`

	// Entropy is the Shannon entropy (bits) of the non-null value
	// distribution, 0 for an empty or fully-null column.
	Entropy float64 `json:"entropy" yaml:"entropy"`

	// Dead is true when the column is all-null or has at most one distinct
	// value. Dead columns are excluded from key detection and from
	// low-cardinality rule mining.
	Dead bool `json:"dead" yaml:"dead"`
}
