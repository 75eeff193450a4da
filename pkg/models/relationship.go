package models

// KeySet holds the key candidates detected for a single table.
type KeySet struct {
	// PrimaryKeys are columns that are fully non-null with all-distinct
	// values, plus any keys declared by a schema dump.
	PrimaryKeys []string `json:"primary_keys" yaml:"primary_keys"`

	// ForeignKeys are columns whose name ends in "_id" (a naming heuristic,
	// not validated against other tables), plus declared foreign keys.
	ForeignKeys []string `json:"foreign_keys" yaml:"foreign_keys"`
}

// Relationship is a suggested FK→PK link between two tables. It is never
// enforced; all relationships are candidates for human review.
type Relationship struct {
	FromTable string `json:"from_table" yaml:"from_table"`
	FKColumn  string `json:"fk" yaml:"fk"`
	ToTable   string `json:"to_table" yaml:"to_table"`
	PKColumn  string `json:"pk" yaml:"pk"`

	// Confidence is the value-overlap ratio for implicit relationships,
	// in (0,1]. Explicit (name-matched) relationships carry no confidence.
	Confidence float64 `json:"confidence,omitempty" yaml:"confidence,omitempty"`
}
