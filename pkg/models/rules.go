package models

import "fmt"

// BusinessFieldCandidate is a low-cardinality, low-null column treated as a
// closed-domain attribute. Valid only while both ratios are under their
// thresholds.
type BusinessFieldCandidate struct {
	Column      string   `json:"column" yaml:"column"`
	UniqueRatio float64  `json:"unique_ratio" yaml:"unique_ratio"`
	NullRatio   float64  `json:"null_ratio" yaml:"null_ratio"`
	Samples     []string `json:"samples,omitempty" yaml:"samples,omitempty"`
}

// TemporalRule asserts Earlier ≤ Later. Derived purely from column name
// tokens, never validated against row values.
type TemporalRule struct {
	Earlier string `json:"earlier" yaml:"earlier"`
	Later   string `json:"later" yaml:"later"`
}

func (r TemporalRule) String() string {
	return fmt.Sprintf("%s <= %s", r.Earlier, r.Later)
}

// MultivariateRule is a conditional non-null constraint: when the condition
// column holds ConditionValue, the target column is expected non-null.
type MultivariateRule struct {
	ConditionColumn string `json:"condition_column" yaml:"condition_column"`
	ConditionValue  string `json:"condition_value" yaml:"condition_value"`
	TargetColumn    string `json:"target_column" yaml:"target_column"`

	// ViolationPct is the observed null rate of the target among rows
	// matching the condition, rounded to 3 decimals.
	ViolationPct float64 `json:"violation_pct" yaml:"violation_pct"`
}

// Condition renders the rule's condition, e.g. "type = A".
func (r MultivariateRule) Condition() string {
	return fmt.Sprintf("%s = %s", r.ConditionColumn, r.ConditionValue)
}

// Requirement renders the rule's requirement, e.g. "email != null".
func (r MultivariateRule) Requirement() string {
	return fmt.Sprintf("%s != null", r.TargetColumn)
}

// DerivedFieldSuggestion proposes that a numeric column is derivable from the
// day difference between two timestamp columns.
type DerivedFieldSuggestion struct {
	Field         string  `json:"field" yaml:"field"`
	LaterColumn   string  `json:"later_column" yaml:"later_column"`
	EarlierColumn string  `json:"earlier_column" yaml:"earlier_column"`
	Correlation   float64 `json:"correlation" yaml:"correlation"`
}

// DerivedFrom renders the date pair, e.g. "payment_date - issue_date".
func (s DerivedFieldSuggestion) DerivedFrom() string {
	return fmt.Sprintf("%s - %s", s.LaterColumn, s.EarlierColumn)
}
