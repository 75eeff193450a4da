package models

// StateTransition is an observed (from, to) status change.
type StateTransition struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// WorkflowModel is the state-machine candidate mined from a status-like
// column: the sorted distinct states and the set of observed transitions.
// Transitions are empty when no usable event timestamp exists or when rows
// cannot be grouped per entity.
type WorkflowModel struct {
	StatusColumn string            `json:"status_column" yaml:"status_column"`
	States       []string          `json:"states" yaml:"states"`
	Transitions  []StateTransition `json:"transitions,omitempty" yaml:"transitions,omitempty"`
}
