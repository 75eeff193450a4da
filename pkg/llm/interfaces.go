// Package llm provides the optional report refinement pass. Refinement is an
// opaque external step: any failure falls back to the unrefined report and
// never blocks producing the primary output.
package llm

import "context"

// Refiner rewrites a generated markdown report for readability.
type Refiner interface {
	Refine(ctx context.Context, report string) (string, error)
}

// systemPrompt frames the refinement request for both providers.
const systemPrompt = "You are an assistant that refines structural data analysis reports. " +
	"Improve clarity and flow without changing any finding, metric, or table."
