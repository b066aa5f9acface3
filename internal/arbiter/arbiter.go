// Package arbiter picks the best of several rewrites of the same source.
package arbiter

import (
	"context"
)

// Candidate is one rewrite of the source text.
type Candidate struct {
	Seed int64
	Text string
}

// EvaluationResult names the chosen candidate.
type EvaluationResult struct {
	Index     int
	Seed      int64
	Text      string
	Reasoning string
}

// Arbiter selects one candidate among rewrites of source.
type Arbiter interface {
	Evaluate(ctx context.Context, source string, candidates []Candidate) (*EvaluationResult, error)
}
