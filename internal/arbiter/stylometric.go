package arbiter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/valpere/humanizer/internal/stylometry"
)

// StylometricArbiter prefers the candidate whose sentence lengths vary most,
// breaking ties on cliché density and flag count. Candidates identical to
// the source are passed over unless nothing else is available.
type StylometricArbiter struct {
	logger *slog.Logger
}

func NewStylometricArbiter(logger *slog.Logger) *StylometricArbiter {
	if logger == nil {
		logger = slog.Default()
	}
	return &StylometricArbiter{logger: logger}
}

func (a *StylometricArbiter) Evaluate(ctx context.Context, source string, candidates []Candidate) (*EvaluationResult, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no candidates to evaluate")
	}

	if len(candidates) == 1 {
		return &EvaluationResult{
			Index:     0,
			Seed:      candidates[0].Seed,
			Text:      candidates[0].Text,
			Reasoning: "Only one candidate available",
		}, nil
	}

	best := -1
	var bestReport stylometry.Report
	for i, c := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report := stylometry.Analyze(c.Text)
		a.logger.Debug("candidate scored",
			"index", i,
			"seed", c.Seed,
			"sd", report.SentenceLengthSD,
			"cliche_density", report.ClicheDensity,
			"flags", len(report.Flags),
		)

		switch {
		case best < 0:
		case (c.Text == source) != (candidates[best].Text == source):
			// a real rewrite beats an unchanged copy
			if c.Text == source {
				continue
			}
		case !stylometry.Better(report, bestReport):
			continue
		}
		best, bestReport = i, report
	}

	return &EvaluationResult{
		Index: best,
		Seed:  candidates[best].Seed,
		Text:  candidates[best].Text,
		Reasoning: fmt.Sprintf("sentence-length SD %.2f, cliché density %.3f, %d flag(s)",
			bestReport.SentenceLengthSD, bestReport.ClicheDensity, len(bestReport.Flags)),
	}, nil
}
