// Package orchestrator runs many rewrites on a bounded worker pool. Each job
// gets its own seeded session of a shared Humanizer, so results depend only
// on the job's text and seed, never on scheduling.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/valpere/humanizer/internal/humanizer"
)

// DefaultWorkers bounds concurrency when Config.Workers is unset.
const DefaultWorkers = 4

type OrchestratorConfig struct {
	Workers int
	Logger  *slog.Logger
}

// Job is one text to rewrite with its own seed.
type Job struct {
	ID   string
	Text string
	Seed int64
}

// JobResult is the outcome of one Job.
type JobResult struct {
	Job      Job
	Result   *humanizer.Result
	Err      error
	Duration time.Duration
}

type OrchestratorResult struct {
	// Results is in job order.
	Results   []JobResult
	Succeeded int
	// Failed includes jobs skipped after cancellation.
	Failed int
}

// Errors returns the job errors in job order.
func (r *OrchestratorResult) Errors() []error {
	var errs []error
	for _, jr := range r.Results {
		if jr.Err != nil {
			errs = append(errs, fmt.Errorf("job %s: %w", jr.Job.ID, jr.Err))
		}
	}
	return errs
}

type Orchestrator struct {
	humanizer *humanizer.Humanizer
	config    OrchestratorConfig
}

func New(h *humanizer.Humanizer, config OrchestratorConfig) *Orchestrator {
	if config.Workers <= 0 {
		config.Workers = DefaultWorkers
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Orchestrator{
		humanizer: h,
		config:    config,
	}
}

// Execute rewrites every job. A failing job is recorded in its JobResult and
// does not stop the others. onDone, when non-nil, is called once per
// finished job from a single goroutine at a time. When ctx is cancelled
// Execute stops scheduling, marks the jobs that never ran with ctx's error
// and returns that error along with the partial results.
func (o *Orchestrator) Execute(ctx context.Context, jobs []Job, onDone func(JobResult)) (*OrchestratorResult, error) {
	result := &OrchestratorResult{
		Results: make([]JobResult, len(jobs)),
	}
	for i, job := range jobs {
		result.Results[i].Job = job
	}

	done := make(chan int, len(jobs))
	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for idx := range done {
			jr := result.Results[idx]
			if jr.Err != nil {
				result.Failed++
			} else {
				result.Succeeded++
			}
			if onDone != nil {
				onDone(jr)
			}
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.config.Workers)

	for i, job := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			start := time.Now()
			res, err := o.humanizer.Session(humanizer.NewRand(job.Seed)).Process(job.Text)
			result.Results[i] = JobResult{
				Job:      job,
				Result:   res,
				Err:      err,
				Duration: time.Since(start),
			}
			if err != nil {
				o.config.Logger.Warn("job failed", "id", job.ID, "error", err)
			} else {
				o.config.Logger.Debug("job done", "id", job.ID, "duration", result.Results[i].Duration)
			}
			done <- i
			return nil
		})
	}

	err := g.Wait()
	close(done)
	<-collected

	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		for i := range result.Results {
			if jr := &result.Results[i]; jr.Result == nil && jr.Err == nil {
				jr.Err = err
				result.Failed++
			}
		}
	}
	return result, err
}

// Variants rewrites the same text n times with seeds baseSeed, baseSeed+1, ...
func (o *Orchestrator) Variants(ctx context.Context, text string, n int, baseSeed int64) (*OrchestratorResult, error) {
	if n <= 0 {
		n = 1
	}
	jobs := make([]Job, n)
	for i := range jobs {
		jobs[i] = Job{
			ID:   fmt.Sprintf("variant-%d", i+1),
			Text: text,
			Seed: baseSeed + int64(i),
		}
	}
	return o.Execute(ctx, jobs, nil)
}
