package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/valpere/humanizer/internal/humanizer"
	"github.com/valpere/humanizer/internal/nlp"
)

const sampleText = "The cat sat on the mat. It was a sunny day. The dog barked at the quiet mailman."

type staticSynonyms map[string][]string

func (s staticSynonyms) SynonymsOf(word, _ string) ([]string, error) {
	return s[word], nil
}

type errToolkit struct {
	nlp.Toolkit
}

func (errToolkit) Sentences(text string) ([]string, error) {
	if text == "fail" {
		return nil, errors.New("bad input")
	}
	return nlp.NewBasic().Sentences(text)
}

func newHumanizer(t *testing.T, tk nlp.Toolkit) *humanizer.Humanizer {
	t.Helper()
	h, err := humanizer.New(humanizer.Config{
		Toolkit:   tk,
		Stopwords: nlp.EnglishStopwords(),
		Synonyms:  staticSynonyms{"cat": {"feline", "kitty"}, "sunny": {"bright"}, "quiet": {"silent"}},
		Policy:    humanizer.DefaultPolicy(),
	}, humanizer.NewRand(1))
	if err != nil {
		t.Fatalf("humanizer.New: %v", err)
	}
	return h
}

func TestOrchestrator_New_Defaults(t *testing.T) {
	o := New(newHumanizer(t, nlp.NewBasic()), OrchestratorConfig{})
	if o.config.Workers != DefaultWorkers {
		t.Errorf("expected Workers=%d, got %d", DefaultWorkers, o.config.Workers)
	}
	if o.config.Logger == nil {
		t.Error("expected default logger")
	}
}

func TestOrchestrator_Execute(t *testing.T) {
	o := New(newHumanizer(t, nlp.NewBasic()), OrchestratorConfig{Workers: 3})

	jobs := make([]Job, 10)
	for i := range jobs {
		jobs[i] = Job{ID: fmt.Sprint(i), Text: sampleText, Seed: int64(i)}
	}

	var calls atomic.Int32
	res, err := o.Execute(context.Background(), jobs, func(JobResult) { calls.Add(1) })
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Succeeded != 10 || res.Failed != 0 {
		t.Errorf("expected 10/0, got %d/%d", res.Succeeded, res.Failed)
	}
	if calls.Load() != 10 {
		t.Errorf("expected 10 callbacks, got %d", calls.Load())
	}
	for i, jr := range res.Results {
		if jr.Job.ID != fmt.Sprint(i) {
			t.Errorf("result %d out of order: %s", i, jr.Job.ID)
		}
		if jr.Result == nil || jr.Result.Text == "" {
			t.Errorf("result %d empty", i)
		}
	}
}

func TestOrchestrator_DeterministicPerSeed(t *testing.T) {
	h := newHumanizer(t, nlp.NewBasic())
	jobs := []Job{{ID: "a", Text: sampleText, Seed: 42}, {ID: "b", Text: sampleText, Seed: 42}}

	for _, workers := range []int{1, 2} {
		res, err := New(h, OrchestratorConfig{Workers: workers}).Execute(context.Background(), jobs, nil)
		if err != nil {
			t.Fatal(err)
		}
		if res.Results[0].Result.Text != res.Results[1].Result.Text {
			t.Errorf("workers=%d: same seed produced different text", workers)
		}

		want, err := h.Session(humanizer.NewRand(42)).Humanize(sampleText)
		if err != nil {
			t.Fatal(err)
		}
		if res.Results[0].Result.Text != want {
			t.Errorf("workers=%d: job output differs from a direct session", workers)
		}
	}
}

func TestOrchestrator_JobFailureIsolated(t *testing.T) {
	o := New(newHumanizer(t, errToolkit{nlp.NewBasic()}), OrchestratorConfig{Workers: 2})

	res, err := o.Execute(context.Background(), []Job{
		{ID: "ok", Text: sampleText},
		{ID: "bad", Text: "fail"},
		{ID: "ok2", Text: sampleText},
	}, nil)
	if err != nil {
		t.Fatalf("job errors must not fail Execute: %v", err)
	}
	if res.Succeeded != 2 || res.Failed != 1 {
		t.Errorf("expected 2/1, got %d/%d", res.Succeeded, res.Failed)
	}
	if res.Results[1].Err == nil {
		t.Error("expected error on the failing job")
	}
	if errs := res.Errors(); len(errs) != 1 {
		t.Errorf("expected 1 error, got %v", errs)
	}
}

func TestOrchestrator_Cancelled(t *testing.T) {
	o := New(newHumanizer(t, nlp.NewBasic()), OrchestratorConfig{Workers: 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := o.Execute(ctx, []Job{{ID: "1", Text: sampleText}, {ID: "2", Text: sampleText}}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if res.Succeeded != 0 {
		t.Errorf("no job should run after cancellation, got %d", res.Succeeded)
	}
	if res.Succeeded+res.Failed != len(res.Results) {
		t.Errorf("expected every job counted, got %d succeeded + %d failed of %d",
			res.Succeeded, res.Failed, len(res.Results))
	}
	for _, jr := range res.Results {
		if !errors.Is(jr.Err, context.Canceled) {
			t.Errorf("job %s: expected cancellation error, got %v", jr.Job.ID, jr.Err)
		}
	}
}

func TestOrchestrator_Variants(t *testing.T) {
	o := New(newHumanizer(t, nlp.NewBasic()), OrchestratorConfig{})

	res, err := o.Variants(context.Background(), sampleText, 3, 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Results) != 3 {
		t.Fatalf("expected 3 variants, got %d", len(res.Results))
	}
	for i, jr := range res.Results {
		if jr.Job.Seed != 100+int64(i) {
			t.Errorf("variant %d seed %d", i, jr.Job.Seed)
		}
	}
}
