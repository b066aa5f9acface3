package arbiter

import (
	"context"
	"strings"
	"testing"
)

func TestStylometricArbiter_NoCandidates(t *testing.T) {
	a := NewStylometricArbiter(nil)
	if _, err := a.Evaluate(context.Background(), "src", nil); err == nil {
		t.Error("expected error for empty candidate list")
	}
}

func TestStylometricArbiter_SingleCandidate(t *testing.T) {
	a := NewStylometricArbiter(nil)
	res, err := a.Evaluate(context.Background(), "src", []Candidate{{Seed: 7, Text: "only"}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Index != 0 || res.Seed != 7 || res.Text != "only" {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestStylometricArbiter_PrefersVariedSentences(t *testing.T) {
	flat := "One two three. Four five six. Seven eight nine."
	varied := "One. Two three four five six seven eight nine ten eleven twelve. Thirteen fourteen."

	a := NewStylometricArbiter(nil)
	res, err := a.Evaluate(context.Background(), "source", []Candidate{
		{Seed: 1, Text: flat},
		{Seed: 2, Text: varied},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Seed != 2 || res.Index != 1 {
		t.Errorf("expected the varied candidate, got %+v", res)
	}
	if !strings.Contains(res.Reasoning, "SD") {
		t.Errorf("reasoning should mention SD: %q", res.Reasoning)
	}
}

func TestStylometricArbiter_PrefersFewerCliches(t *testing.T) {
	a := NewStylometricArbiter(nil)
	res, err := a.Evaluate(context.Background(), "source", []Candidate{
		{Seed: 1, Text: "We delve into a vibrant tapestry."},
		{Seed: 2, Text: "We look into a lively picture."},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Seed != 2 {
		t.Errorf("expected the plain candidate, got %+v", res)
	}
}

func TestStylometricArbiter_SkipsUnchangedCopy(t *testing.T) {
	source := "One. Two three four five six seven eight nine ten eleven twelve. Thirteen."
	a := NewStylometricArbiter(nil)
	res, err := a.Evaluate(context.Background(), source, []Candidate{
		{Seed: 1, Text: source},
		{Seed: 2, Text: "One two three. Four five six."},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Seed != 2 {
		t.Errorf("an unchanged copy should lose to a rewrite, got %+v", res)
	}
}

func TestStylometricArbiter_AllUnchanged(t *testing.T) {
	a := NewStylometricArbiter(nil)
	res, err := a.Evaluate(context.Background(), "same.", []Candidate{{Seed: 1, Text: "same."}, {Seed: 2, Text: "same."}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Index != 0 {
		t.Errorf("ties keep the first candidate, got %d", res.Index)
	}
}

func TestStylometricArbiter_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a := NewStylometricArbiter(nil)
	_, err := a.Evaluate(ctx, "s", []Candidate{{Text: "a"}, {Text: "b"}})
	if err == nil {
		t.Error("expected context error")
	}
}
