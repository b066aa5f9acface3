package humanizer

import (
	"strings"
	"sync/atomic"
	"testing"

	"github.com/valpere/humanizer/internal/nlp"
)

// fixedRand returns the same draw every time. f=0 fires every decision with
// a positive rate; f close to 1 fires none.
type fixedRand struct {
	f float64
	i int
}

func (r fixedRand) Float64() float64 { return r.f }

func (r fixedRand) Intn(n int) int {
	if r.i >= n {
		return n - 1
	}
	return r.i
}

type mapSynonyms struct {
	m     map[string][]string
	err   error
	calls atomic.Int32
}

func (s *mapSynonyms) SynonymsOf(word, _ string) ([]string, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	if syns, ok := s.m[strings.ToLower(word)]; ok {
		return syns, nil
	}
	return []string{}, nil
}

type failingToolkit struct {
	nlp.Toolkit
	err error
}

func (f failingToolkit) Sentences(string) ([]string, error) { return nil, f.err }

func newTestHumanizer(t testing.TB, policy Policy, rng Rand, syns map[string][]string) *Humanizer {
	h, err := New(Config{
		Toolkit:   nlp.NewBasic(),
		Stopwords: nlp.EnglishStopwords(),
		Synonyms:  &mapSynonyms{m: syns},
		Policy:    policy,
	}, rng)
	if err != nil {
		t.Helper()
		t.Fatalf("New: %v", err)
	}
	return h
}

func wordsN(w string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = w
	}
	return out
}
