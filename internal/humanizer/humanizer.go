// Package humanizer rewrites machine-generated English text so it reads less
// uniformly. The pipeline segments text into sentences, paraphrases each one
// token by token, varies the sentence sequence, joins it back together,
// sprinkles in conversational artifacts and normalizes whitespace.
//
// Every random decision is drawn from an injected Rand according to a Policy,
// so a fixed seed reproduces a rewrite byte for byte.
package humanizer

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/valpere/humanizer/internal/nlp"
	"github.com/valpere/humanizer/internal/placeholder"
	"github.com/valpere/humanizer/internal/postprocess"
)

// Synonyms looks up single-word synonyms. *thesaurus.Cache implements it.
type Synonyms interface {
	SynonymsOf(word, pos string) ([]string, error)
}

// Config wires a Humanizer to its collaborators. Toolkit and Synonyms are
// required; a nil Stopwords set protects no words.
type Config struct {
	Toolkit   nlp.Toolkit
	Stopwords *nlp.Stopwords
	Synonyms  Synonyms
	Policy    Policy

	// ProtectPlaceholders swaps URLs, e-mail addresses, code and formatted
	// numbers for inert markers while the pipeline runs.
	ProtectPlaceholders bool

	Logger *slog.Logger
}

// Result is a rewrite plus the naive whitespace word counts of its input
// and output.
type Result struct {
	Text          string `json:"text"`
	OriginalWords int    `json:"original_words"`
	ResultWords   int    `json:"result_words"`
}

// Humanizer runs the rewrite pipeline. It is safe for concurrent use, but
// concurrent calls interleave their draws from the shared random source;
// use Session for reproducible per-request output.
type Humanizer struct {
	toolkit   nlp.Toolkit
	stopwords *nlp.Stopwords
	synonyms  Synonyms
	policy    Policy
	protect   bool
	logger    *slog.Logger
	rng       Rand
}

// New validates cfg and returns a Humanizer drawing from rng. A nil rng is
// seeded from the clock.
func New(cfg Config, rng Rand) (*Humanizer, error) {
	if cfg.Toolkit == nil {
		return nil, errors.New("humanizer: toolkit is required")
	}
	if cfg.Synonyms == nil {
		return nil, errors.New("humanizer: synonym source is required")
	}
	if err := cfg.Policy.Validate(); err != nil {
		return nil, fmt.Errorf("humanizer: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if rng == nil {
		rng = NewRand(time.Now().UnixNano())
	}

	return &Humanizer{
		toolkit:   cfg.Toolkit,
		stopwords: cfg.Stopwords,
		synonyms:  cfg.Synonyms,
		policy:    cfg.Policy,
		protect:   cfg.ProtectPlaceholders,
		logger:    logger,
		rng:       &lockedRand{r: rng},
	}, nil
}

// Session returns a Humanizer that shares h's toolkit, stopwords and
// synonym source but draws from rng.
func (h *Humanizer) Session(rng Rand) *Humanizer {
	s := *h
	s.rng = &lockedRand{r: rng}
	return &s
}

// Policy returns the probabilities h rewrites with.
func (h *Humanizer) Policy() Policy {
	return h.policy
}

// Humanize rewrites text. Blank input is returned unchanged. Toolkit and
// synonym source failures are returned wrapped; no partial output is
// produced.
func (h *Humanizer) Humanize(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	var originals []string
	if h.protect {
		text, originals = placeholder.Protect(text)
	}

	sentences, err := h.toolkit.Sentences(text)
	if err != nil {
		return "", fmt.Errorf("segment sentences: %w", err)
	}

	paraphrased := make([]string, len(sentences))
	for i, s := range sentences {
		if paraphrased[i], err = h.paraphrase(s); err != nil {
			return "", fmt.Errorf("paraphrase sentence %d: %w", i+1, err)
		}
	}

	varied := h.vary(paraphrased)

	out, err := h.inject(strings.Join(varied, " "))
	if err != nil {
		return "", fmt.Errorf("inject artifacts: %w", err)
	}
	out = postprocess.Tidy(out)

	if len(originals) > 0 {
		if missing := placeholder.Validate(out, originals); len(missing) > 0 {
			h.logger.Warn("protected spans lost during rewrite", "missing", missing)
		}
		out = placeholder.Restore(out, originals)
	}

	h.logger.Debug("humanized text",
		"toolkit", h.toolkit.Name(),
		"sentences", len(sentences),
		"varied", len(varied),
	)
	return out, nil
}

// Process rewrites text and reports word counts for display.
func (h *Humanizer) Process(text string) (*Result, error) {
	out, err := h.Humanize(text)
	if err != nil {
		return nil, err
	}
	return &Result{
		Text:          out,
		OriginalWords: wordCount(text),
		ResultWords:   wordCount(out),
	}, nil
}

func (h *Humanizer) chance(p float64) bool {
	return h.rng.Float64() < p
}

func (h *Humanizer) pick(options []string) string {
	return options[h.rng.Intn(len(options))]
}
