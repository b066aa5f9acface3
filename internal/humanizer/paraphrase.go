package humanizer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/valpere/humanizer/internal/nlp"
	"github.com/valpere/humanizer/internal/postprocess"
)

// tokenSlot collects what one input token turns into: optional words
// emitted before it, the (possibly substituted) word itself, and optional
// words emitted after it.
type tokenSlot struct {
	token   nlp.Token
	last    bool
	emitted []string

	before []string
	word   string
	after  []string
}

// tokenStep is one row of the per-token policy table. A step draws from the
// random source only when its precondition holds.
type tokenStep struct {
	name  string
	rate  func(Policy) float64
	when  func(h *Humanizer, s *tokenSlot) bool
	apply func(h *Humanizer, s *tokenSlot) error
}

// tokenSteps run in this order for every eligible token.
var tokenSteps = []tokenStep{
	{
		name: "filler",
		rate: func(p Policy) float64 { return p.Filler },
		when: func(_ *Humanizer, s *tokenSlot) bool {
			return len(s.emitted) > 0 && !nlp.IsPunct(s.emitted[len(s.emitted)-1])
		},
		apply: func(h *Humanizer, s *tokenSlot) error {
			s.before = append(s.before, h.pick(fillers))
			return nil
		},
	},
	{
		name: "synonym",
		rate: func(p Policy) float64 { return p.Synonym },
		when: func(h *Humanizer, s *tokenSlot) bool {
			return !h.stopwords.Contains(s.token.Text)
		},
		apply: func(h *Humanizer, s *tokenSlot) error {
			// The part-of-speech tag is carried on the token but senses are
			// not filtered by it.
			syns, err := h.synonyms.SynonymsOf(s.token.Text, "")
			if err != nil {
				return err
			}
			if len(syns) > 0 {
				s.word = h.pick(syns)
			}
			return nil
		},
	},
	{
		name: "marker",
		rate: func(p Policy) float64 { return p.Marker },
		when: func(_ *Humanizer, s *tokenSlot) bool {
			return !s.last
		},
		apply: func(h *Humanizer, s *tokenSlot) error {
			s.after = append(s.after, h.pick(markers))
			return nil
		},
	},
}

// paraphrase rewrites one sentence token by token. Sentences shorter than
// minSentenceRunes or minSentenceTokens come back untouched.
func (h *Humanizer) paraphrase(sentence string) (string, error) {
	if utf8.RuneCountInString(strings.TrimSpace(sentence)) < minSentenceRunes {
		return sentence, nil
	}

	tokens, err := h.toolkit.Tokens(sentence)
	if err != nil {
		return "", fmt.Errorf("tokenize sentence: %w", err)
	}
	if len(tokens) < minSentenceTokens {
		return sentence, nil
	}

	out := make([]string, 0, len(tokens)+len(tokens)/4)
	for i, tok := range tokens {
		if nlp.IsPunct(tok.Text) || utf8.RuneCountInString(tok.Text) <= maxPassthroughRunes {
			out = append(out, tok.Text)
			continue
		}

		slot := &tokenSlot{
			token:   tok,
			last:    i == len(tokens)-1,
			emitted: out,
			word:    tok.Text,
		}
		for _, step := range tokenSteps {
			if !step.when(h, slot) || !h.chance(step.rate(h.policy)) {
				continue
			}
			if err := step.apply(h, slot); err != nil {
				return "", fmt.Errorf("%s step on %q: %w", step.name, tok.Text, err)
			}
		}

		out = append(out, slot.before...)
		out = append(out, slot.word)
		out = append(out, slot.after...)
	}

	return postprocess.Tidy(strings.Join(out, " ")), nil
}
