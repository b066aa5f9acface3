package humanizer

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// inject adds conversational artifacts to the joined text: a fragment such
// as ", you know" somewhere inside, and on long texts a parenthetical
// "(or <synonym>)" in the back half. Texts of artifactMinWords words or
// fewer are returned unchanged.
func (h *Humanizer) inject(text string) (string, error) {
	words := strings.Fields(text)
	if len(words) <= artifactMinWords || !h.chance(h.policy.ArtifactGate) {
		return text, nil
	}

	if h.chance(h.policy.Fragment) {
		pos := 1 + h.rng.Intn(max(1, len(words)-2))
		words = slices.Insert(words, pos, ", "+h.pick(fragments))
	}

	if len(words) > restatementMinWords && h.chance(h.policy.Restatement) {
		restated, err := h.restate(words)
		if err != nil {
			return "", err
		}
		words = restated
	}

	return strings.Join(words, " "), nil
}

// restate picks a key word from words and, when it has synonyms, inserts
// "(or <synonym>)" at an index in [n/2, n-1].
func (h *Humanizer) restate(words []string) ([]string, error) {
	var keys []string
	for _, w := range words {
		if utf8.RuneCountInString(w) > keyWordMinRunes && !h.stopwords.Contains(w) {
			keys = append(keys, w)
		}
	}
	if len(keys) == 0 {
		return words, nil
	}

	key := strings.TrimFunc(h.pick(keys), func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
	if key == "" {
		return words, nil
	}

	syns, err := h.synonyms.SynonymsOf(key, "")
	if err != nil {
		return nil, fmt.Errorf("restate %q: %w", key, err)
	}
	if len(syns) == 0 {
		return words, nil
	}

	n := len(words)
	pos := n/2 + h.rng.Intn(n-n/2)
	return slices.Insert(words, pos, "(or "+h.pick(syns)+")"), nil
}
