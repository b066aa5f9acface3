package thesaurus

import "strings"

// detachment rules: suffix → replacement, tried in order.
var detachRules = []struct {
	suffix string
	repl   string
}{
	// nouns
	{"ses", "s"}, {"xes", "x"}, {"zes", "z"}, {"ches", "ch"}, {"shes", "sh"},
	{"men", "man"}, {"ies", "y"},
	// verbs
	{"es", "e"}, {"es", ""}, {"ed", "e"}, {"ed", ""}, {"ing", "e"}, {"ing", ""},
	// adjectives
	{"est", "e"}, {"est", ""}, {"er", "e"}, {"er", ""},
	{"s", ""},
}

// BaseForms returns candidate base forms of an inflected word in the order
// they should be tried, without the word itself. "running" yields "runne",
// "runn" and "run"; "studies" yields "study" among others.
func BaseForms(word string) []string {
	w := strings.ToLower(word)
	seen := map[string]struct{}{w: {}}
	var out []string
	add := func(s string) {
		if len(s) < 2 {
			return
		}
		if _, dup := seen[s]; dup {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	for _, r := range detachRules {
		if !strings.HasSuffix(w, r.suffix) || len(w) <= len(r.suffix) {
			continue
		}
		base := w[:len(w)-len(r.suffix)] + r.repl
		add(base)
		if r.repl == "" && hasDoubledFinal(base) {
			add(base[:len(base)-1])
		}
	}
	return out
}

func hasDoubledFinal(s string) bool {
	n := len(s)
	if n < 3 {
		return false
	}
	c := s[n-1]
	return c == s[n-2] && !strings.ContainsRune("aeiousl", rune(c))
}

type morphProvider struct {
	next Provider
}

// WithMorphology wraps p so that a word without senses is retried with its
// base forms; the first base form that has senses wins.
func WithMorphology(p Provider) Provider {
	return &morphProvider{next: p}
}

func (m *morphProvider) Lemmas(word string) ([]string, error) {
	lemmas, err := m.next.Lemmas(word)
	if err != nil || len(lemmas) > 0 {
		return lemmas, err
	}
	for _, base := range BaseForms(word) {
		lemmas, err = m.next.Lemmas(base)
		if err != nil {
			return nil, err
		}
		if len(lemmas) > 0 {
			return lemmas, nil
		}
	}
	return nil, nil
}
