package humanizer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// vary rewrites the sentence sequence: later sentences may gain a transition
// phrase, and adjacent short sentences may merge. A merged sentence consumes
// its successor, so the result is never longer than the input.
func (h *Humanizer) vary(sentences []string) []string {
	out := make([]string, 0, len(sentences))
	for i := 0; i < len(sentences); i++ {
		s := sentences[i]
		if strings.TrimSpace(s) == "" {
			out = append(out, s)
			continue
		}

		if i > 0 && !startsWithTransition(s) && h.chance(h.policy.Transition) {
			s = h.pick(beginnings) + capitalize(s)
		}

		if i < len(sentences)-1 {
			next := sentences[i+1]
			if strings.TrimSpace(next) != "" &&
				wordCount(s) < mergeMaxWords && wordCount(next) < mergeMaxWords &&
				h.chance(h.policy.Merge) {
				out = append(out, s+" "+lower(next))
				i++
				continue
			}
		}

		out = append(out, s)
	}
	return out
}

// startsWithTransition reports whether the first word of s, ignoring case
// and trailing punctuation, is a known transition word.
func startsWithTransition(s string) bool {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return false
	}
	first := strings.TrimRightFunc(lower(fields[0]), unicode.IsPunct)
	_, ok := transitionWords[first]
	return ok
}

func lower(s string) string {
	return cases.Lower(language.English).String(s)
}

// capitalize lower-cases s and upper-cases its first rune.
func capitalize(s string) string {
	s = lower(s)
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
