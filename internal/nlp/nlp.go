// Package nlp provides the natural-language toolkit the rewriting pipeline
// depends on: sentence segmentation, word tokenization with part-of-speech
// tags, and an English stopword set.
package nlp

import (
	"bufio"
	_ "embed"
	"strings"
	"unicode"
)

//go:embed stopwords_en.txt
var stopwordsEN string

// Token is a word or punctuation mark produced by a Toolkit.
// Tag holds the Penn Treebank tag when the toolkit tags, and is empty otherwise.
type Token struct {
	Text string `json:"text"`
	Tag  string `json:"tag,omitempty"`
}

// Toolkit segments and tokenizes English text.
type Toolkit interface {
	Name() string
	// Sentences splits text into sentence strings, preserving order.
	Sentences(text string) ([]string, error)
	// Tokens splits one sentence into words and punctuation, preserving order.
	Tokens(sentence string) ([]Token, error)
}

// Stopwords is an immutable set of lower-cased words.
type Stopwords struct {
	words map[string]struct{}
}

// EnglishStopwords returns the standard English stopword list extended with
// extra words (lower-cased). The returned set is never modified afterwards.
func EnglishStopwords(extra ...string) *Stopwords {
	words := make(map[string]struct{}, 200+len(extra))
	sc := bufio.NewScanner(strings.NewReader(stopwordsEN))
	for sc.Scan() {
		if w := strings.TrimSpace(sc.Text()); w != "" {
			words[w] = struct{}{}
		}
	}
	for _, w := range extra {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			words[w] = struct{}{}
		}
	}
	return &Stopwords{words: words}
}

// Contains reports whether word (compared lower-cased) is a stopword.
func (s *Stopwords) Contains(word string) bool {
	if s == nil {
		return false
	}
	_, ok := s.words[strings.ToLower(word)]
	return ok
}

// Len returns the number of words in the set.
func (s *Stopwords) Len() int {
	if s == nil {
		return 0
	}
	return len(s.words)
}

// IsPunct reports whether tok consists only of punctuation or symbol runes.
// The empty string counts as punctuation.
func IsPunct(tok string) bool {
	for _, r := range tok {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}

// New returns the toolkit registered under name ("prose" or "basic").
func New(name string) (Toolkit, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "prose":
		return NewProse(), nil
	case "basic":
		return NewBasic(), nil
	default:
		return nil, &UnknownToolkitError{Name: name}
	}
}

// UnknownToolkitError is returned by New for an unregistered toolkit name.
type UnknownToolkitError struct {
	Name string
}

func (e *UnknownToolkitError) Error() string {
	return "unknown toolkit: " + e.Name
}
