package nlp

import (
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"
)

// Prose is a Toolkit backed by github.com/jdkato/prose/v2: a Punkt-style
// sentence segmenter, a Treebank-style tokenizer and an averaged-perceptron
// part-of-speech tagger. The tagger model is loaded once and is safe for
// concurrent use.
type Prose struct {
	model *prose.Model
}

// NewProse returns the prose-backed toolkit with its tagger model loaded.
func NewProse() *Prose {
	p := &Prose{}
	doc, err := prose.NewDocument("",
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err == nil {
		p.model = doc.Model
	}
	return p
}

func (p *Prose) Name() string {
	return "prose"
}

// document parses text with the shared model.
func (p *Prose) document(text string, opts ...prose.DocOpt) (*prose.Document, error) {
	if p.model != nil {
		opts = append(opts, prose.UsingModel(p.model))
	}
	return prose.NewDocument(text, opts...)
}

func (p *Prose) Sentences(text string) ([]string, error) {
	doc, err := p.document(text,
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("segment sentences: %w", err)
	}

	var out []string
	for _, s := range doc.Sentences() {
		if t := strings.TrimSpace(s.Text); t != "" {
			out = append(out, t)
		}
	}
	return out, nil
}

func (p *Prose) Tokens(sentence string) ([]Token, error) {
	doc, err := p.document(sentence,
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("tokenize sentence: %w", err)
	}

	toks := doc.Tokens()
	out := make([]Token, 0, len(toks))
	for _, t := range toks {
		out = append(out, Token{Text: t.Text, Tag: t.Tag})
	}
	return out, nil
}
