package nlp

import (
	"errors"
	"reflect"
	"testing"

	"github.com/jdkato/prose/v2"
)

func TestBasic_Sentences(t *testing.T) {
	b := NewBasic()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "Hello world.", []string{"Hello world."}},
		{"two sentences", "The cat sat on the mat. It was a sunny day.",
			[]string{"The cat sat on the mat.", "It was a sunny day."}},
		{"question and exclamation", "Is it? Yes! Fine.", []string{"Is it?", "Yes!", "Fine."}},
		{"abbreviation", "Dr. Smith arrived. He sat down.", []string{"Dr. Smith arrived.", "He sat down."}},
		{"initial", "J. R. Tolkien wrote books. Many of them.", []string{"J. R. Tolkien wrote books.", "Many of them."}},
		{"decimal", "Pi is 3.14 roughly. True.", []string{"Pi is 3.14 roughly.", "True."}},
		{"closing quote", `He said "stop." Then left.`, []string{`He said "stop."`, "Then left."}},
		{"no terminal punctuation", "no ending here", []string{"no ending here"}},
		{"extra whitespace", "  One.   Two.  ", []string{"One.", "Two."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := b.Sentences(tt.input)
			if err != nil {
				t.Fatalf("Sentences(%q) error: %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Sentences(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestBasic_Tokens(t *testing.T) {
	b := NewBasic()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"simple", "The cat sat.", []string{"The", "cat", "sat", "."}},
		{"comma", "Well, it works", []string{"Well", ",", "it", "works"}},
		{"contraction", "It doesn't matter!", []string{"It", "doesn't", "matter", "!"}},
		{"hyphen", "A well-known fact", []string{"A", "well-known", "fact"}},
		{"ellipsis", "Wait... now", []string{"Wait", "...", "now"}},
		{"empty", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := b.Tokens(tt.input)
			if err != nil {
				t.Fatalf("Tokens(%q) error: %v", tt.input, err)
			}
			got := make([]string, len(toks))
			for i, tok := range toks {
				got[i] = tok.Text
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokens(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestBasic_TokensAreTagged(t *testing.T) {
	toks, _ := NewBasic().Tokens("She quickly walked home.")
	for _, tok := range toks {
		if tok.Tag == "" {
			t.Errorf("token %q has no tag", tok.Text)
		}
	}
	if toks[1].Tag != "RB" {
		t.Errorf("quickly tagged %q, want RB", toks[1].Tag)
	}
}

func TestEnglishStopwords(t *testing.T) {
	sw := EnglishStopwords()
	if sw.Len() != 179 {
		t.Errorf("expected 179 stopwords, got %d", sw.Len())
	}
	for _, w := range []string{"the", "The", "and", "is", "don't", "ourselves"} {
		if !sw.Contains(w) {
			t.Errorf("expected %q to be a stopword", w)
		}
	}
	for _, w := range []string{"cat", "sunny", "humanize"} {
		if sw.Contains(w) {
			t.Errorf("did not expect %q to be a stopword", w)
		}
	}
}

func TestEnglishStopwords_Extra(t *testing.T) {
	sw := EnglishStopwords(" Kubernetes ", "")
	if !sw.Contains("kubernetes") {
		t.Error("extra word should be in the set")
	}
	if sw.Len() != 180 {
		t.Errorf("expected 180 stopwords, got %d", sw.Len())
	}
}

func TestStopwords_NilSafe(t *testing.T) {
	var sw *Stopwords
	if sw.Contains("the") {
		t.Error("nil set should contain nothing")
	}
}

func TestIsPunct(t *testing.T) {
	tests := map[string]bool{
		".":     true,
		",":     true,
		"...":   true,
		"''":    true,
		"":      true,
		"a":     false,
		"a.":    false,
		", so,": false,
		"$":     true,
	}
	for in, want := range tests {
		if got := IsPunct(in); got != want {
			t.Errorf("IsPunct(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew(t *testing.T) {
	for _, name := range []string{"prose", "basic", "", "BASIC"} {
		tk, err := New(name)
		if err != nil {
			t.Errorf("New(%q) error: %v", name, err)
		}
		if tk == nil {
			t.Errorf("New(%q) returned nil", name)
		}
	}

	_, err := New("spacy")
	var unknown *UnknownToolkitError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownToolkitError, got %v", err)
	}
	if unknown.Name != "spacy" {
		t.Errorf("unexpected name %q", unknown.Name)
	}
}

func TestProse_SentencesAndTokens(t *testing.T) {
	p := NewProse()

	sents, err := p.Sentences("The cat sat on the mat. It was a sunny day.")
	if err != nil {
		t.Fatalf("Sentences error: %v", err)
	}
	if len(sents) != 2 {
		t.Fatalf("expected 2 sentences, got %d: %q", len(sents), sents)
	}

	toks, err := p.Tokens("The cat sat on the mat.")
	if err != nil {
		t.Fatalf("Tokens error: %v", err)
	}
	if len(toks) < 6 {
		t.Fatalf("expected at least 6 tokens, got %d", len(toks))
	}
	if toks[0].Text != "The" {
		t.Errorf("first token = %q, want The", toks[0].Text)
	}
	if last := toks[len(toks)-1]; last.Text != "." {
		t.Errorf("last token = %q, want .", last.Text)
	}
}

func TestProse_SharesModel(t *testing.T) {
	p := NewProse()
	if p.model == nil {
		t.Fatal("expected tagger model to be loaded")
	}

	for _, s := range []string{"The cat sat on the mat.", "It was a sunny day."} {
		doc, err := p.document(s, prose.WithSegmentation(false), prose.WithExtraction(false))
		if err != nil {
			t.Fatalf("document(%q) error: %v", s, err)
		}
		if doc.Model != p.model {
			t.Errorf("document(%q) built its own model", s)
		}
	}

	first, err := p.Tokens("She quickly walked home.")
	if err != nil {
		t.Fatalf("Tokens error: %v", err)
	}
	second, err := p.Tokens("She quickly walked home.")
	if err != nil {
		t.Fatalf("Tokens error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("tags differ across calls: %v vs %v", first, second)
	}
}

func BenchmarkProse_Tokens(b *testing.B) {
	p := NewProse()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := p.Tokens("The cat sat on the mat."); err != nil {
			b.Fatal(err)
		}
	}
}
