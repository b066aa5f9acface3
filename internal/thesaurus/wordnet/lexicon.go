// Package wordnet loads Open English WordNet GWN-LMF JSON documents into an
// in-memory lexicon that answers "which lemmas share a synset with this word".
package wordnet

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed data/starter.json
var starterJSON []byte

// Sense links one written form to one synset.
type Sense struct {
	Word     string
	POS      string
	SynsetID string
}

// Stats holds lexicon statistics for logging.
type Stats struct {
	Entries int
	Synsets int
	Senses  int
}

// GWN-LMF JSON internal types for deserialization.

type gwnDocument struct {
	Graph []gwnLexicon `json:"@graph"`
}

type gwnLexicon struct {
	Entries []gwnEntry  `json:"entry"`
	Synsets []gwnSynset `json:"synset"`
}

type gwnEntry struct {
	ID    string     `json:"@id"`
	Lemma gwnLemma   `json:"lemma"`
	Sense []gwnSense `json:"sense"`
}

type gwnLemma struct {
	WrittenForm  string `json:"writtenForm"`
	PartOfSpeech string `json:"partOfSpeech"`
}

type gwnSense struct {
	ID     string `json:"@id"`
	Synset string `json:"synset"`
}

type gwnSynset struct {
	ID           string `json:"@id"`
	PartOfSpeech string `json:"partOfSpeech"`
}

// Lexicon is an immutable synset index. Lookups are case-insensitive.
type Lexicon struct {
	senses      []Sense
	synsetWords map[string][]string
	wordSenses  map[string][]int
	stats       Stats
}

// Parse decodes a GWN-LMF JSON document.
func Parse(r io.Reader) (*Lexicon, error) {
	var doc gwnDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}

	lex := &Lexicon{
		synsetWords: make(map[string][]string),
		wordSenses:  make(map[string][]int),
	}

	for _, g := range doc.Graph {
		lex.stats.Entries += len(g.Entries)
		lex.stats.Synsets += len(g.Synsets)

		synsetPOS := make(map[string]string, len(g.Synsets))
		for _, s := range g.Synsets {
			synsetPOS[s.ID] = s.PartOfSpeech
		}

		for _, entry := range g.Entries {
			word := strings.TrimSpace(entry.Lemma.WrittenForm)
			if word == "" {
				continue
			}
			for _, sense := range entry.Sense {
				if sense.Synset == "" {
					continue
				}
				pos := entry.Lemma.PartOfSpeech
				if pos == "" {
					pos = synsetPOS[sense.Synset]
				}
				lex.add(Sense{Word: word, POS: pos, SynsetID: sense.Synset})
			}
		}
	}

	lex.stats.Senses = len(lex.senses)
	return lex, nil
}

func (l *Lexicon) add(s Sense) {
	key := strings.ToLower(s.Word)
	for _, i := range l.wordSenses[key] {
		if l.senses[i].SynsetID == s.SynsetID {
			return
		}
	}

	l.senses = append(l.senses, s)
	idx := len(l.senses) - 1
	l.wordSenses[key] = append(l.wordSenses[key], idx)
	l.synsetWords[s.SynsetID] = append(l.synsetWords[s.SynsetID], s.Word)
}

// LoadFile parses the GWN-LMF JSON file at path.
func LoadFile(path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Starter returns the small general-purpose lexicon compiled into the binary.
func Starter() (*Lexicon, error) {
	return Parse(bytes.NewReader(starterJSON))
}

// Lemmas returns every written form sharing a synset with word, across all of
// word's senses, in entry order. The word itself is included.
func (l *Lexicon) Lemmas(word string) ([]string, error) {
	return l.LemmasPOS(word, ""), nil
}

// LemmasPOS is Lemmas restricted to senses whose part of speech is pos
// ("n", "v", "a", "r", "s"). An empty pos matches every sense; "a" also
// matches satellite adjectives ("s").
func (l *Lexicon) LemmasPOS(word, pos string) []string {
	var out []string
	for _, i := range l.wordSenses[strings.ToLower(strings.TrimSpace(word))] {
		s := l.senses[i]
		if !posMatches(pos, s.POS) {
			continue
		}
		out = append(out, l.synsetWords[s.SynsetID]...)
	}
	return out
}

func posMatches(want, have string) bool {
	switch want {
	case "":
		return true
	case "a":
		return have == "a" || have == "s"
	default:
		return want == have
	}
}

// Senses returns every (word, synset) pair in load order.
func (l *Lexicon) Senses() []Sense {
	out := make([]Sense, len(l.senses))
	copy(out, l.senses)
	return out
}

// Stats reports how much of the document was loaded.
func (l *Lexicon) Stats() Stats {
	return l.stats
}
