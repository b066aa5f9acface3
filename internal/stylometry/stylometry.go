// Package stylometry measures surface signals that make prose read as
// machine-written: uniform sentence lengths, cliché vocabulary and a
// trigram profile dominated by stock phrases.
package stylometry

import (
	_ "embed"
	"encoding/json"
	"math"
	"regexp"
	"strings"
	"sync"
)

//go:embed cliches.json
var clichesJSON []byte

// Thresholds above or below which a Report raises a flag.
const (
	MonotoneSD         = 4.0
	MaxClicheDensity   = 0.015
	LowOriginalityRate = 0.90
)

var (
	sentenceEnd = regexp.MustCompile(`[.!?]+`)
	wordPattern = regexp.MustCompile(`[A-Za-z']+(?:-[A-Za-z']+)*`)
)

// A compact subset of common trigrams used as a proxy for repetitive language.
var commonTrigrams = map[string]struct{}{
	"one of the":       {},
	"as well as":       {},
	"out of the":       {},
	"it was a":         {},
	"to be a":          {},
	"in the same":      {},
	"at the same":      {},
	"was one of":       {},
	"this is a":        {},
	"there was a":      {},
	"in order to":      {},
	"the end of":       {},
	"a lot of":         {},
	"the rest of":      {},
	"it is a":          {},
	"for the first":    {},
	"the beginning of": {},
	"it is important":  {},
	"is important to":  {},
	"plays a crucial":  {},
	"a crucial role":   {},
}

var cliches = sync.OnceValue(func() map[string]struct{} {
	var raw []string
	_ = json.Unmarshal(clichesJSON, &raw)
	set := make(map[string]struct{}, len(raw))
	for _, w := range raw {
		set[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	return set
})

// Report summarizes the stylometric profile of a text.
type Report struct {
	Words              int      `json:"words"`
	Sentences          int      `json:"sentences"`
	MeanSentenceLength float64  `json:"mean_sentence_length"`
	SentenceLengthSD   float64  `json:"sentence_length_sd"`
	Monotone           bool     `json:"monotone"`
	ClicheDensity      float64  `json:"cliche_density"`
	TrigramCommonness  float64  `json:"trigram_commonness"`
	LowOriginality     bool     `json:"low_originality"`
	Flags              []string `json:"flags"`
}

// Analyze profiles text.
func Analyze(text string) Report {
	words := tokenize(text)
	sd, mean, n := sentenceLengthStats(text)
	density := clicheDensity(words)
	commonness := trigramCommonness(words)

	r := Report{
		Words:              len(words),
		Sentences:          n,
		MeanSentenceLength: mean,
		SentenceLengthSD:   sd,
		Monotone:           n > 1 && sd < MonotoneSD,
		ClicheDensity:      density,
		TrigramCommonness:  commonness,
		LowOriginality:     commonness >= LowOriginalityRate,
		Flags:              make([]string, 0, 3),
	}
	if r.Monotone {
		r.Flags = append(r.Flags, "Monotone: sentence-length variability is unusually low")
	}
	if density > MaxClicheDensity {
		r.Flags = append(r.Flags, "High cliché vocabulary density")
	}
	if r.LowOriginality {
		r.Flags = append(r.Flags, "Low Originality: trigram profile is overly common")
	}
	return r
}

// Better reports whether a reads as more varied than b: higher
// sentence-length deviation wins, then lower cliché density, then fewer
// flags.
func Better(a, b Report) bool {
	const eps = 1e-9
	if math.Abs(a.SentenceLengthSD-b.SentenceLengthSD) > eps {
		return a.SentenceLengthSD > b.SentenceLengthSD
	}
	if math.Abs(a.ClicheDensity-b.ClicheDensity) > eps {
		return a.ClicheDensity < b.ClicheDensity
	}
	return len(a.Flags) < len(b.Flags)
}

func clicheDensity(words []string) float64 {
	if len(words) == 0 {
		return 0
	}
	set := cliches()
	matches := 0
	for _, w := range words {
		if _, ok := set[w]; ok {
			matches++
		}
	}
	return float64(matches) / float64(len(words))
}

func sentenceLengthStats(text string) (sd, mean float64, n int) {
	sentences := sentenceEnd.Split(text, -1)
	lengths := make([]float64, 0, len(sentences))
	for _, s := range sentences {
		if count := float64(len(tokenize(s))); count > 0 {
			lengths = append(lengths, count)
		}
	}
	if len(lengths) == 0 {
		return 0, 0, 0
	}

	total := 0.0
	for _, l := range lengths {
		total += l
	}
	mean = total / float64(len(lengths))
	if len(lengths) == 1 {
		return 0, mean, 1
	}

	var variance float64
	for _, l := range lengths {
		d := l - mean
		variance += d * d
	}
	variance /= float64(len(lengths))
	return math.Sqrt(variance), mean, len(lengths)
}

func trigramCommonness(words []string) float64 {
	if len(words) < 3 {
		return 0
	}
	common := 0
	total := len(words) - 2
	for i := 0; i < total; i++ {
		if _, ok := commonTrigrams[words[i]+" "+words[i+1]+" "+words[i+2]]; ok {
			common++
		}
	}
	return float64(common) / float64(total)
}

func tokenize(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}
