// Package detector identifies the natural language of a text with lingua-go.
package detector

import (
	"fmt"
	"strings"

	lingua "github.com/pemistahl/lingua-go"
)

// Detector wraps a lingua language detector. Building one loads language
// models lazily; reuse the instance.
type Detector struct {
	detector lingua.LanguageDetector
}

// New builds a detector restricted to the given ISO 639-1 codes. With fewer
// than two codes every supported language is considered.
func New(isoCodes ...string) (*Detector, error) {
	builder := lingua.NewLanguageDetectorBuilder()

	codes := make([]lingua.IsoCode639_1, 0, len(isoCodes))
	for _, c := range isoCodes {
		code := lingua.GetIsoCode639_1FromValue(strings.TrimSpace(c))
		if code == lingua.UnknownIsoCode639_1 {
			return nil, fmt.Errorf("unknown ISO 639-1 language code %q", c)
		}
		codes = append(codes, code)
	}

	var detector lingua.LanguageDetector
	if len(codes) < 2 {
		detector = builder.FromAllLanguages().Build()
	} else {
		detector = builder.FromIsoCodes639_1(codes...).Build()
	}
	return &Detector{detector: detector}, nil
}

func (d *Detector) Detect(text string) (lingua.Language, bool) {
	if strings.TrimSpace(text) == "" {
		return lingua.Unknown, false
	}
	return d.detector.DetectLanguageOf(text)
}

// DetectISO returns the lower-case ISO 639-1 code of text's language.
func (d *Detector) DetectISO(text string) (string, bool) {
	lang, ok := d.Detect(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}
