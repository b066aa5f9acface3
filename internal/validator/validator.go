// Package validator checks that input text is written in the language the
// rewriter supports.
package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/valpere/humanizer/internal/detector"
)

// minValidationLength is the minimum rune count required to attempt language detection.
// Shorter texts produce unreliable results and are accepted without validation.
const minValidationLength = 20

// MismatchError reports text detected in another language.
type MismatchError struct {
	Expected string
	Detected string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("expected %s text but detected %s", e.Expected, e.Detected)
}

// Validator checks that text is written in one expected language.
type Validator struct {
	det  *detector.Detector
	lang string
}

// New returns a Validator expecting lang (an ISO 639-1 code). An empty lang
// accepts every text.
func New(det *detector.Detector, lang string) *Validator {
	return &Validator{det: det, lang: strings.ToLower(strings.TrimSpace(lang))}
}

// Check returns a *MismatchError when text appears to be in a language other
// than the expected one. Blank text, short text and text whose language is
// ambiguous pass.
func (v *Validator) Check(text string) error {
	if v.lang == "" || v.det == nil {
		return nil
	}

	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < minValidationLength {
		return nil
	}

	detected, ok := v.det.DetectISO(text)
	if !ok {
		return nil
	}
	if detected != v.lang {
		return &MismatchError{Expected: v.lang, Detected: detected}
	}
	return nil
}
