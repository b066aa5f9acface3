// Package postprocess normalizes rewritten text before it leaves a pipeline
// stage: whitespace runs collapse to one space, whitespace in front of
// clause and sentence punctuation is removed, and the result is trimmed.
package postprocess

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Tidy normalizes text in three phases and returns the trimmed result:
//  1. Unicode NFC composition
//  2. Whitespace collapsing
//  3. Punctuation tightening
func Tidy(text string) string {
	text = norm.NFC.String(text)
	text = CollapseSpaces(text)
	text = TightenPunctuation(text)
	return strings.TrimSpace(text)
}

// --- Phase 2: whitespace ---

var spaceRunRe = regexp.MustCompile(`\s+`)

// CollapseSpaces replaces every run of whitespace (including newlines) with a
// single space. It does not trim.
func CollapseSpaces(text string) string {
	return spaceRunRe.ReplaceAllString(text, " ")
}

// --- Phase 3: punctuation ---

// spaceBeforePunctRe matches whitespace directly in front of , . ! ? ; :
var spaceBeforePunctRe = regexp.MustCompile(`\s+([,.!?;:])`)

// TightenPunctuation removes whitespace immediately preceding a comma, period,
// exclamation mark, question mark, colon or semicolon.
func TightenPunctuation(text string) string {
	return spaceBeforePunctRe.ReplaceAllString(text, "$1")
}

// Paragraph keeps paragraph breaks: each paragraph is tidied on its own and
// the paragraphs are rejoined with a blank line. Empty paragraphs are dropped.
func Paragraph(paragraphs []string) string {
	out := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		if p = Tidy(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n\n")
}
