// Package chunker splits long inputs into pieces the rewrite pipeline can
// handle one at a time: paragraphs, and bounded chunks that end on a
// paragraph, sentence or word boundary.
package chunker

import (
	"regexp"
	"strings"
	"unicode"
)

var paragraphBreakRe = regexp.MustCompile(`\r?\n[ \t]*\r?\n`)

// Paragraphs splits text at blank lines. Each paragraph is trimmed; empty
// paragraphs are dropped.
func Paragraphs(text string) []string {
	var out []string
	for _, p := range paragraphBreakRe.Split(text, -1) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Chunk splits text into trimmed pieces of at most maxChars runes. Splits
// are attempted, in order of preference, at:
//  1. paragraph boundaries (a blank line)
//  2. sentence-ending punctuation (. ! ?) followed by whitespace
//  3. whitespace
//  4. a hard cut at maxChars
//
// If text fits, or maxChars <= 0, the trimmed text is the only chunk.
// Blank text yields no chunks.
func Chunk(text string, maxChars int) []string {
	remaining := []rune(strings.TrimSpace(text))
	if len(remaining) == 0 {
		return nil
	}
	if maxChars <= 0 || len(remaining) <= maxChars {
		return []string{string(remaining)}
	}

	var chunks []string
	for len(remaining) > maxChars {
		split := findSplit(remaining, maxChars)
		if chunk := strings.TrimSpace(string(remaining[:split])); chunk != "" {
			chunks = append(chunks, chunk)
		}
		remaining = trimLeftSpace(remaining[split:])
	}
	if len(remaining) > 0 {
		chunks = append(chunks, strings.TrimSpace(string(remaining)))
	}
	return chunks
}

// findSplit returns the rune index to cut text at, searching backwards from
// maxChars for the best boundary.
func findSplit(text []rune, maxChars int) int {
	candidate := text[:maxChars]

	// 1. blank line
	for i := len(candidate) - 1; i > 0; i-- {
		if candidate[i] == '\n' && blankLineBefore(candidate[:i]) {
			return i + 1
		}
	}

	// 2. sentence end followed by whitespace
	for i := maxChars - 1; i > 0; i-- {
		r := text[i]
		if (r == '.' || r == '!' || r == '?') && unicode.IsSpace(text[i+1]) {
			return i + 1
		}
	}

	// 3. whitespace
	for i := len(candidate) - 1; i > 0; i-- {
		if unicode.IsSpace(candidate[i]) {
			return i
		}
	}

	// 4. hard cut
	return maxChars
}

// blankLineBefore reports whether the runes before a newline end in another
// newline followed only by horizontal whitespace.
func blankLineBefore(prefix []rune) bool {
	for i := len(prefix) - 1; i >= 0; i-- {
		switch prefix[i] {
		case '\n':
			return true
		case ' ', '\t', '\r':
			continue
		default:
			return false
		}
	}
	return false
}

func trimLeftSpace(r []rune) []rune {
	for len(r) > 0 && unicode.IsSpace(r[0]) {
		r = r[1:]
	}
	return r
}
