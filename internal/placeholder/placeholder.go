// Package placeholder shields content that must survive rewriting verbatim
// (code, markup, URLs, e-mail addresses, formatted numbers) by swapping it for
// inert word-like markers (xph0x, xph1x, ...) before the pipeline runs.
// Restore puts the originals back afterwards.
package placeholder

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	// fenced code blocks: ```...``` (non-greedy, may span lines)
	reFencedCode = regexp.MustCompile("(?s)```.*?```")

	// inline code spans: `...`
	reInlineCode = regexp.MustCompile("`[^`]+`")

	// HTML/XML tags: opening, closing, and self-closing
	reHTMLTag = regexp.MustCompile(`<[^>]+>`)

	reURL = regexp.MustCompile(`(?:https?://|www\.)[^\s<>"']*[^\s<>"'.,;:!?)\]]`)

	reEmail = regexp.MustCompile(`[\w.+-]+@[\w-]+(?:\.[\w-]+)+`)

	// numbers with internal separators: 3.14, 1,000,000, 12:30
	reNumber = regexp.MustCompile(`\b\d+(?:[.,:]\d+)+\b`)

	// Markers are matched case-insensitively: the rewriter may re-case the
	// first word of a sentence.
	rePlaceholder = regexp.MustCompile(`(?i)xph(\d+)x`)
)

// Marker returns the placeholder word for index i.
func Marker(i int) string {
	return fmt.Sprintf("xph%dx", i)
}

// Protect replaces protected spans with numbered markers in the order they
// are found. It returns the modified text and the captured originals so
// Restore can put them back.
func Protect(text string) (string, []string) {
	var originals []string

	replace := func(match string) string {
		id := Marker(len(originals))
		originals = append(originals, match)
		return id
	}

	// Order matters: code first so URLs inside code stay in the code span.
	for _, re := range []*regexp.Regexp{reFencedCode, reInlineCode, reHTMLTag, reURL, reEmail, reNumber} {
		text = re.ReplaceAllStringFunc(text, replace)
	}

	return text, originals
}

// Restore substitutes markers in text with the originals captured by
// Protect. Unknown indices leave the marker as-is.
func Restore(text string, originals []string) string {
	if len(originals) == 0 {
		return text
	}
	return rePlaceholder.ReplaceAllStringFunc(text, func(match string) string {
		sub := rePlaceholder.FindStringSubmatch(match)
		idx, err := strconv.Atoi(sub[1])
		if err != nil || idx < 0 || idx >= len(originals) {
			return match
		}
		return originals[idx]
	})
}

// Validate returns the indices of markers that no longer appear in text.
func Validate(text string, originals []string) []int {
	found := make(map[int]struct{}, len(originals))
	for _, sub := range rePlaceholder.FindAllStringSubmatch(text, -1) {
		if idx, err := strconv.Atoi(sub[1]); err == nil {
			found[idx] = struct{}{}
		}
	}

	var missing []int
	for i := range originals {
		if _, ok := found[i]; !ok {
			missing = append(missing, i)
		}
	}
	return missing
}
