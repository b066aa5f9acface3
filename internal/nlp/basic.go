package nlp

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	basicTokenRe = regexp.MustCompile(`[\p{L}\p{N}]+(?:['’\-][\p{L}\p{N}]+)*|\.{2,}|[^\p{L}\p{N}\s]`)

	// Abbreviations that end with a period but do not end a sentence.
	abbreviations = map[string]struct{}{
		"mr": {}, "mrs": {}, "ms": {}, "dr": {}, "prof": {}, "sr": {}, "jr": {},
		"st": {}, "vs": {}, "etc": {}, "e.g": {}, "i.e": {}, "inc": {}, "ltd": {},
		"co": {}, "no": {}, "fig": {}, "approx": {}, "dept": {}, "est": {},
	}
)

// Basic is a rule-based Toolkit with no model files. Sentences end at
// terminal punctuation followed by whitespace; tags come from suffix rules.
type Basic struct{}

// NewBasic returns the rule-based toolkit.
func NewBasic() *Basic {
	return &Basic{}
}

func (b *Basic) Name() string {
	return "basic"
}

func (b *Basic) Sentences(text string) ([]string, error) {
	var out []string
	start := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r != '.' && r != '!' && r != '?' {
			i += size
			continue
		}

		end := i + size
		for end < len(text) {
			next, n := utf8.DecodeRuneInString(text[end:])
			if next == '.' || next == '!' || next == '?' || next == '"' || next == '\'' ||
				next == ')' || next == ']' || next == '”' || next == '’' {
				end += n
				continue
			}
			break
		}

		if end < len(text) {
			next, _ := utf8.DecodeRuneInString(text[end:])
			if !unicode.IsSpace(next) || (r == '.' && isAbbreviation(text[start:i])) {
				i = end
				continue
			}
		}

		if s := strings.TrimSpace(text[start:end]); s != "" {
			out = append(out, s)
		}
		start = end
		i = end
	}

	if s := strings.TrimSpace(text[start:]); s != "" {
		out = append(out, s)
	}
	return out, nil
}

// isAbbreviation reports whether the last word of prefix is a known
// abbreviation or a single-letter initial.
func isAbbreviation(prefix string) bool {
	fields := strings.Fields(prefix)
	if len(fields) == 0 {
		return false
	}
	last := strings.ToLower(strings.TrimLeft(fields[len(fields)-1], "(\"'“‘"))
	if utf8.RuneCountInString(last) == 1 && unicode.IsLetter([]rune(last)[0]) {
		return true
	}
	_, ok := abbreviations[last]
	return ok
}

func (b *Basic) Tokens(sentence string) ([]Token, error) {
	matches := basicTokenRe.FindAllString(sentence, -1)
	out := make([]Token, 0, len(matches))
	for _, m := range matches {
		out = append(out, Token{Text: m, Tag: suffixTag(m)})
	}
	return out, nil
}

// suffixTag guesses a Penn tag from the token's shape.
func suffixTag(tok string) string {
	lower := strings.ToLower(tok)
	switch {
	case IsPunct(tok):
		return "."
	case isNumber(tok):
		return "CD"
	case strings.HasSuffix(lower, "ly"):
		return "RB"
	case strings.HasSuffix(lower, "ing"):
		return "VBG"
	case strings.HasSuffix(lower, "ed"):
		return "VBD"
	case strings.HasSuffix(lower, "ous"), strings.HasSuffix(lower, "ful"),
		strings.HasSuffix(lower, "ive"), strings.HasSuffix(lower, "able"):
		return "JJ"
	default:
		return "NN"
	}
}

func isNumber(tok string) bool {
	for _, r := range tok {
		if !unicode.IsDigit(r) && r != '.' && r != ',' {
			return false
		}
	}
	return tok != ""
}
