package markdown

import (
	"reflect"
	"strings"
	"testing"
)

func TestParagraphs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"heading and paragraph", "# Title\n\nSome *bold* text\nacross lines.\n",
			[]string{"Title", "Some bold text across lines."}},
		{"inline code kept as text", "Use `fmt.Println` here.\n", []string{"Use fmt.Println here."}},
		{"fenced code dropped", "Before.\n\n```go\ncode()\n```\n\nAfter.\n", []string{"Before.", "After."}},
		{"link text kept", "Read [the docs](https://example.com) first.\n", []string{"Read the docs first."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Paragraphs([]byte(tt.input)); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Paragraphs(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestToPlainText_List(t *testing.T) {
	got := ToPlainText([]byte("Intro line.\n\n- first item\n- second item\n"))
	for _, want := range []string{"Intro line.", "first item", "second item"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in %q", want, got)
		}
	}
	if strings.Contains(got, "- ") {
		t.Errorf("list markers leaked: %q", got)
	}
}
