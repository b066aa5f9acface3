package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/valpere/humanizer/internal"
	"github.com/valpere/humanizer/internal/thesaurus/wordnet"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_New(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer s.Close()

	if s == nil {
		t.Fatal("expected non-nil store")
	}
}

func TestStore_New_InvalidPath(t *testing.T) {
	_, err := New("/nonexistent/path/test.db")
	if err == nil {
		t.Error("expected error for invalid path")
	}
}

func TestStore_SaveAndGetRun(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.SaveRun(ctx, internal.RunRecord{
		Source:        "notes.txt",
		SourceText:    "  The cat sat on the mat.  ",
		ResultText:    "The cat actually sat on the mat.",
		Seed:          42,
		Toolkit:       "prose",
		OriginalWords: 6,
		ResultWords:   7,
	})
	if err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected generated ID")
	}

	run, err := s.GetRun(ctx, id)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if run.SourceText != "The cat sat on the mat." {
		t.Errorf("source text not normalized: %q", run.SourceText)
	}
	if run.Seed != 42 || run.Toolkit != "prose" {
		t.Errorf("unexpected run: %+v", run)
	}
	if run.OriginalWords != 6 || run.ResultWords != 7 {
		t.Errorf("unexpected word counts: %d -> %d", run.OriginalWords, run.ResultWords)
	}
	if run.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}
}

func TestStore_GetRun_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetRun(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_ListRuns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, text := range []string{"first", "second", "third"} {
		_, err := s.SaveRun(ctx, internal.RunRecord{
			ID:         text,
			SourceText: text,
			ResultText: text,
			Timestamp:  base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}
	}

	runs, err := s.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	if runs[0].ID != "third" || runs[2].ID != "first" {
		t.Errorf("expected newest first, got %s..%s", runs[0].ID, runs[2].ID)
	}

	limited, err := s.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("expected 2 runs, got %d", len(limited))
	}
}

func TestStore_DeleteRun(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, _ := s.SaveRun(ctx, internal.RunRecord{SourceText: "a", ResultText: "b"})

	if err := s.DeleteRun(ctx, id); err != nil {
		t.Fatalf("DeleteRun failed: %v", err)
	}
	if _, err := s.GetRun(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected run to be gone, got %v", err)
	}
	if err := s.DeleteRun(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestStore_ClearRuns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.SaveRun(ctx, internal.RunRecord{SourceText: "one", ResultText: "1"})
	s.SaveRun(ctx, internal.RunRecord{SourceText: "two", ResultText: "2"})

	n, err := s.ClearRuns(ctx)
	if err != nil {
		t.Fatalf("ClearRuns failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 deleted, got %d", n)
	}

	runs, _ := s.ListRuns(ctx, 0)
	if len(runs) != 0 {
		t.Errorf("expected 0 runs after clear, got %d", len(runs))
	}
}

func TestStore_Stats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.SaveRun(ctx, internal.RunRecord{SourceText: "a b", ResultText: "a b c", OriginalWords: 2, ResultWords: 3})
	s.SaveRun(ctx, internal.RunRecord{SourceText: "d e f", ResultText: "d e f", OriginalWords: 3, ResultWords: 3})
	s.AddProtectedTerm(ctx, "Kubernetes")
	s.ImportSenses(ctx, []wordnet.Sense{{Word: "big", POS: "a", SynsetID: "s1"}})
	s.CreateCSVCheckpoint(ctx, "in.csv", "out.csv", 1)

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	want := Stats{Runs: 2, OriginalWords: 5, ResultWords: 6, ProtectedTerms: 1, LexiconSenses: 1, Checkpoints: 1}
	if *stats != want {
		t.Errorf("Stats = %+v, want %+v", *stats, want)
	}
}

func TestStore_FindSimilarRuns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.SaveRun(ctx, internal.RunRecord{ID: "near", SourceText: "The cat sat on the mat.", ResultText: "x"})
	s.SaveRun(ctx, internal.RunRecord{ID: "exact", SourceText: "The cat sat on a mat.", ResultText: "y"})
	s.SaveRun(ctx, internal.RunRecord{ID: "far", SourceText: "Completely unrelated sentence here.", ResultText: "z"})

	matches, err := s.FindSimilarRuns(ctx, "The cat sat on a mat.", 0.8)
	if err != nil {
		t.Fatalf("FindSimilarRuns failed: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Run.ID != "exact" || matches[0].Similarity != 1.0 {
		t.Errorf("expected exact match first, got %s (%.2f)", matches[0].Run.ID, matches[0].Similarity)
	}
	if matches[1].Run.ID != "near" {
		t.Errorf("expected near match second, got %s", matches[1].Run.ID)
	}
}

func TestStore_ProtectedTerms(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, term := range []string{"Kubernetes", " golang ", "kubernetes"} {
		if err := s.AddProtectedTerm(ctx, term); err != nil {
			t.Fatalf("AddProtectedTerm(%q) failed: %v", term, err)
		}
	}
	if err := s.AddProtectedTerm(ctx, "   "); err == nil {
		t.Error("expected error for blank term")
	}

	words, err := s.ProtectedWords(ctx)
	if err != nil {
		t.Fatalf("ProtectedWords failed: %v", err)
	}
	if !reflect.DeepEqual(words, []string{"golang", "kubernetes"}) {
		t.Errorf("ProtectedWords = %q", words)
	}

	if err := s.DeleteProtectedTerm(ctx, "Golang"); err != nil {
		t.Fatalf("DeleteProtectedTerm by text failed: %v", err)
	}
	terms, _ := s.ListProtectedTerms(ctx)
	if len(terms) != 1 {
		t.Fatalf("expected 1 term, got %d", len(terms))
	}
	if err := s.DeleteProtectedTerm(ctx, terms[0].ID); err != nil {
		t.Fatalf("DeleteProtectedTerm by ID failed: %v", err)
	}
	if err := s.DeleteProtectedTerm(ctx, "nothing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_Lexicon(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	senses := []wordnet.Sense{
		{Word: "big", POS: "a", SynsetID: "s1"},
		{Word: "large", POS: "a", SynsetID: "s1"},
		{Word: "Big", POS: "a", SynsetID: "s1"},
		{Word: "big", POS: "a", SynsetID: "s2"},
		{Word: "important", POS: "a", SynsetID: "s2"},
		{Word: "", POS: "n", SynsetID: "s3"},
	}
	n, err := s.ImportSenses(ctx, senses)
	if err != nil {
		t.Fatalf("ImportSenses failed: %v", err)
	}
	if n != 4 {
		t.Errorf("expected 4 rows written, got %d", n)
	}

	got, err := s.Lexicon().Lemmas("BIG")
	if err != nil {
		t.Fatalf("Lemmas failed: %v", err)
	}
	want := []string{"big", "large", "big", "important"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lemmas(BIG) = %q, want %q", got, want)
	}

	if got, _ := s.Lexicon().Lemmas("unknown"); len(got) != 0 {
		t.Errorf("expected no lemmas, got %q", got)
	}

	stats, err := s.LexiconStats(ctx)
	if err != nil {
		t.Fatalf("LexiconStats failed: %v", err)
	}
	if stats != (wordnet.Stats{Entries: 3, Synsets: 2, Senses: 4}) {
		t.Errorf("unexpected stats %+v", stats)
	}

	cleared, err := s.ClearLexicon(ctx)
	if err != nil || cleared != 4 {
		t.Errorf("ClearLexicon = %d, %v", cleared, err)
	}
}

func TestStore_ImportStarterLexicon(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	lex, err := wordnet.Starter()
	if err != nil {
		t.Fatalf("Starter failed: %v", err)
	}
	if _, err := s.ImportSenses(ctx, lex.Senses()); err != nil {
		t.Fatalf("ImportSenses failed: %v", err)
	}

	for _, sense := range lex.Senses()[:10] {
		want, _ := lex.Lemmas(sense.Word)
		got, err := s.Lexicon().Lemmas(sense.Word)
		if err != nil {
			t.Fatalf("Lemmas(%q) failed: %v", sense.Word, err)
		}
		if len(got) != len(want) {
			t.Errorf("Lemmas(%q): stored %d lemmas, in-memory %d", sense.Word, len(got), len(want))
		}
	}
}

func TestStore_CSVCheckpoint(t *testing.T) {
	s := newTestStore(t)

	// Create checkpoint
	cpID, err := s.CreateCSVCheckpoint(context.Background(), "input.csv", "output.csv", 7)
	if err != nil {
		t.Fatalf("CreateCSVCheckpoint failed: %v", err)
	}

	cp, err := s.GetCSVCheckpoint(context.Background(), cpID)
	if err != nil {
		t.Fatalf("GetCSVCheckpoint failed: %v", err)
	}
	if cp.InputFile != "input.csv" || cp.Seed != 7 {
		t.Errorf("unexpected checkpoint %+v", cp)
	}
	if cp.Status != "running" {
		t.Errorf("expected running status, got %q", cp.Status)
	}

	if err := s.SaveCSVCell(context.Background(), cpID, 0, 1, "Rewritten cell"); err != nil {
		t.Errorf("SaveCSVCell failed: %v", err)
	}

	cells, err := s.GetCSVCells(context.Background(), cpID)
	if err != nil {
		t.Fatalf("GetCSVCells failed: %v", err)
	}
	if cells[CellKey(0, 1)] != "Rewritten cell" {
		t.Errorf("expected 'Rewritten cell', got %q", cells["0:1"])
	}

	if err := s.CompleteCSVCheckpoint(context.Background(), cpID); err != nil {
		t.Errorf("CompleteCSVCheckpoint failed: %v", err)
	}

	cp, err = s.GetCSVCheckpoint(context.Background(), cpID)
	if err != nil {
		t.Fatalf("GetCSVCheckpoint failed: %v", err)
	}
	if cp.Status != "completed" {
		t.Errorf("expected completed status, got %q", cp.Status)
	}

	if _, err := s.GetCSVCheckpoint(context.Background(), "cp_missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"  Hello  ", "Hello"},
		{"Cafe\u0301", "Caf\u00e9"}, // NFC normalization
		{"\t\nHello\t\n", "Hello"},
		{"", ""},
	}

	for _, tt := range tests {
		result := normalizeText(tt.input)
		if result != tt.expected {
			t.Errorf("normalizeText(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestStringSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"", "", 1},
		{"abc", "abc", 1},
		{"abc", "abd", 1 - 1.0/3},
		{"kitten", "sitting", 1 - 3.0/7},
	}
	for _, tt := range tests {
		if got := stringSimilarity(tt.a, tt.b); got != tt.want {
			t.Errorf("stringSimilarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
