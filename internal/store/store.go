// Package store persists the CLI's bookkeeping in SQLite: the run history,
// user-protected terms, an imported WordNet lexicon and CSV checkpoints.
// The rewrite pipeline never reads run history back.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite"

	"github.com/valpere/humanizer/internal"
)

// ErrNotFound is returned when a record with the requested ID does not exist.
var ErrNotFound = errors.New("not found")

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		source_text TEXT NOT NULL,
		result_text TEXT NOT NULL,
		seed INTEGER NOT NULL,
		toolkit TEXT NOT NULL,
		original_words INTEGER NOT NULL,
		result_words INTEGER NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- protected_terms are words the rewriter must never substitute
	CREATE TABLE IF NOT EXISTS protected_terms (
		id TEXT PRIMARY KEY,
		term TEXT NOT NULL UNIQUE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- lexicon_senses holds one row per (word, synset) pair of an imported WordNet
	CREATE TABLE IF NOT EXISTS lexicon_senses (
		word_key TEXT NOT NULL,
		word TEXT NOT NULL,
		pos TEXT NOT NULL,
		synset TEXT NOT NULL,
		ord INTEGER NOT NULL,
		PRIMARY KEY (word_key, synset)
	);

	-- csv_checkpoints tracks progress of CSV rewrite jobs for resume support
	CREATE TABLE IF NOT EXISTS csv_checkpoints (
		id TEXT PRIMARY KEY,
		input_file TEXT NOT NULL,
		output_file TEXT NOT NULL,
		seed INTEGER NOT NULL,
		status TEXT DEFAULT 'running',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- csv_checkpoint_cells stores per-cell rewritten results
	CREATE TABLE IF NOT EXISTS csv_checkpoint_cells (
		checkpoint_id TEXT NOT NULL,
		row_idx INTEGER NOT NULL,
		col_idx INTEGER NOT NULL,
		result_text TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (checkpoint_id, row_idx, col_idx),
		FOREIGN KEY (checkpoint_id) REFERENCES csv_checkpoints(id)
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	CREATE INDEX IF NOT EXISTS idx_lexicon_synset ON lexicon_senses(synset);
	CREATE INDEX IF NOT EXISTS idx_checkpoint_cells ON csv_checkpoint_cells(checkpoint_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun stores a run. Missing IDs and timestamps are filled in; the ID is
// returned.
func (s *Store) SaveRun(ctx context.Context, run internal.RunRecord) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.Timestamp.IsZero() {
		run.Timestamp = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, source, source_text, result_text, seed, toolkit, original_words, result_words, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Source, normalizeText(run.SourceText), run.ResultText, run.Seed, run.Toolkit,
		run.OriginalWords, run.ResultWords, run.Timestamp)
	if err != nil {
		return "", fmt.Errorf("save run: %w", err)
	}
	return run.ID, nil
}

const runColumns = `id, source, source_text, result_text, seed, toolkit, original_words, result_words, created_at`

func scanRun(sc interface{ Scan(...any) error }) (internal.RunRecord, error) {
	var r internal.RunRecord
	err := sc.Scan(&r.ID, &r.Source, &r.SourceText, &r.ResultText, &r.Seed, &r.Toolkit,
		&r.OriginalWords, &r.ResultWords, &r.Timestamp)
	return r, err
}

// GetRun returns the run with the given ID.
func (s *Store) GetRun(ctx context.Context, id string) (*internal.RunRecord, error) {
	r, err := scanRun(s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListRuns returns runs newest first. limit <= 0 returns all runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]internal.RunRecord, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY created_at DESC, id`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []internal.RunRecord
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// DeleteRun permanently removes a run by ID.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	return nil
}

// ClearRuns removes every run and returns how many were deleted.
func (s *Store) ClearRuns(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Stats summarises everything the store holds.
type Stats struct {
	Runs           int
	OriginalWords  int
	ResultWords    int
	ProtectedTerms int
	LexiconSenses  int
	Checkpoints    int
}

func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM runs),
			(SELECT COALESCE(SUM(original_words), 0) FROM runs),
			(SELECT COALESCE(SUM(result_words), 0) FROM runs),
			(SELECT COUNT(*) FROM protected_terms),
			(SELECT COUNT(*) FROM lexicon_senses),
			(SELECT COUNT(*) FROM csv_checkpoints)`).Scan(
		&stats.Runs,
		&stats.OriginalWords,
		&stats.ResultWords,
		&stats.ProtectedTerms,
		&stats.LexiconSenses,
		&stats.Checkpoints,
	)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// RunMatch is a run whose source resembles a query text.
type RunMatch struct {
	Run        internal.RunRecord
	Similarity float64
}

// FindSimilarRuns returns runs whose normalised source text has at least
// threshold similarity (0-1) to text, best match first. Texts longer than
// 1 000 runes are not compared to keep the edit distance affordable.
func (s *Store) FindSimilarRuns(ctx context.Context, text string, threshold float64) ([]RunMatch, error) {
	if threshold <= 0 {
		threshold = 1
	}

	normalized := normalizeText(text)
	const maxFuzzyRunes = 1000
	if len([]rune(normalized)) > maxFuzzyRunes {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `SELECT `+runColumns+` FROM runs`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []RunMatch
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}

		// Quick length pre-filter: if the length difference alone makes it
		// impossible to reach the threshold, skip the expensive edit distance.
		ls, lr := len([]rune(normalized)), len([]rune(r.SourceText))
		maxL := max(ls, lr)
		diff := ls - lr
		if diff < 0 {
			diff = -diff
		}
		if maxL > 0 && 1.0-float64(diff)/float64(maxL) < threshold {
			continue
		}

		if score := stringSimilarity(normalized, r.SourceText); score >= threshold {
			matches = append(matches, RunMatch{Run: r, Similarity: score})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	return matches, nil
}

// normalizeText trims whitespace and applies Unicode NFC normalization
// for consistent comparison.
func normalizeText(text string) string {
	return norm.NFC.String(strings.TrimSpace(text))
}

// levenshtein returns the edit distance between two strings (rune-aware).
// Uses a space-optimized two-row DP implementation.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			if ra[i-1] == rb[j-1] {
				curr[j] = prev[j-1]
			} else {
				curr[j] = min(prev[j], prev[j-1], curr[j-1]) + 1
			}
		}
		prev, curr = curr, prev
	}

	return prev[lb]
}

// stringSimilarity returns a similarity score in [0, 1] (1 = identical).
func stringSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := max(len([]rune(a)), len([]rune(b)))
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein(a, b))/float64(maxLen)
}
