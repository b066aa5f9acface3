package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ProtectedTerm is a word the rewriter must never substitute.
type ProtectedTerm struct {
	ID        string
	Term      string
	CreatedAt time.Time
}

// AddProtectedTerm stores term lower-cased. Adding an existing term is a no-op.
func (s *Store) AddProtectedTerm(ctx context.Context, term string) error {
	term = strings.ToLower(normalizeText(term))
	if term == "" {
		return fmt.Errorf("empty term")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO protected_terms (id, term) VALUES (?, ?)`,
		uuid.NewString(), term)
	return err
}

// ListProtectedTerms returns every protected term in alphabetical order.
func (s *Store) ListProtectedTerms(ctx context.Context) ([]ProtectedTerm, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, term, created_at FROM protected_terms ORDER BY term`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var terms []ProtectedTerm
	for rows.Next() {
		var t ProtectedTerm
		if err := rows.Scan(&t.ID, &t.Term, &t.CreatedAt); err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	return terms, rows.Err()
}

// ProtectedWords returns just the term strings, ready to extend a stopword set.
func (s *Store) ProtectedWords(ctx context.Context) ([]string, error) {
	terms, err := s.ListProtectedTerms(ctx)
	if err != nil {
		return nil, err
	}
	words := make([]string, len(terms))
	for i, t := range terms {
		words[i] = t.Term
	}
	return words, nil
}

// DeleteProtectedTerm removes a term by ID or by its text.
func (s *Store) DeleteProtectedTerm(ctx context.Context, idOrTerm string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM protected_terms WHERE id = ? OR term = ?`,
		idOrTerm, strings.ToLower(normalizeText(idOrTerm)))
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("protected term %s: %w", idOrTerm, ErrNotFound)
	}
	return nil
}
