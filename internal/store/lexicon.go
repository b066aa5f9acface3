package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/valpere/humanizer/internal/thesaurus/wordnet"
)

// ImportSenses appends senses to the stored lexicon in one transaction and
// returns how many new rows were written. Pairs already present are skipped.
func (s *Store) ImportSenses(ctx context.Context, senses []wordnet.Sense) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback() //nolint:errcheck

	var base int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(ord), -1) + 1 FROM lexicon_senses`).Scan(&base); err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO lexicon_senses (word_key, word, pos, synset, ord) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	var written int64
	for i, sense := range senses {
		key := strings.ToLower(strings.TrimSpace(sense.Word))
		if key == "" || sense.SynsetID == "" {
			continue
		}
		res, err := stmt.ExecContext(ctx, key, sense.Word, sense.POS, sense.SynsetID, base+int64(i))
		if err != nil {
			return 0, fmt.Errorf("insert sense %s/%s: %w", sense.Word, sense.SynsetID, err)
		}
		n, _ := res.RowsAffected()
		written += n
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return written, nil
}

// LemmasContext returns every written form sharing a synset with word, in
// import order. The word itself is included.
func (s *Store) LemmasContext(ctx context.Context, word string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT b.word FROM lexicon_senses a
		 JOIN lexicon_senses b ON a.synset = b.synset
		 WHERE a.word_key = ?
		 ORDER BY a.ord, b.ord`,
		strings.ToLower(strings.TrimSpace(word)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// Lexicon adapts the stored senses to the thesaurus provider interface.
func (s *Store) Lexicon() *Lexicon {
	return &Lexicon{store: s}
}

type Lexicon struct {
	store *Store
}

func (l *Lexicon) Lemmas(word string) ([]string, error) {
	return l.store.LemmasContext(context.Background(), word)
}

// LexiconStats counts the stored words, synsets and senses.
func (s *Store) LexiconStats(ctx context.Context) (wordnet.Stats, error) {
	var st wordnet.Stats
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT word_key), COUNT(DISTINCT synset), COUNT(*) FROM lexicon_senses`).
		Scan(&st.Entries, &st.Synsets, &st.Senses)
	return st, err
}

// ClearLexicon removes every stored sense and returns how many were deleted.
func (s *Store) ClearLexicon(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM lexicon_senses`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
