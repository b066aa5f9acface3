// Package thesaurus resolves words to short lists of single-word synonyms.
//
// A Provider supplies raw lemma names for every sense of a word; Cache
// filters them down to at most MaxSynonyms candidates and memoizes the
// result for the lifetime of the Cache.
package thesaurus

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// MaxSynonyms bounds the number of synonyms returned per word.
const MaxSynonyms = 5

// ErrUnknownSource is returned when a lexicon source name is not recognised.
var ErrUnknownSource = errors.New("unknown thesaurus source")

// Provider returns every lemma name associated with word across all of its
// senses, in the provider's native order. Multi-word lemmas may use either
// spaces or underscores. A word with no senses yields an empty slice.
type Provider interface {
	Lemmas(word string) ([]string, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(word string) ([]string, error)

func (f ProviderFunc) Lemmas(word string) ([]string, error) {
	return f(word)
}

type cacheKey struct {
	word string
	pos  string
}

// Cache memoizes synonym lookups. Entries are never evicted; the cache grows
// with the vocabulary actually looked up. It is safe for concurrent use.
type Cache struct {
	provider Provider

	mu      sync.RWMutex
	entries map[cacheKey][]string
	group   singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64
}

// NewCache returns an empty cache in front of provider.
func NewCache(provider Provider) *Cache {
	return &Cache{
		provider: provider,
		entries:  make(map[cacheKey][]string),
	}
}

// SynonymsOf returns up to MaxSynonyms distinct lower-cased single-word
// synonyms of word. pos is part of the cache key only; it does not filter
// senses. The returned slice is shared with the cache and must not be
// modified. A word without synonyms yields an empty slice and no error;
// errors come only from the provider and are not cached.
func (c *Cache) SynonymsOf(word, pos string) ([]string, error) {
	key := cacheKey{word: word, pos: pos}
	if syns, ok := c.lookup(key); ok {
		c.hits.Add(1)
		return syns, nil
	}

	v, err, _ := c.group.Do(word+"\x00"+pos, func() (any, error) {
		if syns, ok := c.lookup(key); ok {
			return syns, nil
		}
		c.misses.Add(1)

		lemmas, err := c.provider.Lemmas(word)
		if err != nil {
			return nil, fmt.Errorf("lookup synonyms of %q: %w", word, err)
		}

		syns := Filter(word, lemmas)
		c.mu.Lock()
		c.entries[key] = syns
		c.mu.Unlock()
		return syns, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

func (c *Cache) lookup(key cacheKey) ([]string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	syns, ok := c.entries[key]
	return syns, ok
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns the number of cache hits and provider lookups so far.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Filter reduces raw lemma names to synonym candidates for word: underscores
// become spaces, multi-word lemmas and lemmas equal to word (ignoring case)
// are dropped, the rest are lower-cased, deduplicated in order and truncated
// to MaxSynonyms. The result is never nil.
func Filter(word string, lemmas []string) []string {
	out := make([]string, 0, MaxSynonyms)
	seen := make(map[string]struct{}, len(lemmas))
	for _, lemma := range lemmas {
		s := strings.TrimSpace(strings.ReplaceAll(lemma, "_", " "))
		if s == "" || strings.Contains(s, " ") || strings.EqualFold(s, word) {
			continue
		}
		s = strings.ToLower(s)
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
		if len(out) == MaxSynonyms {
			break
		}
	}
	return out
}
