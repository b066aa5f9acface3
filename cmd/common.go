/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/valpere/humanizer/internal/config"
	"github.com/valpere/humanizer/internal/detector"
	"github.com/valpere/humanizer/internal/humanizer"
	"github.com/valpere/humanizer/internal/ingest"
	"github.com/valpere/humanizer/internal/nlp"
	"github.com/valpere/humanizer/internal/store"
	"github.com/valpere/humanizer/internal/thesaurus"
	"github.com/valpere/humanizer/internal/thesaurus/wordnet"
	"github.com/valpere/humanizer/internal/validator"
)

// detectLanguages are the candidates the input language check chooses among.
var detectLanguages = []string{"en", "de", "fr", "es", "it", "pt", "nl", "pl", "uk", "ru"}

// openStore opens the configured database. It returns a nil store when the
// store is disabled.
func openStore() (*store.Store, error) {
	if appConfig.Store.Disabled || appConfig.Store.Path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(appConfig.Store.Path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	db, err := store.New(appConfig.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// requireStore is openStore for commands that cannot work without a database.
func requireStore() (*store.Store, error) {
	db, err := openStore()
	if err != nil {
		return nil, err
	}
	if db == nil {
		return nil, errors.New("this command needs the database; remove --no-store or set store.disabled to false")
	}
	return db, nil
}

// buildProvider returns the raw lemma source named by cfg.
func buildProvider(cfg config.ThesaurusConfig, db *store.Store) (thesaurus.Provider, error) {
	var p thesaurus.Provider
	switch cfg.Source {
	case config.SourceEmbedded:
		lex, err := wordnet.Starter()
		if err != nil {
			return nil, fmt.Errorf("load embedded lexicon: %w", err)
		}
		logger.Debug("lexicon loaded", "source", cfg.Source, "senses", lex.Stats().Senses)
		p = lex
	case config.SourceFile:
		lex, err := wordnet.LoadFile(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("load lexicon %s: %w", cfg.Path, err)
		}
		logger.Debug("lexicon loaded", "source", cfg.Source, "path", cfg.Path, "senses", lex.Stats().Senses)
		p = lex
	case config.SourceSQLite:
		if db == nil {
			return nil, errors.New("the sqlite thesaurus source needs the database")
		}
		p = db.Lexicon()
	default:
		return nil, fmt.Errorf("%w: %s", thesaurus.ErrUnknownSource, cfg.Source)
	}

	if cfg.Morphology {
		p = thesaurus.WithMorphology(p)
	}
	return p, nil
}

// buildHumanizer assembles a Humanizer from the loaded configuration: the
// toolkit, stopwords extended with configured and stored protected terms,
// and a synonym cache over the configured lexicon.
func buildHumanizer(ctx context.Context, db *store.Store, seed int64) (*humanizer.Humanizer, *thesaurus.Cache, error) {
	toolkit, err := nlp.New(appConfig.Toolkit)
	if err != nil {
		return nil, nil, err
	}

	protected := append([]string(nil), appConfig.Protect.Terms...)
	if db != nil {
		stored, err := db.ProtectedWords(ctx)
		if err != nil {
			logger.Warn("failed to load protected terms", "error", err)
		}
		protected = append(protected, stored...)
	}

	provider, err := buildProvider(appConfig.Thesaurus, db)
	if err != nil {
		return nil, nil, err
	}
	cache := thesaurus.NewCache(provider)

	h, err := humanizer.New(humanizer.Config{
		Toolkit:             toolkit,
		Stopwords:           nlp.EnglishStopwords(protected...),
		Synonyms:            cache,
		Policy:              appConfig.Policy,
		ProtectPlaceholders: appConfig.Protect.Placeholders,
		Logger:              logger,
	}, humanizer.NewRand(seed))
	if err != nil {
		return nil, nil, err
	}

	logger.Debug("humanizer ready",
		"toolkit", toolkit.Name(),
		"thesaurus", appConfig.Thesaurus.Source,
		"protected_terms", len(protected),
		"seed", seed)
	return h, cache, nil
}

// resolveSeed returns seed when the flag was set and a clock-derived seed
// otherwise. The seed is logged so a run can be reproduced.
func resolveSeed(changed bool, seed int64) int64 {
	if !changed {
		seed = time.Now().UnixNano()
	}
	logger.Info("using seed", "seed", seed)
	return seed
}

// readInput parses path, or stdin as format when path is empty.
func readInput(path, format string) (*ingest.Document, error) {
	if path != "" {
		doc, err := ingest.ParseFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read input file: %w", err)
		}
		return doc, nil
	}
	doc, err := ingest.ParseReader(ingest.Format(format), os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return doc, nil
}

// writeOutput writes text to path, creating its directory, or to stdout
// when path is empty.
func writeOutput(path, text string) error {
	if path == "" {
		_, err := io.WriteString(os.Stdout, text+"\n")
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// checkLanguage warns, or fails when strict, if text is not in the expected
// language.
func checkLanguage(text string, strict bool) error {
	lc := appConfig.Language
	if !lc.Check {
		return nil
	}

	det, err := detector.New(detectLanguages...)
	if err != nil {
		return err
	}

	err = validator.New(det, lc.Expected).Check(text)
	var mismatch *validator.MismatchError
	if errors.As(err, &mismatch) {
		if strict || lc.Strict {
			return fmt.Errorf("input language check failed: %w", err)
		}
		logger.Warn("input does not look like the expected language; output may be poor",
			"expected", mismatch.Expected, "detected", mismatch.Detected)
		return nil
	}
	return err
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}
