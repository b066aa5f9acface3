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
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/valpere/humanizer/internal/config"
	"github.com/valpere/humanizer/internal/thesaurus"
	"github.com/valpere/humanizer/internal/thesaurus/wordnet"
)

var (
	thesaurusSource string
	thesaurusPath   string
)

var thesaurusCmd = &cobra.Command{
	Use:   "thesaurus",
	Short: "Import and query the synonym lexicon",
	Long: `Import a WordNet lexicon into the database and look up synonyms.

The rewriter reads synonyms from one of three sources (thesaurus.source):
  embedded   a small general-purpose lexicon compiled into the binary
  file       a GWN-LMF JSON file such as Open English WordNet (thesaurus.path)
  sqlite     senses previously imported with "humanizer thesaurus import"`,
}

var thesaurusImportCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import a GWN-LMF JSON lexicon into the database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lex, err := wordnet.LoadFile(args[0])
		if err != nil {
			return err
		}
		stats := lex.Stats()
		logger.Info("lexicon parsed", "entries", stats.Entries, "synsets", stats.Synsets, "senses", stats.Senses)

		db, err := requireStore()
		if err != nil {
			return err
		}
		defer db.Close()

		n, err := db.ImportSenses(context.Background(), lex.Senses())
		if err != nil {
			return fmt.Errorf("failed to import lexicon: %w", err)
		}
		fmt.Printf("Imported %d new senses from %s\n", n, args[0])
		fmt.Println(`Set thesaurus.source to "sqlite" to rewrite with it.`)
		return nil
	},
}

var thesaurusLookupCmd = &cobra.Command{
	Use:   "lookup <word>...",
	Short: "Show the synonyms the rewriter may use for words",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tc := appConfig.Thesaurus
		if cmd.Flags().Changed("source") {
			tc.Source = thesaurusSource
		}
		if cmd.Flags().Changed("path") {
			tc.Path = thesaurusPath
		}

		db, err := openStore()
		if err != nil {
			return err
		}
		if db != nil {
			defer db.Close()
		}

		provider, err := buildProvider(tc, db)
		if err != nil {
			return err
		}
		cache := thesaurus.NewCache(provider)

		for _, word := range args {
			syns, err := cache.SynonymsOf(word, "")
			if err != nil {
				return fmt.Errorf("lookup %q: %w", word, err)
			}
			if len(syns) == 0 {
				fmt.Printf("%s: (no synonyms)\n", word)
				continue
			}
			fmt.Printf("%s: %s\n", word, strings.Join(syns, ", "))
		}
		return nil
	},
}

var thesaurusStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the size of the imported and embedded lexicons",
	RunE: func(cmd *cobra.Command, args []string) error {
		starter, err := wordnet.Starter()
		if err != nil {
			return err
		}
		es := starter.Stats()
		fmt.Printf("Embedded: %d entries, %d synsets, %d senses\n", es.Entries, es.Synsets, es.Senses)

		db, err := openStore()
		if err != nil || db == nil {
			return err
		}
		defer db.Close()

		ss, err := db.LexiconStats(context.Background())
		if err != nil {
			return fmt.Errorf("failed to read lexicon stats: %w", err)
		}
		fmt.Printf("Imported: %d words, %d synsets, %d senses\n", ss.Entries, ss.Synsets, ss.Senses)
		return nil
	},
}

var thesaurusClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the imported lexicon from the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := requireStore()
		if err != nil {
			return err
		}
		defer db.Close()

		n, err := db.ClearLexicon(context.Background())
		if err != nil {
			return fmt.Errorf("failed to clear lexicon: %w", err)
		}
		fmt.Printf("Cleared %d senses.\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(thesaurusCmd)

	thesaurusLookupCmd.Flags().StringVar(&thesaurusSource, "source", config.SourceEmbedded, "Synonym source: embedded, file or sqlite")
	thesaurusLookupCmd.Flags().StringVar(&thesaurusPath, "path", "", "Lexicon file for the file source")

	thesaurusCmd.AddCommand(thesaurusImportCmd)
	thesaurusCmd.AddCommand(thesaurusLookupCmd)
	thesaurusCmd.AddCommand(thesaurusStatsCmd)
	thesaurusCmd.AddCommand(thesaurusClearCmd)
}
