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
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	cacheListLimit    int
	cacheFindMinScore float64
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the run history",
	Long:  `List, inspect, search and clear the rewrites recorded in the SQLite database.`,
}

func snippet(text string, n int) string {
	r := []rune(text)
	if len(r) > n {
		return string(r[:n-3]) + "..."
	}
	return text
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := requireStore()
		if err != nil {
			return err
		}
		defer db.Close()

		runs, err := db.ListRuns(context.Background(), cacheListLimit)
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}

		if len(runs) == 0 {
			fmt.Println("No runs recorded.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCREATED\tSOURCE\tSEED\tWORDS\tTEXT")
		for _, r := range runs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d→%d\t%s\n",
				r.ID, r.Timestamp.Format("2006-01-02 15:04"), r.Source, r.Seed,
				r.OriginalWords, r.ResultWords, snippet(r.SourceText, 40))
		}
		return w.Flush()
	},
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show database statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := requireStore()
		if err != nil {
			return err
		}
		defer db.Close()

		stats, err := db.Stats(context.Background())
		if err != nil {
			return fmt.Errorf("failed to get stats: %w", err)
		}

		fmt.Printf("Runs:            %d\n", stats.Runs)
		fmt.Printf("Words in:        %d\n", stats.OriginalWords)
		fmt.Printf("Words out:       %d\n", stats.ResultWords)
		fmt.Printf("Protected terms: %d\n", stats.ProtectedTerms)
		fmt.Printf("Lexicon senses:  %d\n", stats.LexiconSenses)
		fmt.Printf("CSV checkpoints: %d\n", stats.Checkpoints)
		return nil
	},
}

var cacheShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a recorded run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := requireStore()
		if err != nil {
			return err
		}
		defer db.Close()

		run, err := db.GetRun(context.Background(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("ID:      %s\n", run.ID)
		fmt.Printf("Created: %s\n", run.Timestamp.Format("2006-01-02 15:04:05"))
		fmt.Printf("Source:  %s\n", run.Source)
		fmt.Printf("Seed:    %d\n", run.Seed)
		fmt.Printf("Toolkit: %s\n", run.Toolkit)
		fmt.Printf("Original: %d words | Humanized: %d words\n\n", run.OriginalWords, run.ResultWords)
		fmt.Printf("--- original ---\n%s\n\n--- humanized ---\n%s\n", run.SourceText, run.ResultText)
		return nil
	},
}

var cacheFindCmd = &cobra.Command{
	Use:   "find <text>",
	Short: "Find runs whose source resembles text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := requireStore()
		if err != nil {
			return err
		}
		defer db.Close()

		matches, err := db.FindSimilarRuns(context.Background(), args[0], cacheFindMinScore)
		if err != nil {
			return fmt.Errorf("failed to search runs: %w", err)
		}
		if len(matches) == 0 {
			fmt.Println("No similar runs.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSIMILARITY\tSEED\tTEXT")
		for _, m := range matches {
			fmt.Fprintf(w, "%s\t%.2f\t%d\t%s\n", m.Run.ID, m.Similarity, m.Run.Seed, snippet(m.Run.SourceText, 50))
		}
		return w.Flush()
	},
}

var cacheDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recorded run by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := requireStore()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.DeleteRun(context.Background(), args[0]); err != nil {
			return fmt.Errorf("failed to delete run: %w", err)
		}
		fmt.Printf("Deleted run: %s\n", args[0])
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := requireStore()
		if err != nil {
			return err
		}
		defer db.Close()

		n, err := db.ClearRuns(context.Background())
		if err != nil {
			return fmt.Errorf("failed to clear runs: %w", err)
		}
		fmt.Printf("Cleared %d runs.\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)

	cacheListCmd.Flags().IntVarP(&cacheListLimit, "limit", "n", 20, "Maximum number of runs to list (0 = all)")
	cacheFindCmd.Flags().Float64Var(&cacheFindMinScore, "threshold", 0.8, "Minimum similarity (0-1)")

	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheShowCmd)
	cacheCmd.AddCommand(cacheFindCmd)
	cacheCmd.AddCommand(cacheDeleteCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
