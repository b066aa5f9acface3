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
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/valpere/humanizer/internal"
	"github.com/valpere/humanizer/internal/arbiter"
	"github.com/valpere/humanizer/internal/chunker"
	"github.com/valpere/humanizer/internal/humanizer"
	"github.com/valpere/humanizer/internal/orchestrator"
	"github.com/valpere/humanizer/internal/postprocess"
	"github.com/valpere/humanizer/internal/stylometry"
)

var (
	inputFile   string
	outputFile  string
	inputFormat string
	seed        int64
	variants    int
	paragraphs  bool
	maxChars    int
	showReport  bool
	strictLang  bool
	noSave      bool
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite",
	Short: "Rewrite a text so it reads less uniformly",
	Long: `Rewrite English text with the seeded humanizing pipeline.

Input is read from -i (.txt, .md, .pdf, .docx) or stdin; output goes to -o or
stdout. The same input, seed and configuration always give the same output.

Larger inputs:
  --paragraphs   rewrite each paragraph on its own and keep paragraph breaks
  --max-chars N  split pieces longer than N characters before rewriting

Several candidates:
  --variants N   rewrite N times with consecutive seeds and keep the one whose
                 sentence lengths vary most`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if inputFile != "" && inputFile == outputFile {
			return fmt.Errorf("input file and output file cannot be the same")
		}
		if variants > 1 && (paragraphs || maxChars > 0) {
			return fmt.Errorf("--variants cannot be combined with --paragraphs or --max-chars")
		}

		doc, err := readInput(inputFile, inputFormat)
		if err != nil {
			return err
		}
		text := doc.Text()

		if err := checkLanguage(text, strictLang); err != nil {
			return err
		}

		ctx := context.Background()

		db, err := openStore()
		if err != nil {
			logger.Warn("continuing without database", "error", err)
		}
		if db != nil {
			defer db.Close()
		}

		runSeed := resolveSeed(cmd.Flags().Changed("seed"), seed)
		h, cache, err := buildHumanizer(ctx, db, runSeed)
		if err != nil {
			return err
		}

		limit := maxChars
		if limit == 0 {
			limit = appConfig.Batch.MaxChars
		}
		orch := orchestrator.New(h, orchestrator.OrchestratorConfig{
			Workers: appConfig.Batch.Workers,
			Logger:  logger,
		})

		var result string
		switch {
		case variants > 1:
			result, err = bestVariant(ctx, orch, text, variants, runSeed)
		case paragraphs || limit > 0:
			units := []string{text}
			if paragraphs {
				units = doc.Paragraphs
			}
			result, err = rewriteUnits(ctx, orch, units, limit, runSeed)
		default:
			var res *humanizer.Result
			res, err = h.Process(text)
			if res != nil {
				result = res.Text
			}
		}
		if err != nil {
			return err
		}

		hits, misses := cache.Stats()
		logger.Debug("thesaurus cache", "entries", cache.Len(), "hits", hits, "misses", misses)

		if err := writeOutput(outputFile, result); err != nil {
			return err
		}

		if db != nil && !noSave {
			source := inputFile
			if source == "" {
				source = "stdin"
			}
			id, err := db.SaveRun(ctx, internal.RunRecord{
				Source:        source,
				SourceText:    text,
				ResultText:    result,
				Seed:          runSeed,
				Toolkit:       appConfig.Toolkit,
				OriginalWords: wordCount(text),
				ResultWords:   wordCount(result),
			})
			if err != nil {
				logger.Warn("failed to save run", "error", err)
			} else {
				logger.Debug("run saved", "id", id)
			}
		}

		// Keep stdout clean for the rewritten text when it is the output.
		info := os.Stdout
		if outputFile == "" {
			info = os.Stderr
		}
		fmt.Fprintf(info, "Original: %d words | Humanized: %d words\n", wordCount(text), wordCount(result))

		if showReport {
			return printReports(info, stylometry.Analyze(text), stylometry.Analyze(result))
		}
		return nil
	},
}

// rewriteUnits rewrites every unit concurrently, splitting units longer than
// limit runes first, and joins the results with paragraph breaks. Pieces of
// one unit are rejoined with a space.
func rewriteUnits(ctx context.Context, orch *orchestrator.Orchestrator, units []string, limit int, baseSeed int64) (string, error) {
	type span struct{ from, to int }

	var jobs []orchestrator.Job
	spans := make([]span, len(units))
	for i, unit := range units {
		pieces := []string{unit}
		if limit > 0 {
			pieces = chunker.Chunk(unit, limit)
		}
		spans[i].from = len(jobs)
		for j, piece := range pieces {
			jobs = append(jobs, orchestrator.Job{
				ID:   fmt.Sprintf("p%d-c%d", i+1, j+1),
				Text: piece,
				Seed: baseSeed + int64(len(jobs)),
			})
		}
		spans[i].to = len(jobs)
	}

	res, err := orch.Execute(ctx, jobs, nil)
	if err != nil {
		return "", err
	}
	if res.Failed > 0 {
		return "", errors.Join(res.Errors()...)
	}
	logger.Debug("pieces rewritten", "units", len(units), "pieces", len(jobs))

	out := make([]string, len(units))
	for i, sp := range spans {
		parts := make([]string, 0, sp.to-sp.from)
		for _, jr := range res.Results[sp.from:sp.to] {
			parts = append(parts, jr.Result.Text)
		}
		out[i] = strings.Join(parts, " ")
	}
	return postprocess.Paragraph(out), nil
}

// bestVariant rewrites text n times and returns the candidate the
// stylometric arbiter prefers.
func bestVariant(ctx context.Context, orch *orchestrator.Orchestrator, text string, n int, baseSeed int64) (string, error) {
	res, err := orch.Variants(ctx, text, n, baseSeed)
	if err != nil {
		return "", err
	}
	if res.Succeeded == 0 {
		return "", fmt.Errorf("all variants failed: %w", errors.Join(res.Errors()...))
	}

	var candidates []arbiter.Candidate
	for _, jr := range res.Results {
		if jr.Err == nil {
			candidates = append(candidates, arbiter.Candidate{Seed: jr.Job.Seed, Text: jr.Result.Text})
		}
	}

	eval, err := arbiter.NewStylometricArbiter(logger).Evaluate(ctx, text, candidates)
	if err != nil {
		return "", err
	}
	logger.Info("variant selected", "seed", eval.Seed, "of", len(candidates), "reason", eval.Reasoning)
	return eval.Text, nil
}

func printReports(w *os.File, before, after stylometry.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]stylometry.Report{
		"original":  before,
		"humanized": after,
	})
}

func init() {
	rootCmd.AddCommand(rewriteCmd)

	rewriteCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input file (default stdin)")
	rewriteCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default stdout)")
	rewriteCmd.Flags().StringVar(&inputFormat, "format", "text", "Stdin format: text or markdown")
	rewriteCmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (default: derived from the clock and logged)")
	rewriteCmd.Flags().IntVar(&variants, "variants", 1, "Number of seeded candidates to generate and choose from")
	rewriteCmd.Flags().BoolVar(&paragraphs, "paragraphs", false, "Rewrite paragraphs independently and keep paragraph breaks")
	rewriteCmd.Flags().IntVar(&maxChars, "max-chars", 0, "Split pieces longer than this many characters (0 = batch.max_chars)")
	rewriteCmd.Flags().BoolVar(&showReport, "report", false, "Print a stylometric report of the input and the output")
	rewriteCmd.Flags().BoolVar(&strictLang, "strict", false, "Fail when the input does not look like English")
	rewriteCmd.Flags().BoolVar(&noSave, "no-save", false, "Do not record the run in the database")
}
