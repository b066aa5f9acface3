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
	"encoding/csv"
	"fmt"
	"os"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"

	"github.com/valpere/humanizer/internal/orchestrator"
	"github.com/valpere/humanizer/internal/store"
)

var (
	csvInputFile  string
	csvOutputFile string
	csvColumns    []int
	csvHeader     bool
	csvSeed       int64
	csvWorkers    int
	csvResume     string
	csvNoProgress bool
)

// cellSeed derives a stable per-cell seed so a resumed job rewrites the
// remaining cells exactly as the original run would have.
func cellSeed(base int64, rowIdx, colIdx int) int64 {
	return base + int64(rowIdx)*1024 + int64(colIdx)
}

var csvCmd = &cobra.Command{
	Use:   "csv",
	Short: "Rewrite columns of a CSV file",
	Long: `Rewrite one or more columns in a CSV file.

By default all columns are rewritten. Use -l to select specific columns
(0-indexed). The flag may be repeated to select multiple columns.

A checkpoint ID is printed at the start of each run. If the job is interrupted,
use --resume with that ID to skip already-rewritten cells.

Example:
  humanizer csv -i data.csv -o out.csv -l 1 -l 3 --seed 7
  humanizer csv -i data.csv -o out.csv --resume cp_123456789`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if csvInputFile == csvOutputFile {
			return fmt.Errorf("input file and output file cannot be the same")
		}

		f, err := os.Open(csvInputFile)
		if err != nil {
			return fmt.Errorf("failed to open input CSV: %w", err)
		}
		defer f.Close()

		reader := csv.NewReader(f)
		records, err := reader.ReadAll()
		if err != nil {
			return fmt.Errorf("failed to read CSV: %w", err)
		}

		if len(records) == 0 {
			return fmt.Errorf("CSV file is empty")
		}

		ctx := context.Background()

		// Open store for checkpoint support.
		db, err := openStore()
		if err != nil {
			return err
		}
		if db != nil {
			defer db.Close()
		}

		// Load or create checkpoint.
		var checkpointID string
		completedCells := make(map[string]string)
		baseSeed := csvSeed

		if csvResume != "" {
			if db == nil {
				return fmt.Errorf("--resume requires the database")
			}
			cp, cpErr := db.GetCSVCheckpoint(ctx, csvResume)
			if cpErr != nil {
				return fmt.Errorf("failed to load checkpoint: %w", cpErr)
			}
			checkpointID = cp.ID
			baseSeed = cp.Seed
			cells, cpErr := db.GetCSVCells(ctx, checkpointID)
			if cpErr != nil {
				return fmt.Errorf("failed to load checkpoint cells: %w", cpErr)
			}
			completedCells = cells
			fmt.Fprintf(os.Stderr, "Resuming checkpoint %s (%d cells already done)\n", checkpointID, len(completedCells))
		} else {
			baseSeed = resolveSeed(cmd.Flags().Changed("seed"), csvSeed)
			if db != nil {
				checkpointID, err = db.CreateCSVCheckpoint(ctx, csvInputFile, csvOutputFile, baseSeed)
				if err != nil {
					logger.Warn("failed to create checkpoint", "error", err)
				} else {
					fmt.Fprintf(os.Stderr, "Checkpoint ID: %s (use --resume %s to resume if interrupted)\n", checkpointID, checkpointID)
				}
			}
		}

		h, _, err := buildHumanizer(ctx, db, baseSeed)
		if err != nil {
			return err
		}

		workers := csvWorkers
		if workers <= 0 {
			workers = appConfig.Batch.Workers
		}
		orch := orchestrator.New(h, orchestrator.OrchestratorConfig{
			Workers: workers,
			Logger:  logger,
		})

		// Determine which columns to rewrite.
		colSet := make(map[int]bool, len(csvColumns))
		for _, c := range csvColumns {
			colSet[c] = true
		}
		rewriteAll := len(csvColumns) == 0

		// Build output records and the jobs for cells still to do.
		type cellRef struct{ row, col int }
		var jobs []orchestrator.Job
		refs := make(map[string]cellRef)

		out := make([][]string, len(records))
		for rowIdx, row := range records {
			out[rowIdx] = make([]string, len(row))
			copy(out[rowIdx], row)

			if csvHeader && rowIdx == 0 {
				continue
			}
			for colIdx, cell := range row {
				if !rewriteAll && !colSet[colIdx] {
					continue
				}
				if cell == "" {
					continue
				}

				key := store.CellKey(rowIdx, colIdx)

				// Use checkpoint data when resuming.
				if done, ok := completedCells[key]; ok {
					out[rowIdx][colIdx] = done
					continue
				}

				jobs = append(jobs, orchestrator.Job{
					ID:   key,
					Text: cell,
					Seed: cellSeed(baseSeed, rowIdx, colIdx),
				})
				refs[key] = cellRef{rowIdx, colIdx}
			}
		}

		var bar *uiprogress.Bar
		if !csvNoProgress && len(jobs) > 0 {
			uiprogress.Start()
			bar = uiprogress.AddBar(len(jobs))
			bar.AppendCompleted()
			bar.PrependElapsed()
		}

		failed := 0
		_, execErr := orch.Execute(ctx, jobs, func(jr orchestrator.JobResult) {
			if bar != nil {
				bar.Incr()
			}
			ref := refs[jr.Job.ID]
			if jr.Err != nil {
				failed++
				logger.Warn("cell rewrite failed, keeping original", "row", ref.row, "col", ref.col, "error", jr.Err)
				return
			}
			out[ref.row][ref.col] = jr.Result.Text
			if db != nil && checkpointID != "" {
				if err := db.SaveCSVCell(ctx, checkpointID, ref.row, ref.col, jr.Result.Text); err != nil {
					logger.Warn("failed to save checkpoint cell", "row", ref.row, "col", ref.col, "error", err)
				}
			}
		})
		if bar != nil {
			uiprogress.Stop()
		}
		if execErr != nil {
			return fmt.Errorf("CSV rewrite interrupted: %w", execErr)
		}

		outFile, err := os.Create(csvOutputFile)
		if err != nil {
			return fmt.Errorf("failed to create output CSV: %w", err)
		}
		defer outFile.Close()

		writer := csv.NewWriter(outFile)
		if err := writer.WriteAll(out); err != nil {
			return fmt.Errorf("failed to write output CSV: %w", err)
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			return fmt.Errorf("failed to flush output CSV: %w", err)
		}

		// Mark checkpoint complete.
		if db != nil && checkpointID != "" && failed == 0 {
			if err := db.CompleteCSVCheckpoint(ctx, checkpointID); err != nil {
				logger.Warn("failed to complete checkpoint", "error", err)
			}
		}

		fmt.Printf("CSV rewritten successfully: %s (%d cells, %d failed)\n", csvOutputFile, len(jobs), failed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(csvCmd)

	csvCmd.Flags().StringVarP(&csvInputFile, "input", "i", "", "Input CSV file (required)")
	csvCmd.Flags().StringVarP(&csvOutputFile, "output", "o", "", "Output CSV file (required)")
	csvCmd.Flags().IntSliceVarP(&csvColumns, "column", "l", nil, "Column index to rewrite (0-indexed, repeatable; default: all columns)")
	csvCmd.Flags().BoolVar(&csvHeader, "header", false, "Leave the first row unchanged")
	csvCmd.Flags().Int64Var(&csvSeed, "seed", 0, "Base random seed (default: derived from the clock and logged)")
	csvCmd.Flags().IntVar(&csvWorkers, "workers", 0, "Concurrent rewrites (0 = batch.workers)")
	csvCmd.Flags().StringVar(&csvResume, "resume", "", "Resume from checkpoint ID (printed at start of original run)")
	csvCmd.Flags().BoolVar(&csvNoProgress, "no-progress", false, "Hide the progress bar")

	csvCmd.MarkFlagRequired("input")
	csvCmd.MarkFlagRequired("output")
}
