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
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/valpere/humanizer/internal/config"
	"github.com/valpere/humanizer/internal/logging"
)

var version = "0.3.0"

var (
	cfgFile string
	dbPath  string
	noStore bool

	appConfig *config.Config
	logger    *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "humanizer",
	Short: "Rewrite machine-generated English so it reads less uniformly",
	Long: `A CLI application that rewrites English text with a seeded, probabilistic
pipeline: synonym substitution, filler words and discourse markers, sentence
transitions and merges, and occasional conversational asides.

The same input and seed always produce the same output.

Use "humanizer rewrite --help" for rewrite options.`,
	Version:       version,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("db") {
			cfg.Store.Path = dbPath
		}
		if noStore {
			cfg.Store.Disabled = true
		}

		appConfig = cfg
		logger = logging.NewLogger(cfg.Log)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ./humanizer.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "./data/humanizer.db", "Database path for run history, protected terms and the imported lexicon")
	rootCmd.PersistentFlags().BoolVar(&noStore, "no-store", false, "Do not open the database")
}
