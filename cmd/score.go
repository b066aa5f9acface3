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
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/valpere/humanizer/internal/stylometry"
)

var (
	scoreInput  string
	scoreFormat string
	scoreJSON   bool
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Profile how uniform a text reads",
	Long: `Print a stylometric profile of a text: sentence-length mean and deviation,
cliché-word density and how common its word trigrams are. Flags point out
monotone rhythm, cliché-heavy vocabulary and low originality.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := readInput(scoreInput, scoreFormat)
		if err != nil {
			return err
		}

		report := stylometry.Analyze(doc.Text())

		if scoreJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		fmt.Printf("Words:                %d\n", report.Words)
		fmt.Printf("Sentences:            %d\n", report.Sentences)
		fmt.Printf("Mean sentence length: %.1f\n", report.MeanSentenceLength)
		fmt.Printf("Sentence length SD:   %.2f\n", report.SentenceLengthSD)
		fmt.Printf("Cliché density:       %.3f\n", report.ClicheDensity)
		fmt.Printf("Trigram commonness:   %.2f\n", report.TrigramCommonness)
		if len(report.Flags) == 0 {
			fmt.Println("No flags.")
		}
		for _, f := range report.Flags {
			fmt.Printf("! %s\n", f)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringVarP(&scoreInput, "input", "i", "", "Input file (default stdin)")
	scoreCmd.Flags().StringVar(&scoreFormat, "format", "text", "Stdin format: text or markdown")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Print the report as JSON")
}
