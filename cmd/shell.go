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
	"strconv"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/spf13/cobra"

	"github.com/valpere/humanizer/internal/humanizer"
	"github.com/valpere/humanizer/internal/stylometry"
)

var shellSeed int64

var shellCommands = []prompt.Suggest{
	{Text: ":seed", Description: "Reseed the session, e.g. :seed 42"},
	{Text: ":again", Description: "Rewrite the previous input once more"},
	{Text: ":report", Description: "Toggle the stylometric report"},
	{Text: ":policy", Description: "Show the rewrite probabilities"},
	{Text: "quit", Description: "Leave the shell"},
}

// shellSession holds the interactive state between prompts.
type shellSession struct {
	base   *humanizer.Humanizer
	h      *humanizer.Humanizer
	last   string
	report bool
}

func newShellSession(h *humanizer.Humanizer, seed int64) *shellSession {
	return &shellSession{base: h, h: h.Session(humanizer.NewRand(seed))}
}

// execute handles one input line and returns what to print.
func (s *shellSession) execute(line string) (string, bool) {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return "", false
	case line == "quit" || line == "exit":
		return "", true
	case strings.HasPrefix(line, ":seed"):
		arg := strings.TrimSpace(strings.TrimPrefix(line, ":seed"))
		n, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return fmt.Sprintf("invalid seed %q", arg), false
		}
		s.h = s.base.Session(humanizer.NewRand(n))
		return fmt.Sprintf("seed set to %d", n), false
	case line == ":report":
		s.report = !s.report
		return fmt.Sprintf("report %s", map[bool]string{true: "on", false: "off"}[s.report]), false
	case line == ":policy":
		p := s.h.Policy()
		return fmt.Sprintf("filler=%.2f synonym=%.2f marker=%.2f transition=%.2f merge=%.2f artifact_gate=%.2f fragment=%.2f restatement=%.2f",
			p.Filler, p.Synonym, p.Marker, p.Transition, p.Merge, p.ArtifactGate, p.Fragment, p.Restatement), false
	case line == ":again":
		if s.last == "" {
			return "nothing to rewrite yet", false
		}
		line = s.last
	case strings.HasPrefix(line, ":"):
		return fmt.Sprintf("unknown command %s", line), false
	}

	s.last = line
	res, err := s.h.Process(line)
	if err != nil {
		return fmt.Sprintf("error: %v", err), false
	}

	out := res.Text
	if s.report {
		r := stylometry.Analyze(res.Text)
		out += fmt.Sprintf("\n  [%d → %d words, sentence-length SD %.2f, %d flag(s)]",
			res.OriginalWords, res.ResultWords, r.SentenceLengthSD, len(r.Flags))
	}
	return out, false
}

func shellCompleter(in prompt.Document) []prompt.Suggest {
	before := in.TextBeforeCursor()
	if before == "" || strings.Contains(before, " ") {
		return []prompt.Suggest{}
	}
	return prompt.FilterHasPrefix(shellCommands, before, true)
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Rewrite sentences interactively",
	Long: `Start an interactive prompt. Every line typed is rewritten and printed.
Lines starting with ":" are commands; type "quit" to leave.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		db, err := openStore()
		if err != nil {
			logger.Warn("continuing without database", "error", err)
		}
		if db != nil {
			defer db.Close()
		}

		seed := resolveSeed(cmd.Flags().Changed("seed"), shellSeed)
		h, _, err := buildHumanizer(ctx, db, seed)
		if err != nil {
			return err
		}
		session := newShellSession(h, seed)

		fmt.Println("Type text to rewrite, :seed N to reseed, quit to leave")
		history := []string{}
		for {
			in := prompt.Input("humanizer> ", shellCompleter,
				prompt.OptionTitle("humanizer shell"),
				prompt.OptionPrefixTextColor(prompt.Yellow),
				prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
				prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
				prompt.OptionSuggestionBGColor(prompt.DarkGray),
				prompt.OptionHistory(history),
			)

			out, quit := session.execute(in)
			if quit {
				return nil
			}
			if strings.TrimSpace(in) != "" {
				history = append(history, in)
			}
			if out != "" {
				fmt.Println(out)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)

	shellCmd.Flags().Int64Var(&shellSeed, "seed", 0, "Random seed (default: derived from the clock and logged)")
}
