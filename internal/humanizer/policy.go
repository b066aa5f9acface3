package humanizer

import (
	"fmt"
)

// Policy holds the probability of every randomized rewrite decision. Each
// value must lie in [0, 1]; 0 disables a decision and 1 makes it certain.
type Policy struct {
	Filler       float64 `mapstructure:"filler" json:"filler"`
	Synonym      float64 `mapstructure:"synonym" json:"synonym"`
	Marker       float64 `mapstructure:"marker" json:"marker"`
	Transition   float64 `mapstructure:"transition" json:"transition"`
	Merge        float64 `mapstructure:"merge" json:"merge"`
	ArtifactGate float64 `mapstructure:"artifact_gate" json:"artifact_gate"`
	Fragment     float64 `mapstructure:"fragment" json:"fragment"`
	Restatement  float64 `mapstructure:"restatement" json:"restatement"`
}

// DefaultPolicy returns the standard rewrite probabilities.
func DefaultPolicy() Policy {
	return Policy{
		Filler:       0.15,
		Synonym:      0.3,
		Marker:       0.1,
		Transition:   0.4,
		Merge:        0.2,
		ArtifactGate: 0.8,
		Fragment:     0.1,
		Restatement:  0.15,
	}
}

// Validate reports the first probability outside [0, 1].
func (p Policy) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"filler", p.Filler},
		{"synonym", p.Synonym},
		{"marker", p.Marker},
		{"transition", p.Transition},
		{"merge", p.Merge},
		{"artifact_gate", p.ArtifactGate},
		{"fragment", p.Fragment},
		{"restatement", p.Restatement},
	} {
		if !(f.v >= 0 && f.v <= 1) {
			return fmt.Errorf("policy.%s: probability %v outside [0, 1]", f.name, f.v)
		}
	}
	return nil
}

// Thresholds shared by the stages.
const (
	minSentenceRunes    = 10
	minSentenceTokens   = 3
	maxPassthroughRunes = 2
	mergeMaxWords       = 15
	artifactMinWords    = 20
	restatementMinWords = 50
	keyWordMinRunes     = 5
)

// Fixed vocabularies the stages draw from.
var (
	fillers = []string{
		"actually", "basically", "essentially", "in fact", "indeed",
		"specifically", "particularly", "generally", "typically",
	}

	markers = []string{
		", however,", ", therefore,", ", consequently,",
		", moreover,", ", furthermore,", ", meanwhile,",
	}

	beginnings = []string{
		"Additionally, ", "Moreover, ", "Furthermore, ",
		"In addition, ", "Also, ", "Besides, ",
		"On the other hand, ", "However, ", "Nevertheless, ",
		"Consequently, ", "Therefore, ", "Thus, ",
	}

	transitionWords = map[string]struct{}{
		"however": {}, "therefore": {}, "thus": {}, "consequently": {},
		"moreover": {}, "furthermore": {}, "additionally": {}, "also": {},
	}

	fragments = []string{"you know", "I mean", "sort of", "kind of", "like", "well"}
)
