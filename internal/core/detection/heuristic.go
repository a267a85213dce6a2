package detection

import (
	"context"

	"aidetector/internal/core/textnorm"
)

// HeuristicModel is the model name the heuristic reports
const HeuristicModel = "heuristic-v1"

const (
	weightDisclaimer = 30
	weightTransition = 15
	weightSentences  = 20
	weightWords      = 10

	manySentences = 10
	manyWords     = 100
	maxScore      = 95
)

// stock disclaimers and formal transitions, already folded
var (
	disclaimers = []string{
		"as an ai",
		"as an ai language model",
		"i'm an ai",
		"i\u2019m an ai",
		"i am an ai",
		"as a language model",
	}
	transitions = []string{"furthermore", "moreover"}
)

// Heuristic scores text from surface signals; it needs no network and never fails
type Heuristic struct{}

// NewHeuristic returns the heuristic backend
func NewHeuristic() Heuristic { return Heuristic{} }

// Model implements Classifier
func (Heuristic) Model() string { return HeuristicModel }

// Score returns the bounded 0..95 score for text
func (Heuristic) Score(text string) int {
	folded := textnorm.Fold(text)
	st := textnorm.Measure(text)

	s := 0
	if textnorm.ContainsAny(folded, disclaimers...) {
		s += weightDisclaimer
	}
	if textnorm.ContainsAny(folded, transitions...) {
		s += weightTransition
	}
	if st.Sentences > manySentences {
		s += weightSentences
	}
	if st.Words > manyWords {
		s += weightWords
	}
	return min(max(s, 0), maxScore)
}

// Classify implements Classifier with Real/Fake labels
func (h Heuristic) Classify(ctx context.Context, text string) ([]Label, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p := float64(h.Score(text)) / 100
	return []Label{
		{Label: "Fake", Score: p},
		{Label: "Real", Score: 1 - p},
	}, nil
}
