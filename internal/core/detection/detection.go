// Package detection scores text for likely AI authorship
//
// A Pipeline validates the text, hands it to exactly one Classifier, folds
// the returned labels into a 0..100 probability and buckets that into a
// confidence and an assessment. Backends only have to produce []Label.
package detection

import "context"

// Label is one class score from a backend, Score in [0,1]
type Label struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classifier is the one capability every backend implements
type Classifier interface {
	Classify(ctx context.Context, text string) ([]Label, error)
	Model() string
}

// Confidence buckets the probability
type Confidence string

// Confidence values
const (
	ConfidenceLow    Confidence = "Low"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceHigh   Confidence = "High"
)

// Assessment is the human readable verdict
type Assessment string

// Assessment values
const (
	AssessmentHuman     Assessment = "likely-human"
	AssessmentUncertain Assessment = "uncertain"
	AssessmentAI        Assessment = "likely-ai"
)

// Result is a completed detection
type Result struct {
	AIProbability int        `json:"aiProbability"`
	Confidence    Confidence `json:"confidence"`
	Assessment    Assessment `json:"assessment"`
	TextLength    int        `json:"textLength"`
	Model         string     `json:"model"`
}

// ConfidenceFor maps p to High from 70, Medium from 40, else Low;
// both boundaries are inclusive, matching AssessmentFor
func ConfidenceFor(p int) Confidence {
	switch {
	case p >= 70:
		return ConfidenceHigh
	case p >= 40:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// AssessmentFor maps p to likely-ai from 70, uncertain from 40, else likely-human
func AssessmentFor(p int) Assessment {
	switch {
	case p >= 70:
		return AssessmentAI
	case p >= 40:
		return AssessmentUncertain
	default:
		return AssessmentHuman
	}
}
