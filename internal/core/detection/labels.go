package detection

import (
	"math"
	"strings"
)

// aiLabels name the AI class under the conventions backends use:
// Real/Fake and Human/ChatGPT
var aiLabels = []string{"fake", "chatgpt"}

// IsAILabel reports whether name is the AI class, case insensitive
func IsAILabel(name string) bool {
	name = strings.TrimSpace(name)
	for _, l := range aiLabels {
		if strings.EqualFold(name, l) {
			return true
		}
	}
	return false
}

// Probability returns the AI label's score as a rounded 0..100 integer
// No AI label, or a non finite score, is 0
func Probability(labels []Label) int {
	for _, l := range labels {
		if !IsAILabel(l.Label) {
			continue
		}
		if math.IsNaN(l.Score) || math.IsInf(l.Score, 0) {
			return 0
		}
		p := int(math.Round(l.Score * 100))
		return min(max(p, 0), 100)
	}
	return 0
}
