package textnorm

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Stats are the counts validation and the heuristic scorer look at
type Stats struct {
	Runes     int
	Words     int
	Sentences int
}

// Measure counts runes of s as submitted, whitespace separated words, and
// sentences; a sentence is a run of text holding at least one letter or digit
// and ended by '.', '!', '?' or the end of input
func Measure(s string) Stats {
	return Stats{
		Runes:     utf8.RuneCountInString(s),
		Words:     len(strings.Fields(s)),
		Sentences: countSentences(s),
	}
}

// RuneLen is the length rule for minimum text size
func RuneLen(s string) int { return utf8.RuneCountInString(s) }

// Blank reports whether s holds nothing but whitespace
func Blank(s string) bool { return strings.TrimSpace(s) == "" }

func countSentences(s string) int {
	n := 0
	content := false
	for _, r := range s {
		switch {
		case r == '.' || r == '!' || r == '?':
			if content {
				n++
			}
			content = false
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			content = true
		}
	}
	if content {
		n++
	}
	return n
}
