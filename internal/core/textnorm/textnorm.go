// Package textnorm folds user text into a stable form for phrase matching
// and measures it for validation and scoring
//
// Fold order
// 1 sanitize control bytes and invalid UTF-8
// 2 NFKD, so accents split off their base letter
// 3 case fold
// 4 strip combining marks and format chars (ZWJ, ZWSP, BOM)
// 5 fullwidth to ASCII, then NFC
// 6 collapse whitespace, newlines kept
package textnorm

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKD,
			cases.Fold(),
			runes.Remove(runes.In(unicode.Mn)),
			runes.Remove(runes.In(unicode.Cf)),
			width.Fold,
			norm.NFC,
		)
	},
}

// Fold returns the folded form of s; safe for concurrent use
func Fold(s string) string {
	if s == "" {
		return ""
	}
	s = Sanitize(s)

	tr := chainPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		// the chain only fails on malformed input, which Sanitize already dropped
		out = strings.ToLower(s)
	}
	return collapseSpaces(out)
}

// ContainsPhrase reports whether folded contains phrase on word boundaries,
// so "as an ai" matches "as an AI," but not "as an aide"
// phrase must already be folded
func ContainsPhrase(folded, phrase string) bool {
	if phrase == "" {
		return false
	}
	for off := 0; off < len(folded); {
		i := strings.Index(folded[off:], phrase)
		if i < 0 {
			return false
		}
		start := off + i
		end := start + len(phrase)
		if boundaryBefore(folded, start) && boundaryAfter(folded, end) {
			return true
		}
		off = start + 1
	}
	return false
}

// ContainsAny reports whether any phrase matches
func ContainsAny(folded string, phrases ...string) bool {
	for _, p := range phrases {
		if ContainsPhrase(folded, p) {
			return true
		}
	}
	return false
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r := lastRune(s[:i])
	return !isWordRune(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	for _, r := range s[i:] {
		return !isWordRune(r)
	}
	return true
}

func lastRune(s string) rune {
	var last rune
	for _, r := range s {
		last = r
	}
	return last
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// collapseSpaces turns whitespace runs into one space, or one newline when
// the run held a line break, and trims the edges
func collapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inWS, sawNL := false, false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			if r == '\n' || r == '\r' {
				sawNL = true
			}
			continue
		}
		if inWS && b.Len() > 0 {
			if sawNL {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}
		inWS, sawNL = false, false
		b.WriteRune(r)
	}
	return b.String()
}
