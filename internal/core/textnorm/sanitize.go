package textnorm

import (
	"strings"
	"unicode/utf8"
)

// Sanitize drops what should never reach the classifier or the event log:
// NUL and other ASCII controls except \n \r \t, DEL, C1 controls and
// invalid UTF-8. Clean input comes back unchanged without allocating
func Sanitize(s string) string {
	if utf8.ValidString(s) && strings.IndexFunc(s, dropped) < 0 {
		return s
	}
	s = strings.ToValidUTF8(s, "")
	return strings.Map(func(r rune) rune {
		if dropped(r) {
			return -1
		}
		return r
	}, s)
}

func dropped(r rune) bool {
	switch {
	case r == '\n' || r == '\r' || r == '\t':
		return false
	case r < 0x20 || r == 0x7F:
		return true
	case r >= 0x80 && r <= 0x9F:
		return true
	}
	return false
}
