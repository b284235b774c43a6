package stringutils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Sanitize drops NUL, C0 and C1 control characters and invalid UTF-8 from text
// that ends up in prompts or tool descriptions. Tab, newline and carriage
// return are kept.
func Sanitize(s string) string {
	if utf8.ValidString(s) && strings.IndexFunc(s, isControl) < 0 {
		return s
	}

	return strings.Map(func(r rune) rune {
		if r == utf8.RuneError || isControl(r) || !(unicode.IsPrint(r) || unicode.IsSpace(r)) {
			return -1
		}
		return r
	}, s)
}

func isControl(r rune) bool {
	switch r {
	case '\t', '\n', '\r':
		return false
	}
	return r < 0x20 || (r >= 0x7f && r <= 0x9f)
}
