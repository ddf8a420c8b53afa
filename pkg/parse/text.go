package parse

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	spacesRe        = regexp.MustCompile(`\p{Z}+`)
	formatControlRe = regexp.MustCompile(`\p{Cf}+`)
)

// IsExtendedWhitespace reports whether r is whitespace, a zero width space, joiner or non-joiner, or a BOM.
// Information separators U+001C-U+001F are whitespace too, though unicode.IsSpace doesn't treat them so.
func IsExtendedWhitespace(r rune) bool {
	switch r {
	case '\x1c', '\x1d', '\x1e', '\x1f', '\u200b', '\u200c', '\u200d', '\ufeff':
		return true
	default:
		return unicode.IsSpace(r)
	}
}

// TrimExtendedWhitespace strips leading and trailing runs of IsExtendedWhitespace characters. The result is always a
// substring of text: invisible characters inside the text are left as is.
func TrimExtendedWhitespace(text string) string {
	return strings.TrimFunc(text, IsExtendedWhitespace)
}

// TrimText collapses separators into single spaces and drops all format characters.
func TrimText(text string) string {
	text = formatControlRe.ReplaceAllString(text, "")
	text = spacesRe.ReplaceAllString(text, " ")
	return TrimExtendedWhitespace(text)
}
