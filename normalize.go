package gibber

import (
	"strings"
	"unicode"
)

// normalize lowercases text and maps separator characters to spaces.
// Letters and digits are kept lowercased; whitespace, hyphen, underscore,
// slash and sentence punctuation (, . ! ?) become separators; every other
// character survives unchanged so that symbol-heavy input still reaches
// the scoring stage. Separator runs collapse to a single space and the
// ends are trimmed.
func normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	pending := false
	for _, r := range text {
		if isSeparator(r) {
			pending = true
			continue
		}
		if pending && b.Len() > 0 {
			b.WriteByte(' ')
		}
		pending = false
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

func isSeparator(r rune) bool {
	switch r {
	case '-', '_', '/', ',', '.', '!', '?':
		return true
	}
	return unicode.IsSpace(r)
}

// hasControl reports whether text contains a control character other than
// tab, newline or carriage return. Such bytes never occur in prose and
// force a gibberish verdict regardless of sensitivity.
func hasControl(text string) bool {
	for _, r := range text {
		if r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		if unicode.IsControl(r) {
			return true
		}
	}
	return false
}
