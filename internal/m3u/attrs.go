package m3u

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Recognized EXTINF attribute keys.
const (
	AttrTvgID      = "tvg-id"
	AttrTvgName    = "tvg-name"
	AttrTvgLogo    = "tvg-logo"
	AttrGroupTitle = "group-title"
)

// scanAttributes walks s once and collects key="value" pairs, matching what the
// non-greedy pattern (\S+?)="(.*?)" would find scanning left to right. Keys are
// runs of non-space runes ending at the first =" of the run; values end at the
// next double quote. Later occurrences of a key overwrite earlier ones.
func scanAttributes(s string) map[string]string {
	attrs := make(map[string]string)
	pos := 0
	for pos < len(s) {
		if n := spaceWidth(s, pos); n > 0 {
			pos += n
			continue
		}

		eq := keyEnd(s, pos)
		if eq < 0 {
			// No =" before the run ends; no start inside this run can match.
			pos = runEnd(s, pos)
			continue
		}

		valueStart := eq + 2
		closing := strings.IndexByte(s[valueStart:], '"')
		if closing < 0 {
			// Unterminated value: every later =" lacks a closing quote too.
			break
		}
		closing += valueStart

		attrs[s[pos:eq]] = s[valueStart:closing]
		pos = closing + 1
	}
	return attrs
}

// keyEnd returns the index of the first =" after the first rune of the
// non-space run beginning at start, or -1.
func keyEnd(s string, start int) int {
	_, n := utf8.DecodeRuneInString(s[start:])
	for i := start + n; i < len(s); {
		if s[i] == '=' && i+1 < len(s) && s[i+1] == '"' {
			return i
		}
		r, w := utf8.DecodeRuneInString(s[i:])
		if isSpace(r) {
			return -1
		}
		i += w
	}
	return -1
}

func runEnd(s string, start int) int {
	i := start
	for i < len(s) {
		r, w := utf8.DecodeRuneInString(s[i:])
		if isSpace(r) {
			break
		}
		i += w
	}
	return i
}

// spaceWidth returns the byte width of the whitespace rune at s[i], or 0.
func spaceWidth(s string, i int) int {
	r, w := utf8.DecodeRuneInString(s[i:])
	if isSpace(r) {
		return w
	}
	return 0
}

// isSpace matches the ECMAScript \s class: Unicode space separators, the line
// terminators and U+FEFF. U+0085 is a control character there, not a space.
func isSpace(r rune) bool {
	switch r {
	case '\uFEFF':
		return true
	case '\u0085':
		return false
	}
	return unicode.IsSpace(r)
}
