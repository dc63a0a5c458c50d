// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// MaxTitleLen is the longest sanitized title, in runes, kept in a filename.
const MaxTitleLen = 150

// MaxNameBytes is the longest file name most filesystems accept.
const MaxNameBytes = 255

// longestExt is the longer of the PDF and sidecar extensions. Both names
// share the same stem, so the stem is sized for the sidecar.
const longestExt = len(".yaml")

const dayPrefixLayout = "20060102"

// DayPrefix is the filename prefix for papers collected in day mode.
func DayPrefix(day time.Time) string {
	return day.UTC().Format(dayPrefixLayout)
}

// IDPrefix is the filename prefix for papers collected by identifier.
// Legacy arXiv IDs contain a slash (e.g. "cs/0112017").
func IDPrefix(id string) string {
	return strings.ReplaceAll(id, "/", "-")
}

// Filename derives the local PDF name for a paper. It is a pure function of
// its inputs and doubles as the deduplication key. The title is shortened
// further when multi-byte characters would push the name past MaxNameBytes.
func Filename(prefix, title string) string {
	budget := MaxNameBytes - len(prefix) - len("_") - longestExt
	return prefix + "_" + truncateBytes(SanitizeTitle(title), budget) + ".pdf"
}

// SanitizeTitle keeps letters, digits, spaces, periods and underscores,
// collapses whitespace runs, and truncates to MaxTitleLen runes on a word
// boundary. An empty result becomes "untitled".
func SanitizeTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '.', r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	s := strings.Join(strings.Fields(b.String()), " ")

	s = truncateWords(s, MaxTitleLen)
	s = strings.TrimRight(s, " ")
	if s == "" {
		return "untitled"
	}
	return s
}

// truncateWords cuts s to at most max runes without splitting a word. A
// single word longer than max is cut hard.
func truncateWords(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if runes[max] == ' ' {
		return string(runes[:max])
	}
	cut := runes[:max]
	for i := len(cut) - 1; i > 0; i-- {
		if cut[i] == ' ' {
			return string(cut[:i])
		}
	}
	return string(cut)
}

// truncateBytes cuts s to at most max bytes without splitting a rune or,
// when a space is available, a word.
func truncateBytes(s string, max int) string {
	if len(s) <= max || max <= 0 {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	if s[cut] == ' ' {
		return s[:cut]
	}
	if i := strings.LastIndexByte(s[:cut], ' '); i > 0 {
		return s[:i]
	}
	return s[:cut]
}
