// Package sanitize maps arbitrary Unicode text onto the character set a
// single PDF core font can render: printable ASCII, newline and the
// Latin-1 supplement.
//
// Rules are evaluated in order and the first match wins:
//
//  1. line endings are normalized and tabs expand to four spaces
//  2. printable ASCII, newline and U+0080..U+00FF pass through
//  3. remaining ASCII controls and DEL are dropped
//  4. a fixed substitution table (quotes, dashes, arrows, math, Greek, ...)
//  5. fullwidth forms fold to their ASCII counterpart
//  6. Latin letters with diacritics lose the diacritic
//  7. characters of a known script become a bracketed tag such as [CJK]
//  8. anything else becomes "?"
//
// The output only contains characters accepted by rule 2, so Text is
// idempotent.
package sanitize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Placeholder replaces characters with no known mapping.
const Placeholder = "?"

// TabWidth is the number of spaces a tab expands to.
const TabWidth = 4

// rule maps a single rune. ok reports whether the rule applied.
type rule func(r rune) (out string, ok bool)

// rules is the ordered rule chain applied to every rune after line-ending
// and tab normalization.
var rules = []rule{
	passThrough,
	dropControl,
	substitute,
	foldWidth,
	stripDiacritic,
	scriptTag,
}

// Text sanitizes s.
func Text(s string) string {
	if s == "" {
		return ""
	}

	s = norm.NFC.String(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ReplaceAll(s, "\t", strings.Repeat(" ", TabWidth))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		b.WriteString(Rune(r))
	}
	return b.String()
}

// Rune sanitizes a single rune. Line-ending and tab normalization are
// handled by Text; Rune treats '\r' and '\t' as controls.
func Rune(r rune) string {
	for _, apply := range rules {
		if out, ok := apply(r); ok {
			return out
		}
	}
	return Placeholder
}

// IsSafe reports whether r survives sanitization unchanged.
func IsSafe(r rune) bool {
	return r == '\n' || (r >= 0x20 && r <= 0x7E) || (r >= 0x80 && r <= 0xFF)
}

func passThrough(r rune) (string, bool) {
	if IsSafe(r) {
		return string(r), true
	}
	return "", false
}

func dropControl(r rune) (string, bool) {
	if r < 0x20 || r == 0x7F {
		return "", true
	}
	return "", false
}

func substitute(r rune) (string, bool) {
	out, ok := substitutions[r]
	return out, ok
}

// foldWidth maps fullwidth and halfwidth forms (U+FF01..U+FF5E and friends)
// to their narrow equivalents when the result is itself safe.
func foldWidth(r rune) (string, bool) {
	if width.LookupRune(r).Kind() != width.EastAsianFullwidth {
		return "", false
	}
	folded := width.Fold.String(string(r))
	if folded == string(r) || !allSafe(folded) {
		return "", false
	}
	return folded, true
}

// stripDiacritic decomposes Latin letters in compatibility form and keeps
// the safe base characters, so "ő" becomes "o" and "ﬁ" becomes "fi".
func stripDiacritic(r rune) (string, bool) {
	if !unicode.Is(unicode.Latin, r) {
		return "", false
	}
	var b strings.Builder
	for _, c := range norm.NFKD.String(string(r)) {
		if unicode.Is(unicode.Mn, c) {
			continue
		}
		if !IsSafe(c) {
			return "", false
		}
		b.WriteRune(c)
	}
	if b.Len() == 0 {
		return "", false
	}
	return b.String(), true
}

func scriptTag(r rune) (string, bool) {
	for _, s := range scripts {
		if unicode.Is(s.table, r) {
			return s.tag, true
		}
	}
	return "", false
}

func allSafe(s string) bool {
	for _, r := range s {
		if !IsSafe(r) {
			return false
		}
	}
	return true
}
