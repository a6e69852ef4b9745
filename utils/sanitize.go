package utils

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// SanitizeText cleans untrusted free-text input so it is safe to store and to
// render later inside HTML email templates. It strips control characters,
// removes markup tags, collapses runs of whitespace and trims the result.
// It never fails: bad input simply comes back smaller, possibly empty.
func SanitizeText(input string) string {
	// Drop control characters (keep newlines and tabs, they become plain
	// spaces in the collapse step anyway for single-line fields).
	cleaned := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, input)

	cleaned = htmlTagPattern.ReplaceAllString(cleaned, "")
	cleaned = whitespacePattern.ReplaceAllString(cleaned, " ")

	return strings.TrimSpace(cleaned)
}

// SanitizeMultiline is SanitizeText for fields where line breaks carry
// meaning (quote requirements, internal notes). Newlines are preserved,
// everything else is cleaned the same way.
func SanitizeMultiline(input string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r == '\n' {
			return r
		}
		if r == '\t' {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, input)

	cleaned = htmlTagPattern.ReplaceAllString(cleaned, "")

	// Collapse horizontal whitespace only; keep the line structure.
	lines := strings.Split(cleaned, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(whitespacePattern.ReplaceAllString(line, " "))
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// SanitizePhone normalizes a phone number to digits with an optional leading
// plus sign. Separators people commonly type (spaces, dashes, dots,
// parentheses) are removed.
func SanitizePhone(input string) string {
	trimmed := strings.TrimSpace(input)
	var b strings.Builder
	for i, r := range trimmed {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeEmail trims and lower-cases an email address. This is the only
// normalization applied to emails before storage.
func NormalizeEmail(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}
