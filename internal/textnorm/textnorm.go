// Package textnorm lowercases and cleans raw document text before comparison.
package textnorm

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	whitespaceRegex  = regexp.MustCompile(`\s+`)
	punctuationRegex = regexp.MustCompile(`[^\w\s]`)
)

// lower is safe for concurrent use; cases.Caser is not.
func lower(text string) string {
	return cases.Lower(language.Und).String(text)
}

// Normalize lowercases text, collapses whitespace runs to a single space and trims it.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(lower(text), " "))
}

// StripPunctuation lowercases text and removes every character that is neither a word
// character nor whitespace. Whitespace is left as is so callers can split on it.
func StripPunctuation(text string) string {
	if text == "" {
		return ""
	}
	return punctuationRegex.ReplaceAllString(lower(text), "")
}

// Words returns the whitespace separated tokens of StripPunctuation(text).
func Words(text string) []string {
	return strings.Fields(StripPunctuation(text))
}
