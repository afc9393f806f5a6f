// Package passages finds verbatim text shared between two documents.
package passages

import (
	"regexp"
	"strings"

	"github.com/mfenderov/docscan/internal/textnorm"
)

const (
	// MinLength is the shortest passage, in characters, worth reporting.
	MinLength = 20

	// MaxWindow is the longest substring window tried when no sentence matches.
	MaxWindow = 100

	// MaxSubstringPassages caps the substring fallback.
	MaxSubstringPassages = 5
)

var sentenceBoundary = regexp.MustCompile(`[.!?]+`)

// Find returns the passages a and b share, in the casing of the original text.
//
// Whole sentences are compared first. Only when no sentence of at least MinLength
// characters matches does Find fall back to scanning a for substrings of MinLength
// to MaxWindow characters that also occur in b.
func Find(a, b string) []string {
	normA := textnorm.Normalize(a)
	normB := textnorm.Normalize(b)

	found := matchSentences(normA, normB)
	if len(found) == 0 {
		found = matchSubstrings(normA, normB)
	}

	result := make([]string, len(found))
	for i, p := range found {
		result[i] = originalCasing(p, a, b)
	}
	return result
}

// sentences splits normalized text on sentence punctuation and drops blank pieces.
func sentences(text string) []string {
	var out []string
	for _, s := range sentenceBoundary.Split(text, -1) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func matchSentences(normA, normB string) []string {
	inB := make(map[string]struct{})
	for _, s := range sentences(normB) {
		inB[s] = struct{}{}
	}

	seen := make(map[string]struct{})
	var found []string
	for _, s := range sentences(normA) {
		if len([]rune(s)) < MinLength {
			continue
		}
		if _, ok := inB[s]; !ok {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		found = append(found, s)
	}
	return found
}

// matchSubstrings slides a growing window over normA. The shortest window found in
// normB is taken and the scan resumes after it, so captures never overlap.
func matchSubstrings(normA, normB string) []string {
	runes := []rune(normA)
	seen := make(map[string]struct{})
	var found []string

	for i := 0; i < len(runes)-MinLength; i++ {
		for length := MinLength; length <= MaxWindow && i+length <= len(runes); length++ {
			sub := string(runes[i : i+length])
			if _, dup := seen[sub]; dup {
				continue
			}
			if strings.Contains(normB, sub) {
				seen[sub] = struct{}{}
				found = append(found, sub)
				i += length - 1
				break
			}
		}

		if len(found) >= MaxSubstringPassages {
			break
		}
	}
	return found
}

// originalCasing locates passage case-insensitively in a, then b, and returns the
// text as it appears there. The normalized passage is returned when neither has it.
func originalCasing(passage, a, b string) string {
	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(passage))
	if err != nil {
		return passage
	}
	if m := re.FindString(a); m != "" {
		return m
	}
	if m := re.FindString(b); m != "" {
		return m
	}
	return passage
}
