// Package similarity scores how much two documents overlap on a 0-100 scale.
package similarity

import (
	"math"

	"github.com/mfenderov/docscan/internal/textnorm"
)

// Threshold is the lowest score at which a pair is reported.
const Threshold = 30

// minTokenLength is the shortest token that takes part in the word-set comparison.
const minTokenLength = 3

// Qualifies reports whether score crosses the reporting threshold.
func Qualifies(score int) bool {
	return score >= Threshold
}

// Score returns the Jaccard overlap of the word sets of a and b, as a rounded percentage.
// When neither text has a usable token the word sets carry no signal and the
// positional comparison decides instead.
func Score(a, b string) int {
	setA := wordSet(a)
	setB := wordSet(b)

	intersection := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return Positional(a, b)
	}
	return percent(float64(intersection) / float64(union))
}

func wordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range textnorm.Words(text) {
		if len(w) >= minTokenLength {
			set[w] = struct{}{}
		}
	}
	return set
}

// Positional compares characters at equal offsets and divides the number of equal
// positions by the length of the longer text. Two empty texts score 100.
func Positional(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	longest := max(len(ra), len(rb))
	if longest == 0 {
		return 100
	}

	matches := 0
	for i := range min(len(ra), len(rb)) {
		if ra[i] == rb[i] {
			matches++
		}
	}
	return percent(float64(matches) / float64(longest))
}

func percent(ratio float64) int {
	return int(math.Round(ratio * 100))
}
