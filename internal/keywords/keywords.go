// Package keywords ranks the most frequent meaningful words of a text.
package keywords

import (
	"sort"

	"github.com/mfenderov/docscan/internal/textnorm"
)

// Limit is the maximum number of keywords Extract returns.
const Limit = 20

// MinLength is the shortest token that can be a keyword.
const MinLength = 4

var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "a": {}, "to": {}, "of": {}, "in": {}, "that": {}, "is": {},
	"it": {}, "for": {}, "with": {}, "on": {}, "as": {}, "an": {}, "by": {}, "at": {},
	"from": {}, "be": {}, "was": {}, "this": {}, "are": {}, "or": {}, "have": {}, "had": {},
	"has": {}, "not": {}, "but": {}, "what": {}, "all": {}, "were": {}, "when": {}, "we": {},
	"they": {}, "there": {}, "their": {}, "you": {}, "your": {}, "can": {}, "will": {},
	"who": {}, "how": {},
}

// IsStopWord reports whether word is in the fixed stop-word set.
func IsStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}

type counted struct {
	word  string
	count int
}

// Extract returns up to Limit keywords of text ordered by descending frequency.
// Ties keep the order in which the words first appear.
func Extract(text string) []string {
	counts := make(map[string]*counted)
	var order []*counted

	for _, word := range textnorm.Words(text) {
		if len(word) < MinLength || IsStopWord(word) {
			continue
		}
		if c, ok := counts[word]; ok {
			c.count++
			continue
		}
		c := &counted{word: word, count: 1}
		counts[word] = c
		order = append(order, c)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].count > order[j].count
	})

	n := min(len(order), Limit)
	result := make([]string, n)
	for i := range n {
		result[i] = order[i].word
	}
	return result
}
