// Package topics finds the subjects two documents have in common.
package topics

import (
	"slices"
	"strings"

	"github.com/mfenderov/docscan/internal/keywords"
)

const (
	// MaxTopics caps the number of topics returned for a pair.
	MaxTopics = 5

	// MaxKeywordsPerTopic caps how many related keywords are grouped into one label.
	MaxKeywordsPerTopic = 3

	// Fallback is returned when the documents share no keywords.
	Fallback = "Similar content structure"
)

// Common returns up to MaxTopics topic labels shared by a and b.
// Each label joins up to MaxKeywordsPerTopic related keywords with ", ".
func Common(a, b string) []string {
	return Cluster(commonKeywords(keywords.Extract(a), keywords.Extract(b)))
}

// commonKeywords keeps the keywords of first that also appear in second, in first's order.
func commonKeywords(first, second []string) []string {
	var common []string
	for _, kw := range first {
		if slices.Contains(second, kw) {
			common = append(common, kw)
		}
	}
	return common
}

// Cluster greedily groups keywords that contain one another into topic labels.
func Cluster(common []string) []string {
	used := make(map[string]bool, len(common))
	var topics []string

	for _, seed := range common {
		if used[seed] {
			continue
		}

		group := []string{seed}
		for _, kw := range common {
			if kw == seed || used[kw] {
				continue
			}
			if strings.Contains(kw, seed) || strings.Contains(seed, kw) {
				group = append(group, kw)
			}
		}

		if len(group) > MaxKeywordsPerTopic {
			group = group[:MaxKeywordsPerTopic]
		}
		for _, kw := range group {
			used[kw] = true
		}
		topics = append(topics, strings.Join(group, ", "))

		if len(topics) >= MaxTopics {
			break
		}
	}

	if len(topics) == 0 {
		return []string{Fallback}
	}
	return topics
}
