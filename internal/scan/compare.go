package scan

import (
	"fmt"

	"github.com/mfenderov/docscan/internal/passages"
	"github.com/mfenderov/docscan/internal/similarity"
	"github.com/mfenderov/docscan/internal/topics"
	"github.com/mfenderov/docscan/pkg/models"
)

// Comparison is the working result for one document pair.
type Comparison struct {
	Percentage int
	Passages   []string
	Topics     []string
	// Err is set when the pair degraded to the positional fallback.
	Err error
}

// comparer bundles the pair algorithms so tests can swap them out.
type comparer struct {
	score func(a, b string) int
	find  func(a, b string) []string
	mine  func(a, b string) []string
}

func defaultComparer() comparer {
	return comparer{
		score: similarity.Score,
		find:  passages.Find,
		mine:  topics.Common,
	}
}

// Compare scores a pair and, when it qualifies, extracts matching passages and topics.
func Compare(a, b string) Comparison {
	return defaultComparer().compare(a, b)
}

func (c comparer) compare(a, b string) (result Comparison) {
	defer func() {
		if r := recover(); r != nil {
			result = Comparison{
				Percentage: similarity.Positional(a, b),
				Passages:   []string{},
				Topics:     []string{},
				Err:        fmt.Errorf("%w: %v", models.ErrComparisonFailure, r),
			}
		}
	}()

	result = Comparison{
		Percentage: c.score(a, b),
		Passages:   []string{},
		Topics:     []string{},
	}
	if !similarity.Qualifies(result.Percentage) {
		return result
	}
	result.Passages = c.find(a, b)
	result.Topics = c.mine(a, b)
	return result
}
