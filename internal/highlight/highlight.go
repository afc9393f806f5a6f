// Package highlight marks matching passages inside a document body.
package highlight

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// minPassageLength skips fragments too short to be meaningful highlights.
const minPassageLength = 10

// Marker wraps a highlighted span.
type Marker struct {
	Open  string
	Close string
}

// HTMLMarker is the marker used by the document view.
var HTMLMarker = Marker{
	Open:  `<span style="background-color: #FFCCCC;">`,
	Close: `</span>`,
}

// Span is a highlighted byte range [Start, End) of the original text.
type Span struct {
	Start int
	End   int
}

func (s Span) overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

// Spans locates every non-overlapping occurrence of the passages in text, matching
// case-insensitively. Longer passages are placed first so they win over the shorter
// passages they contain. The result is ordered by position.
func Spans(text string, passages []string) []Span {
	sorted := make([]string, 0, len(passages))
	for _, p := range passages {
		if len(p) >= minPassageLength {
			sorted = append(sorted, p)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})

	var accepted []Span
	for _, p := range sorted {
		re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(p))
		if err != nil {
			continue
		}
		for _, loc := range re.FindAllStringIndex(text, -1) {
			candidate := Span{Start: loc[0], End: loc[1]}
			if !overlapsAny(candidate, accepted) {
				accepted = append(accepted, candidate)
			}
		}
	}

	sort.Slice(accepted, func(i, j int) bool {
		return accepted[i].Start < accepted[j].Start
	})
	return accepted
}

func overlapsAny(s Span, spans []Span) bool {
	for _, o := range spans {
		if s.overlaps(o) {
			return true
		}
	}
	return false
}

// Render wraps each span found by Spans in m. Insertions are applied from the end of
// the text backwards so earlier offsets stay valid.
func Render(text string, passages []string, m Marker) string {
	spans := Spans(text, passages)
	out := text
	for i := len(spans) - 1; i >= 0; i-- {
		s := spans[i]
		out = out[:s.Start] + m.Open + out[s.Start:s.End] + m.Close + out[s.End:]
	}
	return out
}

// RenderHTML escapes text for HTML and wraps the matching passages in HTMLMarker.
func RenderHTML(text string, passages []string) string {
	spans := Spans(text, passages)

	var b strings.Builder
	b.Grow(len(text) + len(spans)*(len(HTMLMarker.Open)+len(HTMLMarker.Close)))

	last := 0
	for _, s := range spans {
		b.WriteString(html.EscapeString(text[last:s.Start]))
		b.WriteString(HTMLMarker.Open)
		b.WriteString(html.EscapeString(text[s.Start:s.End]))
		b.WriteString(HTMLMarker.Close)
		last = s.End
	}
	b.WriteString(html.EscapeString(text[last:]))
	return b.String()
}
