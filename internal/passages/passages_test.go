package passages

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/mfenderov/docscan/internal/textnorm"
)

func TestFind_SentenceMatches(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want []string
	}{
		{
			name: "shared sentence keeps first document casing",
			a:    "The quick brown fox jumps over the lazy dog. Unrelated text here!",
			b:    "Something else entirely. the quick brown fox jumps over the lazy dog.",
			want: []string{"The quick brown fox jumps over the lazy dog"},
		},
		{
			name: "duplicate sentences reported once",
			a:    "Repeated sentence that is long enough. Repeated sentence that is long enough.",
			b:    "repeated sentence that is long enough?",
			want: []string{"Repeated sentence that is long enough"},
		},
		{
			name: "falls back to second document casing",
			a:    "Some   spaced out sentence goes here.",
			b:    "SOME spaced out sentence goes HERE.",
			want: []string{"SOME spaced out sentence goes HERE"},
		},
		{
			name: "short shared sentences are ignored",
			a:    "Hi there. Apples are red.",
			b:    "Hi there. Bananas look yellow.",
			want: []string{},
		},
		{
			name: "empty input",
			a:    "",
			b:    "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Find(tt.a, tt.b)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Find() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFind_SubstringFallback(t *testing.T) {
	a := "xx gamma delta epsilon zeta yy"
	b := "zz gamma delta epsilon zeta ww"

	got := Find(a, b)
	if len(got) != 1 {
		t.Fatalf("Find() returned %d passages, want 1: %q", len(got), got)
	}
	if got[0] != " gamma delta epsilon" {
		t.Errorf("Find()[0] = %q, want %q", got[0], " gamma delta epsilon")
	}
}

func TestFind_SubstringFallbackLimit(t *testing.T) {
	body := strings.Repeat("lorem ipsum dolor sit amet consectetur adipiscing elit ", 10)
	a := "start " + body
	b := body + " finish"

	got := Find(a, b)
	if len(got) != MaxSubstringPassages {
		t.Fatalf("Find() returned %d passages, want %d", len(got), MaxSubstringPassages)
	}

	normB := textnorm.Normalize(b)
	for _, p := range got {
		n := utf8.RuneCountInString(p)
		if n < MinLength || n > MaxWindow {
			t.Errorf("passage %q has length %d, want between %d and %d", p, n, MinLength, MaxWindow)
		}
		if !strings.Contains(normB, strings.ToLower(p)) {
			t.Errorf("passage %q not found in second document", p)
		}
	}
}

func TestFind_PassagesAreLongAndUnique(t *testing.T) {
	a := "Data structures matter. Arrays provide constant time indexing. " +
		"Linked lists make insertion cheap. Trees keep keys ordered for search."
	b := "Linked lists make insertion cheap. Arrays provide constant time indexing. " +
		"Hash maps give average constant lookups."

	got := Find(a, b)
	if len(got) != 2 {
		t.Fatalf("Find() returned %d passages, want 2: %q", len(got), got)
	}

	seen := make(map[string]bool)
	for _, p := range got {
		if utf8.RuneCountInString(p) < MinLength {
			t.Errorf("passage %q shorter than %d", p, MinLength)
		}
		if seen[p] {
			t.Errorf("passage %q reported twice", p)
		}
		seen[p] = true
	}
}
