package similarity

import "testing"

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{"both empty", "", "", 100},
		{"one empty", "", "nonempty text here", 0},
		{"identical", "Graphs model pairwise relations.", "Graphs model pairwise relations.", 100},
		{"case and punctuation ignored", "Hello, World!", "hello world", 100},
		{"disjoint", "alpha beta gamma", "delta epsilon zeta", 0},
		{"half overlap", "alpha beta gamma", "alpha beta delta", 50},
		{"short tokens ignored", "an ox alpha", "is it alpha", 100},
		{"rounds to nearest", "alpha beta gamma", "alpha delta epsilon zeta", 17},
		{"duplicates count once", "alpha alpha alpha beta", "alpha beta", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.a, tt.b); got != tt.want {
				t.Errorf("Score(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestScore_Symmetric(t *testing.T) {
	texts := []string{
		"",
		"ab cd",
		"The cat sat on the mat.",
		"A cat and a dog sat together on a large mat.",
		"Completely unrelated words describing rivers and mountains.",
	}

	for _, a := range texts {
		for _, b := range texts {
			if ab, ba := Score(a, b), Score(b, a); ab != ba {
				t.Errorf("Score(%q, %q) = %d but Score(%q, %q) = %d", a, b, ab, b, a, ba)
			}
		}
	}
}

func TestScore_Reflexive(t *testing.T) {
	for _, a := range []string{"", "x", "ab cd", "Some document text, with punctuation!"} {
		if got := Score(a, a); got != 100 {
			t.Errorf("Score(%q, %q) = %d, want 100", a, a, got)
		}
	}
}

func TestScore_TokenFreeTextsUsePositional(t *testing.T) {
	tests := []struct {
		name      string
		a         string
		b         string
		want      int
		qualifies bool
	}{
		{"near identical short words", "ab cd ef", "ab cd eg", 88, true},
		{"different short words", "ab cd", "xy zw", 20, false},
		{"tokens on one side only", "ab cd", "alpha", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("Score(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			if Qualifies(got) != tt.qualifies {
				t.Errorf("Qualifies(%d) = %v, want %v", got, Qualifies(got), tt.qualifies)
			}
		})
	}
}

func TestPositional(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{"both empty", "", "", 100},
		{"one empty", "", "abc", 0},
		{"identical", "abcd", "abcd", 100},
		{"prefix", "abcd", "ab", 50},
		{"shifted", "abcd", "bcda", 0},
		{"partial", "abcd", "abxd", 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Positional(tt.a, tt.b); got != tt.want {
				t.Errorf("Positional(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestQualifies(t *testing.T) {
	if Qualifies(Threshold - 1) {
		t.Errorf("Qualifies(%d) = true, want false", Threshold-1)
	}
	if !Qualifies(Threshold) {
		t.Errorf("Qualifies(%d) = false, want true", Threshold)
	}
}
