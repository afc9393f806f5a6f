package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestCanonicalPair(t *testing.T) {
	tests := []struct {
		name     string
		a, b     int64
		wantLow  int64
		wantHigh int64
	}{
		{"already ordered", 1, 2, 1, 2},
		{"reversed", 9, 3, 3, 9},
		{"equal", 4, 4, 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			low, high := CanonicalPair(tt.a, tt.b)
			if low != tt.wantLow || high != tt.wantHigh {
				t.Errorf("CanonicalPair(%d, %d) = (%d, %d), want (%d, %d)",
					tt.a, tt.b, low, high, tt.wantLow, tt.wantHigh)
			}
		})
	}
}

func TestNewSimilarityRecord(t *testing.T) {
	r := NewSimilarityRecord(7, 2, 40, nil)

	if r.DocumentID1 != 2 || r.DocumentID2 != 7 {
		t.Errorf("pair = (%d, %d), want (2, 7)", r.DocumentID1, r.DocumentID2)
	}
	if r.Percentage != 40 {
		t.Errorf("Percentage = %d, want 40", r.Percentage)
	}
	if r.MatchingPassages == nil || len(r.MatchingPassages) != 0 {
		t.Errorf("MatchingPassages = %#v, want empty non-nil slice", r.MatchingPassages)
	}
}

func TestSimilarityRecordJSON(t *testing.T) {
	data, err := json.Marshal(NewSimilarityRecord(1, 2, 100, nil))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	got := string(data)
	for _, field := range []string{`"documentId1":1`, `"documentId2":2`, `"percentage":100`, `"matchingPassages":[]`} {
		if !strings.Contains(got, field) {
			t.Errorf("Marshal() = %s, missing %s", got, field)
		}
	}
}

func TestDocumentJSONOwnerField(t *testing.T) {
	data, err := json.Marshal(Document{ID: 1, Owner: "ann@example.com"})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), `"email":"ann@example.com"`) {
		t.Errorf("Marshal() = %s, want owner under email", data)
	}
}
