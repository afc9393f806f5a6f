package topics

import (
	"reflect"
	"testing"
)

func TestCluster(t *testing.T) {
	tests := []struct {
		name   string
		common []string
		want   []string
	}{
		{
			name:   "no keywords falls back",
			common: nil,
			want:   []string{Fallback},
		},
		{
			name:   "unrelated keywords stay separate",
			common: []string{"graph", "river"},
			want:   []string{"graph", "river"},
		},
		{
			name:   "groups substrings with the seed",
			common: []string{"network", "networks", "river", "networking"},
			want:   []string{"network, networks, networking", "river"},
		},
		{
			name:   "caps group size",
			common: []string{"form", "forms", "format", "formal", "reform"},
			want:   []string{"form, forms, format", "formal", "reform"},
		},
		{
			name:   "caps topic count",
			common: []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf"},
			want:   []string{"alpha", "bravo", "charlie", "delta", "echo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cluster(tt.common); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Cluster(%v) = %v, want %v", tt.common, got, tt.want)
			}
		})
	}
}

func TestCommon(t *testing.T) {
	a := "Distributed systems need consensus. Consensus protocols keep distributed replicas aligned."
	b := "Consensus in distributed databases: replicas agree through consensus."

	got := Common(a, b)
	want := []string{"distributed", "consensus", "replicas"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Common() = %v, want %v", got, want)
	}
}

func TestCommon_NothingShared(t *testing.T) {
	got := Common("apples oranges bananas", "engines pistons gears")
	if !reflect.DeepEqual(got, []string{Fallback}) {
		t.Errorf("Common() = %v, want fallback", got)
	}
}
