package ui

import (
	"reflect"
	"testing"
)

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		s1, s2 string
		want   int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"user", "user", 0},
		{"user", "usr", 1},
		{"point", "paint", 1},
	}

	for _, tt := range tests {
		if got := LevenshteinDistance(tt.s1, tt.s2); got != tt.want {
			t.Errorf("LevenshteinDistance(%q, %q) = %d, want %d", tt.s1, tt.s2, got, tt.want)
		}
	}
}

func TestFindSimilar(t *testing.T) {
	candidates := []string{"User", "Account", "Session", "Invoice"}

	got := FindSimilar("Usr", candidates)
	want := []string{"User"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindSimilar(\"Usr\") = %v, want %v", got, want)
	}

	// Nothing close enough
	got = FindSimilar("Zzzzzzzz", candidates)
	if len(got) != 0 {
		t.Errorf("expected no suggestions, got %v", got)
	}

	// Case insensitive
	got = FindSimilar("account", candidates)
	if len(got) == 0 || got[0] != "Account" {
		t.Errorf("expected Account as best match, got %v", got)
	}
}
