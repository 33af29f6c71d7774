package partycount

import (
	"strings"
	"testing"
)

func TestExtractCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		want  int
		found bool
	}{
		{"digit of us", "5 of us want to play", 5, true},
		{"word people", "three people here", 3, true},
		{"no count", "what should we play", 0, false},
		{"digit players", "got 4 players tonight", 4, true},
		{"digit player singular", "1 player only", 1, true},
		{"word of us", "five of us are around", 5, true},
		{"peeps", "6 peeps ready", 6, true},
		{"word peeps", "two peeps", 2, true},
		{"uppercase word", "THREE PEOPLE want in", 3, true},
		{"digit wins over word", "2 of us now, maybe five people later", 2, true},
		{"bare digit without cue", "we have 5", 0, false},
		{"zero rejected", "0 of us", 0, false},
		{"huge count rejected", "100 of us", 0, false},
		{"word beyond fifteen", "twenty people", 0, false},
		{"no space before cue", "5people", 5, true},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, found := ExtractCount(tt.text)
			if found != tt.found {
				t.Fatalf("ExtractCount(%q) found = %v, want %v", tt.text, found, tt.found)
			}
			if found && got != tt.want {
				t.Errorf("ExtractCount(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		extracted int
		has       bool
		ambient   int
		wantAsk   bool
		wantCount int
	}{
		{"no count, big room", 0, false, 5, false, 5},
		{"no count, small room", 0, false, 2, true, 0},
		{"explicit beats tiny room", 7, true, 1, false, 7},
		{"explicit beats big room", 3, true, 10, false, 3},
		{"boundary ambient 4", 0, false, 4, false, 4},
		{"boundary ambient 3", 0, false, 3, true, 0},
		{"no count, nobody around", 0, false, 0, true, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ask, count := Resolve(tt.extracted, tt.has, tt.ambient)
			if ask != tt.wantAsk {
				t.Fatalf("Resolve(%d, %v, %d) ask = %v, want %v", tt.extracted, tt.has, tt.ambient, ask, tt.wantAsk)
			}
			if !ask && count != tt.wantCount {
				t.Errorf("Resolve(%d, %v, %d) count = %d, want %d", tt.extracted, tt.has, tt.ambient, count, tt.wantCount)
			}
		})
	}
}

func TestClarificationMessage(t *testing.T) {
	t.Parallel()

	if got := ClarificationMessage(1); got != "just you? or are more joining later?" {
		t.Errorf("ClarificationMessage(1) = %q", got)
	}
	if got := ClarificationMessage(2); got != "just you two? or are more people playing?" {
		t.Errorf("ClarificationMessage(2) = %q", got)
	}
	if got := ClarificationMessage(3); got != "just the three of you? or is it a bigger group?" {
		t.Errorf("ClarificationMessage(3) = %q", got)
	}
	// Resolve never asks above 3, but the template must still hold
	if got := ClarificationMessage(6); !strings.Contains(got, "6") {
		t.Errorf("ClarificationMessage(6) = %q, want the count in the text", got)
	}
	if got := ClarificationMessage(0); got != "how many of you are playing?" {
		t.Errorf("ClarificationMessage(0) = %q", got)
	}
}
