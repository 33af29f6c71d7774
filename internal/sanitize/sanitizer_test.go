package sanitize

import (
	"math/rand"
	"strings"
	"testing"
)

func TestCleanBasics(t *testing.T) {
	t.Parallel()
	s := NewSanitizer()

	tests := []struct {
		name   string
		in     string
		strict bool
		want   string
	}{
		{"wrapping quotes", `"How about Valheim?"`, true, "how about Valheim?"},
		{"single quotes", `'try valheim?'`, true, "try valheim?"},
		{"trailing period", "try valheim.", true, "try valheim"},
		{"ellipsis kept", "hmm valheim...", true, "hmm valheim..."},
		{"emoji stripped", "maybe deep rock \U0001F3AE", false, "maybe deep rock"},
		{"recommend stripped", "I'd recommend Valheim", true, "valheim"},
		{"certainly stripped", "Certainly! valheim works", false, "valheim works"},
		{"you could try stripped", "You could try Among Us", true, "among Us"},
		{"repeated bangs", "valheim!!!", false, "valheim!"},
		{"repeated questions", "valheim??", false, "valheim?"},
		{"first word I kept", "I think valheim", false, "I think valheim"},
		{"acronym kept", "DRG is good", false, "DRG is good"},
		{"whitespace collapsed", "maybe   valheim", false, "maybe valheim"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := s.Clean(tt.in, tt.strict); got != tt.want {
				t.Errorf("Clean(%q, %v) = %q, want %q", tt.in, tt.strict, got, tt.want)
			}
		})
	}
}

func TestCleanCutsLeakage(t *testing.T) {
	t.Parallel()
	s := NewSanitizer()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"separator line", "valheim could be fun\n---\nYou are a laid-back friend", "valheim could be fun"},
		{"echoed label", "maybe valheim. Respond: casually", "maybe valheim"},
		{"ai disclaimer", "valheim works! As an AI I cannot play", "valheim works!"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := s.Clean(tt.in, true); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanCutsLongReplyAtFirstSentence(t *testing.T) {
	t.Parallel()
	s := NewSanitizer()

	in := "Maybe valheim since nobody has played it in a while. It has boats, building, bosses, and plenty of exploring left for everyone."
	want := "maybe valheim since nobody has played it in a while"
	if got := s.Clean(in, true); got != want {
		t.Errorf("Clean(long, strict) = %q, want %q", got, want)
	}

	// Non-strict mode leaves long replies alone apart from normalization
	if got := s.Clean(in, false); !strings.Contains(got, "boats") {
		t.Errorf("Clean(long, casual) dropped the tail: %q", got)
	}
}

func TestCleanIdempotent(t *testing.T) {
	t.Parallel()
	s := NewSanitizer()

	inputs := []string{
		`"How about Valheim?"`,
		"I'd recommend Deep Rock Galactic!!! It's a great choice for your group.",
		"maybe valheim \U0001F600\U0001F600",
		"Certainly! You could try Among Us, which is perfect for larger groups.",
		"",
		"ok",
		"valheim\n\n\nor deep rock",
	}

	for _, strict := range []bool{true, false} {
		for _, in := range inputs {
			out := s.Clean(in, strict)
			if out == "" {
				t.Fatalf("Clean(%q, %v) returned empty", in, strict)
			}
			if again := s.Clean(out, strict); again != out {
				t.Errorf("Clean not idempotent for %q (strict=%v): %q -> %q", in, strict, out, again)
			}
		}
	}
}

func TestCleanFallsBackWhenNothingLeft(t *testing.T) {
	t.Parallel()
	s := NewSanitizer().WithRand(rand.New(rand.NewSource(1)))

	for _, in := range []string{"", "  ", "!!", "\U0001F600"} {
		got := s.Clean(in, true)
		found := false
		for _, f := range casualFallbacks {
			if got == f {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Clean(%q) = %q, want a casual fallback phrase", in, got)
		}
	}
}

func TestTooFormal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		in         string
		formal     bool
		wantReason string
	}{
		{"casual suggestion", "how about valheim?", false, ""},
		{"short statement", "valheim could be good", false, ""},
		{"too long", strings.Repeat("valheim ", 15), true, ReasonTooLong},
		{"multiple sentences", "valheim is good. also it has boats", true, ReasonMultiSentence},
		{"chatty wording", "deep rock is a solid option", true, ReasonChattyWording},
		{"question plus and", "how about valheim? works for everyone and it's free", true, ReasonOverElaborate},
		{"ellipsis is fine", "hmm maybe valheim...", false, ""},
		{"empty", "", false, ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			formal, reason := TooFormal(tt.in)
			if formal != tt.formal {
				t.Fatalf("TooFormal(%q) = %v, want %v", tt.in, formal, tt.formal)
			}
			if reason != tt.wantReason {
				t.Errorf("TooFormal(%q) reason = %q, want %q", tt.in, reason, tt.wantReason)
			}
		})
	}
}

func TestFallback(t *testing.T) {
	t.Parallel()
	s := NewSanitizer().WithRand(rand.New(rand.NewSource(42)))

	t.Run("no candidates", func(t *testing.T) {
		if got := s.Fallback(nil); got != noCandidatesFallback {
			t.Errorf("Fallback(nil) = %q, want %q", got, noCandidatesFallback)
		}
	})

	t.Run("single candidate", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			got := s.Fallback([]string{"Valheim"})
			if !strings.Contains(got, "Valheim") {
				t.Fatalf("Fallback = %q, want it to name Valheim", got)
			}
		}
	})

	t.Run("names only real candidates", func(t *testing.T) {
		candidates := []string{"Valheim", "Deep Rock Galactic"}
		for i := 0; i < 50; i++ {
			got := s.Fallback(candidates)
			if !strings.Contains(got, "Valheim") && !strings.Contains(got, "Deep Rock Galactic") {
				t.Fatalf("Fallback = %q, names no candidate", got)
			}
		}
	})

	t.Run("fallback passes the formality gate", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			got := s.Fallback([]string{"Valheim", "Among Us", "Lethal Company"})
			if formal, reason := TooFormal(got); formal {
				t.Fatalf("Fallback produced formal reply %q (%s)", got, reason)
			}
		}
	})
}

func TestRuleGettersCopy(t *testing.T) {
	t.Parallel()

	rules := FormalPhrases()
	if len(rules) == 0 {
		t.Fatal("FormalPhrases returned nothing")
	}
	rules[0].Name = "mutated"
	if FormalPhrases()[0].Name == "mutated" {
		t.Error("FormalPhrases exposes internal state")
	}
}
