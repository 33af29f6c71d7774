package sanitize

import (
	"fmt"
	"math/rand"
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxSuggestionLength is the brevity contract for suggestion replies.
const maxSuggestionLength = 100

// minUsableLength is the shortest reply worth sending as-is.
const minUsableLength = 3

// casualFallbacks are used when sanitization leaves nothing usable.
var casualFallbacks = []string{
	"hmm, gimme a sec",
	"not sure tbh",
	"hmm let me think on that",
	"good question",
}

// Sanitizer normalizes and validates generated replies against the
// brevity-and-tone contract.
type Sanitizer struct {
	leakage []Rule
	meta    []Rule
	formal  []Rule
	strict  []Rule
	punct   []Rule
	rng     *rand.Rand
}

// NewSanitizer creates a Sanitizer with the default rule sets.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{
		leakage: leakageMarkers,
		meta:    metaCommentary,
		formal:  formalPhrases,
		strict:  strictPhrases,
		punct:   punctuationRules,
	}
}

// NewSanitizerWithRules creates a Sanitizer with custom formal/strict
// denylists, keeping the structural rules. Used to tune tone rules without
// touching pipeline logic.
func NewSanitizerWithRules(formal, strict []Rule) *Sanitizer {
	s := NewSanitizer()
	s.formal = formal
	s.strict = strict
	return s
}

// WithRand sets the random source used for fallback phrase picks.
// Tests inject a seeded source for deterministic output.
func (s *Sanitizer) WithRand(rng *rand.Rand) *Sanitizer {
	s.rng = rng
	return s
}

// Clean runs the full sanitization pipeline and always returns a usable
// string. The pipeline is idempotent: Clean(Clean(x)) == Clean(x).
//
// In strict (suggestion) mode the over-explaining denylist is applied and
// long replies are cut at the first sentence boundary.
func (s *Sanitizer) Clean(raw string, strict bool) string {
	text := strings.TrimSpace(raw)

	// 1. Wrapping quotes, then cut at instruction leakage
	text = stripWrappingQuotes(text)
	text = s.cutAtLeakage(text)

	// 2. Emoji and arrow meta-commentary
	for _, r := range s.meta {
		text = r.Regex.ReplaceAllString(text, r.Replacement)
	}

	// 3. Formal phrasing, plus the stricter suggestion denylist
	for _, r := range s.formal {
		text = r.Regex.ReplaceAllString(text, r.Replacement)
	}
	if strict {
		for _, r := range s.strict {
			text = r.Regex.ReplaceAllString(text, r.Replacement)
		}
	}

	// 4. Punctuation and whitespace collapse
	for _, r := range s.punct {
		text = r.Regex.ReplaceAllString(text, r.Replacement)
	}
	text = strings.TrimSpace(text)

	// 5. Brevity cut: keep the first sentence of an over-long suggestion
	if strict && len(text) > maxSuggestionLength {
		text = firstSentence(text)
	}

	// 6. Casual-case the first letter
	text = lowercaseFirst(text)

	// 7. Trailing period (ellipsis stays), then leftover quotes
	text = stripTrailingPeriod(text)
	text = stripWrappingQuotes(text)
	text = strings.TrimSpace(text)

	// 8. Nothing left worth sending
	if len(text) < minUsableLength {
		return s.pick(casualFallbacks)
	}

	return text
}

// cutAtLeakage discards everything from the first leakage marker onward.
func (s *Sanitizer) cutAtLeakage(text string) string {
	cut := len(text)
	for _, r := range s.leakage {
		if loc := r.Regex.FindStringIndex(text); loc != nil && loc[0] < cut {
			cut = loc[0]
		}
	}
	return strings.TrimSpace(text[:cut])
}

// Formality gate reason codes.
const (
	ReasonTooLong       = "too_long"
	ReasonMultiSentence = "multi_sentence"
	ReasonChattyWording = "chatty_wording"
	ReasonOverElaborate = "question_plus_and"
)

// TooFormal reports whether a sanitized suggestion still reads like an
// explanation instead of a call. It is a pure predicate over the text; the
// reason code identifies which contract clause tripped.
func TooFormal(text string) (bool, string) {
	if len(text) > maxSuggestionLength {
		return true, ReasonTooLong
	}

	// A mid-string ". " means multiple sentences
	if idx := strings.Index(text, ". "); idx > 0 && idx < len(text)-2 {
		return true, ReasonMultiSentence
	}

	lower := strings.ToLower(text)
	for _, word := range chattyWords {
		if strings.Contains(lower, word) {
			return true, ReasonChattyWording
		}
	}

	// A question glued to " and " is a proxy for over-elaboration
	if strings.Contains(text, "?") && strings.Contains(lower, " and ") {
		return true, ReasonOverElaborate
	}

	return false, ""
}

// fallbackTemplates render a single-pick deterministic suggestion.
var fallbackTemplates = []string{
	"how about %s?",
	"maybe %s",
	"%s could be good",
	"try %s?",
}

// fallbackPairTemplates render a two-pick deterministic suggestion.
var fallbackPairTemplates = []string{
	"maybe %s or %s",
	"%s or %s?",
	"how about %s? %s works too",
}

// noCandidatesFallback is the fixed phrase when there is nothing to suggest.
const noCandidatesFallback = "hmm not sure what to suggest right now"

// Fallback renders a deterministic suggestion naming one or two candidates
// picked uniformly at random. It cannot fail: with no candidates it returns
// a fixed phrase, otherwise it always produces a reply with no external
// dependency. This is the availability guarantee behind the engine.
func (s *Sanitizer) Fallback(candidates []string) string {
	if len(candidates) == 0 {
		return noCandidatesFallback
	}

	first := candidates[s.intn(len(candidates))]
	if len(candidates) >= 2 && s.intn(2) == 1 {
		second := first
		for second == first {
			second = candidates[s.intn(len(candidates))]
		}
		tmpl := fallbackPairTemplates[s.intn(len(fallbackPairTemplates))]
		return fmt.Sprintf(tmpl, first, second)
	}

	tmpl := fallbackTemplates[s.intn(len(fallbackTemplates))]
	return fmt.Sprintf(tmpl, first)
}

func (s *Sanitizer) pick(phrases []string) string {
	return phrases[s.intn(len(phrases))]
}

func (s *Sanitizer) intn(n int) int {
	if n <= 1 {
		return 0
	}
	if s.rng != nil {
		return s.rng.Intn(n)
	}
	return rand.Intn(n)
}

// stripWrappingQuotes removes one level of matching wrapping quotes.
func stripWrappingQuotes(text string) string {
	text = strings.TrimSpace(text)
	if len(text) < 2 {
		return text
	}

	pairs := [][2]string{
		{`"`, `"`},
		{`'`, `'`},
		{"“", "”"},
	}
	for _, p := range pairs {
		if strings.HasPrefix(text, p[0]) && strings.HasSuffix(text, p[1]) {
			return strings.TrimSpace(text[len(p[0]) : len(text)-len(p[1])])
		}
	}
	return text
}

// firstSentence returns the text up to the first sentence boundary.
func firstSentence(text string) string {
	for i := 0; i < len(text)-1; i++ {
		switch text[i] {
		case '.', '!', '?':
			// An ellipsis is not a boundary
			if text[i] == '.' && i+1 < len(text) && text[i+1] == '.' {
				continue
			}
			if text[i+1] == ' ' || text[i+1] == '\n' {
				return strings.TrimSpace(text[:i+1])
			}
		}
	}
	return text
}

// lowercaseFirst lowercases the leading letter for casual tone, unless the
// first word is "I" or starts with an all-caps token (proper noun/acronym
// heuristic).
func lowercaseFirst(text string) string {
	if text == "" {
		return text
	}

	first, size := utf8.DecodeRuneInString(text)
	if !unicode.IsUpper(first) {
		return text
	}

	token := text
	if idx := strings.IndexAny(text, " \t\n"); idx > 0 {
		token = text[:idx]
	}
	if token == "I" || token == "I'm" || token == "I'd" || token == "I'll" || token == "I've" {
		return text
	}
	if isAllCaps(token) {
		return text
	}

	return string(unicode.ToLower(first)) + text[size:]
}

// isAllCaps reports whether a token of 2+ letters is entirely uppercase.
func isAllCaps(token string) bool {
	letters := 0
	for _, r := range token {
		if unicode.IsLetter(r) {
			if !unicode.IsUpper(r) {
				return false
			}
			letters++
		}
	}
	return letters >= 2
}

// stripTrailingPeriod removes a single trailing period, preserving ellipses.
func stripTrailingPeriod(text string) string {
	if strings.HasSuffix(text, "...") {
		return text
	}
	return strings.TrimSuffix(text, ".")
}
