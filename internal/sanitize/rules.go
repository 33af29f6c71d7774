// Package sanitize turns unconstrained model output into a short, casual,
// rule-compliant chat reply, falling back to deterministic templates when
// the output is unusable.
package sanitize

import "regexp"

// Rule represents a compiled pattern with its replacement. Rules are data:
// the pipeline applies them in order, and tests can exercise them in
// isolation or swap in custom sets.
type Rule struct {
	Name        string
	Regex       *regexp.Regexp
	Replacement string
}

// leakageMarkers cut the response at the first sign of instruction leakage.
// Everything from the marker onward is discarded.
var leakageMarkers = []Rule{
	{
		Name:  "Separator Line",
		Regex: regexp.MustCompile(`(?m)^\s*-{3,}\s*$`),
	},
	{
		Name:  "Echoed Prompt Label",
		Regex: regexp.MustCompile(`(?i)\b(?:respond:|prompt:|user message:|system prompt:)`),
	},
	{
		Name:  "AI Disclaimer",
		Regex: regexp.MustCompile(`(?i)\bas an ai\b|\bi am an ai\b|\bi'm an ai\b|\blanguage model\b`),
	},
}

// metaCommentary removes emoji and arrow meta-commentary that models tack
// onto otherwise usable replies.
var metaCommentary = []Rule{
	{
		Name:        "Emoji",
		Regex:       regexp.MustCompile(`[\x{1F300}-\x{1FAFF}\x{2600}-\x{27BF}\x{FE0F}]`),
		Replacement: "",
	},
	{
		Name:        "Arrow Commentary",
		Regex:       regexp.MustCompile(`\s*(?:->|=>|→|⇒)\s*[^.!?\n]*`),
		Replacement: "",
	},
}

// formalPhrases is the always-on denylist of formal/corporate phrasing.
var formalPhrases = []Rule{
	{
		Name:        "I Would Recommend",
		Regex:       regexp.MustCompile(`(?i)\bI(?:'d| would)? (?:highly )?recommend(?:ing)?\b\s*`),
		Replacement: "",
	},
	{
		Name:        "I Suggest",
		Regex:       regexp.MustCompile(`(?i)\bI (?:would )?suggest(?: that)?\b\s*`),
		Replacement: "",
	},
	{
		Name:        "Based On",
		Regex:       regexp.MustCompile(`(?i)\bbased on (?:your|the) [^,.!?]*[,.]?\s*`),
		Replacement: "",
	},
	{
		Name:        "Certainly",
		Regex:       regexp.MustCompile(`(?i)\b(?:certainly|absolutely|of course)[,!]?\s+`),
		Replacement: "",
	},
	{
		Name:        "Feel Free",
		Regex:       regexp.MustCompile(`(?i)\bfeel free to [^,.!?]*[,.]?\s*`),
		Replacement: "",
	},
	{
		Name:        "Please Note",
		Regex:       regexp.MustCompile(`(?i)\bplease (?:note|be aware) that\b\s*`),
		Replacement: "",
	},
	{
		Name:        "Great Choice",
		Regex:       regexp.MustCompile(`(?i)\b(?:a )?(?:great|excellent|fantastic|wonderful) (?:choice|option|pick)\b[,!]?\s*`),
		Replacement: "",
	},
	{
		Name:        "Hope This Helps",
		Regex:       regexp.MustCompile(`(?i)\b(?:I )?hope (?:this|that) helps[.!]?\s*`),
		Replacement: "",
	},
}

// strictPhrases is the additional denylist applied in suggestion mode,
// where over-explaining is the dominant failure mode.
var strictPhrases = []Rule{
	{
		Name:        "Perfect For",
		Regex:       regexp.MustCompile(`(?i)\b(?:which is|it's|its) (?:perfect|ideal|great) for [^,.!?]*[,.]?\s*`),
		Replacement: "",
	},
	{
		Name:        "Checking Out",
		Regex:       regexp.MustCompile(`(?i)\b(?:consider )?checking out\b\s*`),
		Replacement: "",
	},
	{
		Name:        "You Could Try",
		Regex:       regexp.MustCompile(`(?i)\byou (?:could|might want to) try\b\s*`),
		Replacement: "",
	},
	{
		Name:        "For Your Group",
		Regex:       regexp.MustCompile(`(?i)\bfor (?:your|a) group of \d+(?: players| people)?\b\s*`),
		Replacement: "",
	},
	{
		Name:        "Greeting With Name",
		Regex:       regexp.MustCompile(`(?i)^\s*hey \[?\w+\]?,\s*`),
		Replacement: "",
	},
}

// punctuationRules collapse repeated punctuation and whitespace.
// Order matters: the dots rule must run before single-period trimming.
var punctuationRules = []Rule{
	{
		Name:        "Repeated Exclamation",
		Regex:       regexp.MustCompile(`!{2,}`),
		Replacement: "!",
	},
	{
		Name:        "Repeated Question",
		Regex:       regexp.MustCompile(`\?{2,}`),
		Replacement: "?",
	},
	{
		Name:        "Long Ellipsis",
		Regex:       regexp.MustCompile(`\.{4,}`),
		Replacement: "...",
	},
	{
		Name:        "Blank Lines",
		Regex:       regexp.MustCompile(`\n\s*\n+`),
		Replacement: "\n",
	},
	{
		Name:        "Space Runs",
		Regex:       regexp.MustCompile(`[ \t]{2,}`),
		Replacement: " ",
	},
}

// chattyWords trip the formality gate: a suggestion that needs these words
// is explaining itself instead of making a call.
var chattyWords = []string{
	"recommend",
	"suggestion",
	"considering",
	"furthermore",
	"additionally",
	"however",
	"therefore",
	"option",
	"alternatively",
}

// LeakageMarkers returns a copy of the instruction-leakage rules.
func LeakageMarkers() []Rule {
	return copyRules(leakageMarkers)
}

// FormalPhrases returns a copy of the always-on denylist.
func FormalPhrases() []Rule {
	return copyRules(formalPhrases)
}

// StrictPhrases returns a copy of the suggestion-mode denylist.
func StrictPhrases() []Rule {
	return copyRules(strictPhrases)
}

// copyRules returns a copy to prevent callers from mutating internal rules.
func copyRules(rules []Rule) []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}
