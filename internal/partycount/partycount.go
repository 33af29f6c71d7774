// Package partycount resolves how many people a suggestion is for, either
// from an explicit mention in the message or from the ambient headcount.
package partycount

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// wordToNum maps spelled-out numbers (one through fifteen) to values.
// Covers most common casual chat usage.
var wordToNum = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14, "fifteen": 15,
}

// digitPattern matches "5 of us", "3 people", "7 players", "2 peeps".
var digitPattern = regexp.MustCompile(`(?i)\b(\d+)\s*(?:of us|people|players?|peeps)`)

// wordPattern matches "three people", "five of us", "two players".
var wordPattern = regexp.MustCompile(`(?i)\b(one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve|thirteen|fourteen|fifteen)\s+(?:of us|people|players?|peeps)`)

// ExtractCount extracts an explicit player count from a message, if mentioned.
// It matches a digit (1-99) or a spelled-out number followed by a party-size
// cue word. The second return value reports whether a count was found; a
// message with no count is not an error, it just means "unspecified".
func ExtractCount(text string) (int, bool) {
	if m := digitPattern.FindStringSubmatch(text); m != nil {
		if count, err := strconv.Atoi(m[1]); err == nil {
			if count >= 1 && count <= 99 { // sanity check for reasonable group size
				return count, true
			}
		}
	}

	if m := wordPattern.FindStringSubmatch(text); m != nil {
		if n, ok := wordToNum[strings.ToLower(m[1])]; ok {
			return n, true
		}
	}

	return 0, false
}

// Resolve decides whether the count is settled or a clarifying question is
// needed.
//
//   - Explicit count mentioned: use it, don't ask.
//   - 4+ present and no explicit count: clear group, use the headcount.
//   - 1-3 present and no explicit count: ambiguous, ask.
//
// When needsClarification is true the returned count is meaningless; the
// caller should send ClarificationMessage and re-enter on the next message.
func Resolve(extracted int, hasExtracted bool, ambientCount int) (needsClarification bool, count int) {
	if hasExtracted {
		return false, extracted
	}

	if ambientCount >= 4 {
		return false, ambientCount
	}

	return true, 0
}

// ClarificationMessage returns the clarifying question for the given
// headcount. Resolve never asks for 4+, but the generic template keeps this
// total over all inputs.
func ClarificationMessage(ambientCount int) string {
	switch ambientCount {
	case 0:
		return "how many of you are playing?"
	case 1:
		return "just you? or are more joining later?"
	case 2:
		return "just you two? or are more people playing?"
	case 3:
		return "just the three of you? or is it a bigger group?"
	default:
		return fmt.Sprintf("just the %d of you? or is it a bigger group?", ambientCount)
	}
}
