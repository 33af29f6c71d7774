package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/runger/gamenight/internal/store"
)

// maxPromptCandidates caps how many candidate names the prompt carries.
// Small local models lose the thread past a handful of options.
const maxPromptCandidates = 10

// promptContext is everything the prompt builder needs for one suggestion.
type promptContext struct {
	Candidates  []string // shuffled, capped candidate names
	Extra       int      // candidates beyond the cap
	RecentPlays []recentPlay
	PartySize   int
}

// recentPlay is one history line for the prompt.
type recentPlay struct {
	Name string
	Ago  string // "today", "yesterday", "N days ago"
}

// buildPromptContext shuffles candidates so the model doesn't fixate on
// listing order, caps the list, and renders recent plays as relative days.
func buildPromptContext(candidates []store.Game, plays []store.Play, partySize int, now time.Time, rng *rand.Rand) *promptContext {
	names := make([]string, len(candidates))
	for i, g := range candidates {
		names[i] = g.Name
	}
	if rng != nil {
		rng.Shuffle(len(names), func(i, j int) { names[i], names[j] = names[j], names[i] })
	} else {
		rand.Shuffle(len(names), func(i, j int) { names[i], names[j] = names[j], names[i] })
	}

	extra := 0
	if len(names) > maxPromptCandidates {
		extra = len(names) - maxPromptCandidates
		names = names[:maxPromptCandidates]
	}

	pc := &promptContext{
		Candidates: names,
		Extra:      extra,
		PartySize:  partySize,
	}

	seen := make(map[int64]bool)
	for _, p := range plays {
		if seen[p.GameID] {
			continue
		}
		seen[p.GameID] = true
		pc.RecentPlays = append(pc.RecentPlays, recentPlay{
			Name: p.GameName,
			Ago:  relativeDay(p.PlayedAt, now),
		})
	}

	return pc
}

// relativeDay renders a timestamp as "today", "yesterday", or "N days ago"
// by calendar day, not 24-hour blocks.
func relativeDay(t, now time.Time) string {
	ty, tm, td := t.Date()
	ny, nm, nd := now.Date()
	day := time.Date(ty, tm, td, 0, 0, 0, 0, t.Location())
	today := time.Date(ny, nm, nd, 0, 0, 0, 0, now.Location())

	days := int(today.Sub(day).Hours() / 24)
	switch {
	case days <= 0:
		return "today"
	case days == 1:
		return "yesterday"
	default:
		return fmt.Sprintf("%d days ago", days)
	}
}
