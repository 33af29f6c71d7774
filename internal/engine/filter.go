package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/runger/gamenight/internal/store"
)

// relaxedLookbackDays bounds the history scan for least-recently-played
// ordering. Anything older counts as "long enough ago".
const relaxedLookbackDays = 90

// lookbackDays returns how many days of history the cooldown filter needs.
// The window must cover the cooldown itself (rounded up to whole days) and
// the recent-plays context shown to the model.
func lookbackDays(cooldownHours, recentPlaysWindow int) int {
	days := cooldownHours/24 + 1
	if recentPlaysWindow > days {
		days = recentPlaysWindow
	}
	return days
}

// Filter returns games that fit the party size and were not played within
// the cooldown window. Order follows the store's listing order.
func (e *Engine) Filter(ctx context.Context, count int, now time.Time) ([]store.Game, error) {
	games, err := e.store.GamesForPlayers(ctx, count)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}
	if len(games) == 0 {
		return nil, nil
	}

	days := lookbackDays(e.cfg.CooldownHours, e.cfg.RecentPlaysWindow)
	plays, err := e.store.RecentPlays(ctx, days)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent plays: %w", err)
	}

	cutoff := now.Add(-time.Duration(e.cfg.CooldownHours) * time.Hour)
	cooling := make(map[int64]bool)
	for _, p := range plays {
		if p.PlayedAt.After(cutoff) {
			cooling[p.GameID] = true
		}
	}

	out := make([]store.Game, 0, len(games))
	for _, g := range games {
		if !cooling[g.ID] {
			out = append(out, g)
		}
	}
	return out, nil
}

// LeastRecent returns games that fit the party size ordered by how long ago
// they were last played, least recent first. Never-played games sort before
// everything else. The list is capped at the configured maximum. Used when
// the cooldown filter leaves nothing.
func (e *Engine) LeastRecent(ctx context.Context, count int) ([]store.Game, error) {
	games, err := e.store.GamesForPlayers(ctx, count)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}
	if len(games) == 0 {
		return nil, nil
	}

	plays, err := e.store.RecentPlays(ctx, relaxedLookbackDays)
	if err != nil {
		return nil, fmt.Errorf("failed to load play history: %w", err)
	}

	// Zero time = never played within the lookback, which sorts first.
	lastPlayed := make(map[int64]time.Time)
	for _, p := range plays {
		if p.PlayedAt.After(lastPlayed[p.GameID]) {
			lastPlayed[p.GameID] = p.PlayedAt
		}
	}

	sort.SliceStable(games, func(i, j int) bool {
		return lastPlayed[games[i].ID].Before(lastPlayed[games[j].ID])
	})

	if len(games) > e.cfg.MaxSuggestions {
		games = games[:e.cfg.MaxSuggestions]
	}
	return games, nil
}

// NoMatchMessage explains that nothing in the library fits the party size,
// naming up to three games whose range is close (within two players on
// either side).
func NoMatchMessage(games []store.Game, count int) string {
	var nearby []string
	for _, g := range games {
		if g.MinPlayers <= count+2 && g.MaxPlayers >= count-2 {
			nearby = append(nearby, fmt.Sprintf("%s (%d-%d)", g.Name, g.MinPlayers, g.MaxPlayers))
			if len(nearby) == 3 {
				break
			}
		}
	}

	if len(nearby) == 0 {
		return fmt.Sprintf("hmm, nothing in the library works for %d... maybe add some games for that size?", count)
	}
	return fmt.Sprintf("nothing's a perfect fit for %d, but close: %s", count, strings.Join(nearby, ", "))
}
