package engine

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/runger/gamenight/internal/store"
)

func TestRelativeDay(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 8, 25, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"same afternoon", now.Add(-2 * time.Hour), "today"},
		{"this morning", time.Date(2026, 8, 25, 1, 0, 0, 0, time.UTC), "today"},
		{"late last night", time.Date(2026, 8, 24, 23, 30, 0, 0, time.UTC), "yesterday"},
		{"two days back", now.AddDate(0, 0, -2), "2 days ago"},
		{"a week back", now.AddDate(0, 0, -7), "7 days ago"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, relativeDay(tt.at, now))
		})
	}
}

func TestBuildPromptContextCapsCandidates(t *testing.T) {
	t.Parallel()

	var games []store.Game
	for i := 0; i < 14; i++ {
		games = append(games, store.Game{ID: int64(i), Name: fmt.Sprintf("Game %d", i)})
	}

	pc := buildPromptContext(games, nil, 4, time.Now(), rand.New(rand.NewSource(1)))
	assert.Len(t, pc.Candidates, maxPromptCandidates)
	assert.Equal(t, 4, pc.Extra)
	assert.Equal(t, 4, pc.PartySize)
}

func TestBuildPromptContextDeduplicatesPlays(t *testing.T) {
	t.Parallel()
	now := time.Now()

	plays := []store.Play{
		{GameID: 1, GameName: "Valheim", PlayedAt: now.Add(-time.Hour)},
		{GameID: 1, GameName: "Valheim", PlayedAt: now.AddDate(0, 0, -3)},
		{GameID: 2, GameName: "Among Us", PlayedAt: now.AddDate(0, 0, -1)},
	}

	pc := buildPromptContext([]store.Game{{ID: 3, Name: "Duo"}}, plays, 2, now, rand.New(rand.NewSource(1)))
	assert.Len(t, pc.RecentPlays, 2, "one line per game, most recent play wins")
	assert.Equal(t, "Valheim", pc.RecentPlays[0].Name)
	assert.Equal(t, "today", pc.RecentPlays[0].Ago)
}

func TestSuggestionPrompt(t *testing.T) {
	t.Parallel()

	pc := &promptContext{
		Candidates: []string{"Valheim", "Among Us"},
		Extra:      3,
		PartySize:  5,
		RecentPlays: []recentPlay{
			{Name: "Lethal Company", Ago: "yesterday"},
		},
	}

	prompt := suggestionPrompt(pc)
	assert.Contains(t, prompt, "5 players")
	assert.Contains(t, prompt, "Valheim, Among Us")
	assert.Contains(t, prompt, "(and 3 more)")
	assert.Contains(t, prompt, "Lethal Company (yesterday)")
}

func TestCasualPrompt(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hey", casualPrompt("hey", nil))

	withHistory := casualPrompt("you in?", []string{"mitch: games tonight?"})
	assert.Contains(t, withHistory, "mitch: games tonight?")
	assert.True(t, strings.HasSuffix(withHistory, "Reply to: you in?"))
}
