// Package store persists the game library, play history, and suggestion log
// in SQLite.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrDuplicateName is returned when adding a game whose name already exists
// (names are unique ignoring case).
var ErrDuplicateName = errors.New("game name already exists")

// Game is a suggestable entry in the library. Games are created via AddGame
// and never mutated in place except deletion.
type Game struct {
	ID         int64
	Name       string
	MinPlayers int
	MaxPlayers int
	Category   string   // optional label, e.g. "co-op", "party"
	Tags       []string // order-preserving for display
	AddedAt    time.Time
}

// SupportsPlayers reports whether the game's capacity range contains count.
func (g *Game) SupportsPlayers(count int) bool {
	return g.MinPlayers <= count && count <= g.MaxPlayers
}

// Play records that a game was played. Immutable once created; removed only
// by cascade when its game is deleted.
type Play struct {
	ID        int64
	GameID    int64
	GameName  string // joined from games for display
	PlayedAt  time.Time
	PartySize int // 0 = not recorded
	Notes     string
}

// Suggestion records that a game was proposed. The game reference is nulled
// (not cascaded) when the game is deleted, so aggregate suggestion counts
// survive library edits.
type Suggestion struct {
	ID          int64
	GameID      *int64 // nil for generic suggestions or deleted games
	SuggestedAt time.Time
	Context     string // opaque serialized metadata
	Accepted    bool
}

// Stats holds overall row counts.
type Stats struct {
	Games       int
	Plays       int
	Suggestions int
}

// TopGame is one entry in the most-suggested ranking.
type TopGame struct {
	Name  string
	Count int
}

// SuggestionStats holds suggestion analytics.
type SuggestionStats struct {
	Total          int
	Accepted       int
	AcceptanceRate float64 // percent, 0 when no suggestions
	Last30Days     int
	TopGames       []TopGame
}

// Store is the persistence interface for the suggestion engine and CLI.
type Store interface {
	AddGame(ctx context.Context, name string, minPlayers, maxPlayers int, category string, tags []string) (int64, error)
	ListGames(ctx context.Context) ([]Game, error)
	GamesForPlayers(ctx context.Context, count int) ([]Game, error)
	GameByName(ctx context.Context, name string) (*Game, error)
	GameByID(ctx context.Context, id int64) (*Game, error)
	DeleteGame(ctx context.Context, id int64) (bool, error)

	RecordPlay(ctx context.Context, gameID int64, partySize int, notes string) (int64, error)
	RecordPlayAt(ctx context.Context, gameID int64, playedAt time.Time, partySize int, notes string) (int64, error)
	RecentPlays(ctx context.Context, days int) ([]Play, error)

	RecordSuggestion(ctx context.Context, gameID *int64, contextJSON string) (int64, error)
	MarkSuggestionAccepted(ctx context.Context, id int64) (bool, error)

	Stats(ctx context.Context) (*Stats, error)
	SuggestionStats(ctx context.Context) (*SuggestionStats, error)
	ClearAll(ctx context.Context) error
}
