package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// AddGame adds a game to the library. Returns ErrDuplicateName if a game
// with the same name (ignoring case) already exists.
func (s *SQLiteStore) AddGame(ctx context.Context, name string, minPlayers, maxPlayers int, category string, tags []string) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("game name must not be empty")
	}
	if minPlayers < 1 {
		return 0, fmt.Errorf("min_players must be >= 1 (got %d)", minPlayers)
	}
	if minPlayers > maxPlayers {
		return 0, fmt.Errorf("min_players (%d) must be <= max_players (%d)", minPlayers, maxPlayers)
	}

	var tagsJSON sql.NullString
	if len(tags) > 0 {
		data, err := json.Marshal(tags)
		if err != nil {
			return 0, fmt.Errorf("failed to encode tags: %w", err)
		}
		tagsJSON = sql.NullString{String: string(data), Valid: true}
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO games (name, min_players, max_players, category, tags, added_at_unix_ms)
		VALUES (?, ?, ?, ?, ?, ?)
	`, name, minPlayers, maxPlayers, nullString(category), tagsJSON, time.Now().UnixMilli())
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateName
		}
		return 0, fmt.Errorf("failed to add game: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get game id: %w", err)
	}
	return id, nil
}

// ListGames returns all games ordered by name.
func (s *SQLiteStore) ListGames(ctx context.Context) ([]Game, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, min_players, max_players, category, tags, added_at_unix_ms
		FROM games
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	return scanGames(rows)
}

// GamesForPlayers returns games whose capacity range contains count.
func (s *SQLiteStore) GamesForPlayers(ctx context.Context, count int) ([]Game, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, min_players, max_players, category, tags, added_at_unix_ms
		FROM games
		WHERE min_players <= ? AND max_players >= ?
		ORDER BY name
	`, count, count)
	if err != nil {
		return nil, fmt.Errorf("failed to query games for %d players: %w", count, err)
	}
	defer rows.Close()

	return scanGames(rows)
}

// GameByName finds a game by name, case-insensitive exact match.
// Returns (nil, nil) when no game matches.
func (s *SQLiteStore) GameByName(ctx context.Context, name string) (*Game, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, min_players, max_players, category, tags, added_at_unix_ms
		FROM games
		WHERE name = ? COLLATE NOCASE
	`, name)

	game, err := scanGame(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find game %q: %w", name, err)
	}
	return game, nil
}

// GameByID returns the game with the given id, or (nil, nil) if absent.
func (s *SQLiteStore) GameByID(ctx context.Context, id int64) (*Game, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, min_players, max_players, category, tags, added_at_unix_ms
		FROM games
		WHERE id = ?
	`, id)

	game, err := scanGame(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game %d: %w", id, err)
	}
	return game, nil
}

// DeleteGame removes a game. Play history cascades away with it; the
// suggestion log keeps its rows with a nulled game reference. Returns false
// when no game had the given id.
func (s *SQLiteStore) DeleteGame(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete game %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ClearAll removes all games, play history, and suggestions.
func (s *SQLiteStore) ClearAll(ctx context.Context) error {
	// Delete in dependency order
	for _, stmt := range []string{
		`DELETE FROM suggestions`,
		`DELETE FROM play_history`,
		`DELETE FROM games`,
	} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to clear library: %w", err)
		}
	}
	return nil
}

// Stats returns overall row counts.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	queries := []struct {
		sql string
		dst *int
	}{
		{`SELECT COUNT(*) FROM games`, &stats.Games},
		{`SELECT COUNT(*) FROM play_history`, &stats.Plays},
		{`SELECT COUNT(*) FROM suggestions`, &stats.Suggestions},
	}
	for _, q := range queries {
		if err := s.db.QueryRowContext(ctx, q.sql).Scan(q.dst); err != nil {
			return nil, fmt.Errorf("failed to read stats: %w", err)
		}
	}
	return stats, nil
}

// scanner abstracts *sql.Row and *sql.Rows for the shared scan helpers.
type scanner interface {
	Scan(dest ...any) error
}

func scanGame(row scanner) (*Game, error) {
	var (
		g        Game
		category sql.NullString
		tags     sql.NullString
		addedMs  int64
	)
	if err := row.Scan(&g.ID, &g.Name, &g.MinPlayers, &g.MaxPlayers, &category, &tags, &addedMs); err != nil {
		return nil, err
	}
	g.Category = category.String
	g.AddedAt = time.UnixMilli(addedMs)
	if tags.Valid && tags.String != "" {
		if err := json.Unmarshal([]byte(tags.String), &g.Tags); err != nil {
			return nil, fmt.Errorf("failed to decode tags for game %d: %w", g.ID, err)
		}
	}
	return &g, nil
}

func scanGames(rows *sql.Rows) ([]Game, error) {
	var games []Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, *g)
	}
	return games, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
