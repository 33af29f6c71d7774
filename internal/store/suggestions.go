package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// RecordSuggestion logs that a game was suggested. gameID may be nil for
// generic suggestions that name no specific game.
func (s *SQLiteStore) RecordSuggestion(ctx context.Context, gameID *int64, contextJSON string) (int64, error) {
	var gid sql.NullInt64
	if gameID != nil {
		gid = sql.NullInt64{Int64: *gameID, Valid: true}
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO suggestions (game_id, suggested_at_unix_ms, context)
		VALUES (?, ?, ?)
	`, gid, time.Now().UnixMilli(), nullString(contextJSON))
	if err != nil {
		return 0, fmt.Errorf("failed to record suggestion: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get suggestion id: %w", err)
	}
	return id, nil
}

// MarkSuggestionAccepted flips a suggestion to accepted. Acceptance is
// settable exactly once: returns false when the id is unknown or the
// suggestion was already accepted.
func (s *SQLiteStore) MarkSuggestionAccepted(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE suggestions SET accepted = 1
		WHERE id = ? AND accepted = 0
	`, id)
	if err != nil {
		return false, fmt.Errorf("failed to mark suggestion %d accepted: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SuggestionStats returns suggestion analytics: totals, acceptance rate,
// recent volume, and the five most-suggested games.
func (s *SQLiteStore) SuggestionStats(ctx context.Context) (*SuggestionStats, error) {
	stats := &SuggestionStats{}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM suggestions`).Scan(&stats.Total); err != nil {
		return nil, fmt.Errorf("failed to count suggestions: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM suggestions WHERE accepted = 1`).Scan(&stats.Accepted); err != nil {
		return nil, fmt.Errorf("failed to count accepted suggestions: %w", err)
	}

	cutoff := time.Now().AddDate(0, 0, -30).UnixMilli()
	if err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM suggestions WHERE suggested_at_unix_ms >= ?
	`, cutoff).Scan(&stats.Last30Days); err != nil {
		return nil, fmt.Errorf("failed to count recent suggestions: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT g.name, COUNT(*) AS n
		FROM suggestions s
		JOIN games g ON s.game_id = g.id
		GROUP BY g.name
		ORDER BY n DESC, g.name
		LIMIT 5
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query top suggested games: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tg TopGame
		if err := rows.Scan(&tg.Name, &tg.Count); err != nil {
			return nil, err
		}
		stats.TopGames = append(stats.TopGames, tg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if stats.Total > 0 {
		stats.AcceptanceRate = float64(stats.Accepted) / float64(stats.Total) * 100
	}

	return stats, nil
}
