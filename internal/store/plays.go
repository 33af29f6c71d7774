package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// RecordPlay records that a game was played just now. partySize 0 means the
// size was not recorded.
func (s *SQLiteStore) RecordPlay(ctx context.Context, gameID int64, partySize int, notes string) (int64, error) {
	return s.RecordPlayAt(ctx, gameID, time.Now(), partySize, notes)
}

// RecordPlayAt records a play at an explicit time. Used to backfill history.
func (s *SQLiteStore) RecordPlayAt(ctx context.Context, gameID int64, playedAt time.Time, partySize int, notes string) (int64, error) {
	var size sql.NullInt64
	if partySize > 0 {
		size = sql.NullInt64{Int64: int64(partySize), Valid: true}
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO play_history (game_id, played_at_unix_ms, party_size, notes)
		VALUES (?, ?, ?, ?)
	`, gameID, playedAt.UnixMilli(), size, nullString(notes))
	if err != nil {
		return 0, fmt.Errorf("failed to record play for game %d: %w", gameID, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get play id: %w", err)
	}
	return id, nil
}

// RecentPlays returns plays from the last N days, newest first, joined with
// the game name.
func (s *SQLiteStore) RecentPlays(ctx context.Context, days int) ([]Play, error) {
	cutoff := time.Now().AddDate(0, 0, -days).UnixMilli()

	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.game_id, g.name, p.played_at_unix_ms, p.party_size, p.notes
		FROM play_history p
		JOIN games g ON p.game_id = g.id
		WHERE p.played_at_unix_ms >= ?
		ORDER BY p.played_at_unix_ms DESC
	`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent plays: %w", err)
	}
	defer rows.Close()

	var plays []Play
	for rows.Next() {
		var (
			p        Play
			playedMs int64
			size     sql.NullInt64
			notes    sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.GameID, &p.GameName, &playedMs, &size, &notes); err != nil {
			return nil, err
		}
		p.PlayedAt = time.UnixMilli(playedMs)
		p.PartySize = int(size.Int64)
		p.Notes = notes.String
		plays = append(plays, p)
	}
	return plays, rows.Err()
}
