package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS matches (
	id TEXT PRIMARY KEY,
	room_code TEXT NOT NULL,
	winner TEXT NOT NULL DEFAULT '',
	duration REAL NOT NULL DEFAULT 0,
	finished_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS match_players (
	match_id TEXT NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
	seat INTEGER NOT NULL,
	player_id TEXT NOT NULL,
	role TEXT NOT NULL,
	result TEXT NOT NULL,
	PRIMARY KEY (match_id, seat)
);
CREATE INDEX IF NOT EXISTS idx_matches_finished_at ON matches(finished_at);
`

// SQLiteStore implements ResultStore on an embedded SQLite database.
// finished_at is stored as Unix milliseconds.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at dsn and initializes the
// schema.
func NewSQLiteStore(ctx context.Context, dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// Every connection to :memory: is a separate database.
	if strings.Contains(dsn, ":memory:") {
		db.SetMaxOpenConns(1)
	}

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA foreign_keys=ON"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// SaveMatch stores a match and its players in one transaction.
func (s *SQLiteStore) SaveMatch(ctx context.Context, rec *MatchRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO matches (id, room_code, winner, duration, finished_at) VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.RoomCode, rec.Winner, rec.Duration, rec.FinishedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("insert match: %w", err)
	}

	for seat, p := range rec.Players {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO match_players (match_id, seat, player_id, role, result) VALUES (?, ?, ?, ?, ?)`,
			rec.ID, seat, p.PlayerID, p.Role, p.Result)
		if err != nil {
			return fmt.Errorf("insert match player: %w", err)
		}
	}

	return tx.Commit()
}

// RecentMatches returns up to limit matches, newest first.
func (s *SQLiteStore) RecentMatches(ctx context.Context, limit int) ([]MatchRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, room_code, winner, duration, finished_at
		 FROM matches ORDER BY finished_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []MatchRecord
	for rows.Next() {
		var rec MatchRecord
		var finishedAt int64
		if err := rows.Scan(&rec.ID, &rec.RoomCode, &rec.Winner, &rec.Duration, &finishedAt); err != nil {
			return nil, err
		}
		rec.FinishedAt = time.UnixMilli(finishedAt).UTC()
		matches = append(matches, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	for i := range matches {
		players, err := s.loadPlayers(ctx, matches[i].ID)
		if err != nil {
			return nil, err
		}
		matches[i].Players = players
	}
	return matches, nil
}

func (s *SQLiteStore) loadPlayers(ctx context.Context, matchID string) ([]PlayerResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT player_id, role, result FROM match_players WHERE match_id = ? ORDER BY seat`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []PlayerResult
	for rows.Next() {
		var p PlayerResult
		if err := rows.Scan(&p.PlayerID, &p.Role, &p.Result); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
