package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS matches (
    id TEXT PRIMARY KEY,
    room_code TEXT NOT NULL,
    winner TEXT NOT NULL DEFAULT '',
    duration DOUBLE PRECISION NOT NULL DEFAULT 0,
    finished_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS match_players (
    match_id TEXT NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
    seat INTEGER NOT NULL,
    player_id TEXT NOT NULL,
    role TEXT NOT NULL,
    result TEXT NOT NULL,
    PRIMARY KEY (match_id, seat)
);
CREATE INDEX IF NOT EXISTS idx_matches_finished_at ON matches(finished_at DESC);
`

// PostgresStore implements ResultStore using PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to PostgreSQL and initializes the schema.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool}, nil
}

// SaveMatch stores a match and its players in one transaction.
func (s *PostgresStore) SaveMatch(ctx context.Context, rec *MatchRecord) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO matches (id, room_code, winner, duration, finished_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		rec.ID, rec.RoomCode, rec.Winner, rec.Duration, rec.FinishedAt)
	if err != nil {
		return fmt.Errorf("insert match: %w", err)
	}

	batch := &pgx.Batch{}
	for seat, p := range rec.Players {
		batch.Queue(
			`INSERT INTO match_players (match_id, seat, player_id, role, result)
			 VALUES ($1, $2, $3, $4, $5)`,
			rec.ID, seat, p.PlayerID, p.Role, p.Result)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert match players: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// RecentMatches returns up to limit matches, newest first.
func (s *PostgresStore) RecentMatches(ctx context.Context, limit int) ([]MatchRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, room_code, winner, duration, finished_at
		 FROM matches ORDER BY finished_at DESC, id LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	matches, err := pgx.CollectRows(rows, scanMatch)
	if err != nil {
		return nil, err
	}

	for i := range matches {
		players, err := s.loadPlayers(ctx, matches[i].ID)
		if err != nil {
			return nil, err
		}
		matches[i].Players = players
	}
	return matches, nil
}

func (s *PostgresStore) loadPlayers(ctx context.Context, matchID string) ([]PlayerResult, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT player_id, role, result FROM match_players
		 WHERE match_id = $1 ORDER BY seat`, matchID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (PlayerResult, error) {
		var p PlayerResult
		err := row.Scan(&p.PlayerID, &p.Role, &p.Result)
		return p, err
	})
}

// Close releases database resources.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func scanMatch(row pgx.CollectableRow) (MatchRecord, error) {
	var rec MatchRecord
	err := row.Scan(&rec.ID, &rec.RoomCode, &rec.Winner, &rec.Duration, &rec.FinishedAt)
	return rec, err
}
