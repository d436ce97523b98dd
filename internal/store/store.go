package store

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ugaemi/prophunt-server/internal/game"
)

// MatchRecord is the stored outcome of a finished match.
type MatchRecord struct {
	ID         string         `json:"id"`
	RoomCode   string         `json:"room_code"`
	Winner     string         `json:"winner"`
	Duration   float64        `json:"duration"` // match time in seconds
	FinishedAt time.Time      `json:"finished_at"`
	Players    []PlayerResult `json:"players"`
}

// PlayerResult is one player's line in a MatchRecord.
type PlayerResult struct {
	PlayerID string `json:"player_id"`
	Role     string `json:"role"`
	Result   string `json:"result"`
}

// NewMatchRecord builds a record from the final snapshot of a match.
func NewMatchRecord(roomCode string, snap game.Snapshot, finishedAt time.Time) *MatchRecord {
	rec := &MatchRecord{
		ID:         uuid.New().String(),
		RoomCode:   roomCode,
		Winner:     snap.Winner,
		Duration:   snap.Elapsed,
		FinishedAt: finishedAt.UTC(),
		Players:    make([]PlayerResult, 0, len(snap.Players)),
	}
	for _, p := range snap.Players {
		rec.Players = append(rec.Players, PlayerResult{
			PlayerID: p.ID,
			Role:     p.Role,
			Result:   snap.Results[p.ID],
		})
	}
	return rec
}

// ResultStore defines the interface for persistent match history.
type ResultStore interface {
	// SaveMatch stores a finished match and its player results.
	SaveMatch(ctx context.Context, rec *MatchRecord) error
	// RecentMatches returns up to limit matches, newest first.
	RecentMatches(ctx context.Context, limit int) ([]MatchRecord, error)
	// Close releases database resources.
	Close() error
}

// Open picks a backend from the URL: PostgreSQL for postgres:// URLs,
// SQLite for anything else. An empty URL disables recording.
func Open(ctx context.Context, url string) (ResultStore, error) {
	switch {
	case url == "":
		return Discard, nil
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return NewPostgresStore(ctx, url)
	default:
		return NewSQLiteStore(ctx, url)
	}
}

// Discard is a ResultStore that records nothing.
var Discard ResultStore = discardStore{}

type discardStore struct{}

func (discardStore) SaveMatch(context.Context, *MatchRecord) error { return nil }

func (discardStore) RecentMatches(context.Context, int) ([]MatchRecord, error) { return nil, nil }

func (discardStore) Close() error { return nil }
