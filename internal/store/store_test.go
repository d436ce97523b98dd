package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/prophunt-server/internal/game"
)

func testRecord(code string, finishedAt time.Time) *MatchRecord {
	return &MatchRecord{
		ID:         "match-" + code,
		RoomCode:   code,
		Winner:     "props",
		Duration:   42.5,
		FinishedAt: finishedAt.UTC().Truncate(time.Millisecond),
		Players: []PlayerResult{
			{PlayerID: "p1", Role: "hunter", Result: "LOST"},
			{PlayerID: "p2", Role: "hider", Result: "WON"},
			{PlayerID: "p3", Role: "hider", Result: "ABANDONED"},
		},
	}
}

func setupSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_SaveAndRecent(t *testing.T) {
	s := setupSQLiteStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, code := range []string{"AAAA", "BBBB", "CCCC"} {
		require.NoError(t, s.SaveMatch(ctx, testRecord(code, base.Add(time.Duration(i)*time.Minute))))
	}

	recent, err := s.RecentMatches(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "CCCC", recent[0].RoomCode)
	assert.Equal(t, "BBBB", recent[1].RoomCode)

	assert.Equal(t, *testRecord("CCCC", base.Add(2*time.Minute)), recent[0])
}

func TestSQLiteStore_DuplicateIDRollsBack(t *testing.T) {
	s := setupSQLiteStore(t)
	ctx := context.Background()
	rec := testRecord("AAAA", time.Now())

	require.NoError(t, s.SaveMatch(ctx, rec))
	assert.Error(t, s.SaveMatch(ctx, rec))

	recent, err := s.RecentMatches(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Len(t, recent[0].Players, 3)
}

func TestSQLiteStore_Empty(t *testing.T) {
	s := setupSQLiteStore(t)

	recent, err := s.RecentMatches(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestSQLiteStore_PersistsToFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	s, err := NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.SaveMatch(ctx, testRecord("AAAA", time.Now())))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	defer s.Close()
	recent, err := s.RecentMatches(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, Discard, s)
	assert.NoError(t, s.SaveMatch(ctx, testRecord("AAAA", time.Now())))

	s, err = Open(ctx, fmt.Sprintf("file:%s", filepath.Join(t.TempDir(), "open.db")))
	require.NoError(t, err)
	defer s.Close()
	assert.IsType(t, &SQLiteStore{}, s)
}

func TestNewMatchRecord(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.FirstPlayerHunter = true
	cfg.LobbyDuration = 0
	cfg.HidingDuration = 0
	cfg.Seed = 3
	m, err := game.Setup([]string{"hunter", "hider"}, cfg, nil)
	require.NoError(t, err)
	m.Tick()
	require.NoError(t, m.Leave("hunter"))

	finished := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rec := NewMatchRecord("ROOM", m.Snapshot(), finished)

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "ROOM", rec.RoomCode)
	assert.Equal(t, "props", rec.Winner)
	assert.InDelta(t, 0.05, rec.Duration, 1e-9)
	assert.Equal(t, finished, rec.FinishedAt)
	assert.Equal(t, []PlayerResult{
		{PlayerID: "hunter", Role: "hunter", Result: "ABANDONED"},
		{PlayerID: "hider", Role: "hider", Result: "WON"},
	}, rec.Players)
}
