package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/prophunt-server/internal/game"
)

func TestAddPlayer_FirstIsHost(t *testing.T) {
	r, _, _ := setupTestRoom(t, testConfig(), "p1", "p2", "p3")

	assert.Equal(t, "p1", r.HostID)
	assert.Equal(t, 3, r.PlayerCount())

	ids := make([]string, 0, 3)
	for _, m := range r.Members() {
		ids = append(ids, m.ID)
		assert.True(t, m.Connected)
	}
	assert.Equal(t, []string{"p1", "p2", "p3"}, ids, "members keep join order")
}

func TestAddPlayer_Rejected(t *testing.T) {
	t.Run("full", func(t *testing.T) {
		cfg := testConfig()
		cfg.MaxPlayers = 2
		r, _, _ := setupTestRoom(t, cfg)
		assert.ErrorIs(t, r.AddPlayer(&Member{ID: "p3"}, mockClient("c3")), ErrRoomFull)
	})

	t.Run("game started", func(t *testing.T) {
		r, _, _ := setupTestRoom(t, testConfig())
		require.NoError(t, r.StartGame("p1"))
		defer r.StopGame()
		assert.ErrorIs(t, r.AddPlayer(&Member{ID: "p3"}, mockClient("c3")), ErrNotWaiting)
	})
}

func TestRemovePlayer_Waiting(t *testing.T) {
	tests := []struct {
		name     string
		leave    string
		wantHost string
	}{
		{"host leaves", "p1", "p2"},
		{"guest leaves", "p2", "p1"},
		{"unknown player", "ghost", "p1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _ := setupTestRoom(t, testConfig(), "p1", "p2", "p3")
			r.RemovePlayer(tt.leave)

			assert.Equal(t, tt.wantHost, r.HostID)
			assert.False(t, r.HasPlayer(tt.leave))
		})
	}
}

func TestRemovePlayer_LastLeaves(t *testing.T) {
	r, _, _ := setupTestRoom(t, testConfig(), "p1")
	r.RemovePlayer("p1")

	assert.True(t, r.IsEmpty())
	assert.Empty(t, r.HostID)
}

func TestRemovePlayer_DuringGameKeepsSeat(t *testing.T) {
	r, _, _ := setupTestRoom(t, testConfig(), "p1", "p2", "p3")
	require.NoError(t, r.StartGame("p1"))
	defer r.StopGame()

	r.RemovePlayer("p3")

	assert.True(t, r.HasPlayer("p3"), "seat is kept for a rejoin")
	assert.Equal(t, 2, r.ConnectedCount())
	assert.Equal(t, game.StatePlaying, roomState(r))

	snap, _ := r.Snapshot()
	assert.True(t, snap.Players[2].Left)
}

func TestRemovePlayer_HunterLeavingEndsGame(t *testing.T) {
	r, results, clients := setupTestRoom(t, testConfig())
	require.NoError(t, r.StartGame("p1"))

	r.RemovePlayer("p1")

	assert.Equal(t, game.StateEnded, roomState(r))
	require.Len(t, results.saved(), 1)
	assert.Equal(t, "props", results.saved()[0].Winner)
	assert.NotNil(t, findMessageByType(drainMessages(clients[1]), "game_over"))
}

func TestReconnect(t *testing.T) {
	t.Run("rejoins the running match", func(t *testing.T) {
		r, _, _ := setupTestRoom(t, testConfig(), "p1", "p2", "p3")
		require.NoError(t, r.StartGame("p1"))
		defer r.StopGame()

		r.RemovePlayer("p3")
		c := mockClient("client-p3-again")
		require.NoError(t, r.Reconnect("p3", c))

		assert.Equal(t, 3, r.ConnectedCount())
		snap, _ := r.Snapshot()
		assert.False(t, snap.Players[2].Left)
	})

	t.Run("swaps the connection of a live seat", func(t *testing.T) {
		r, _, _ := setupTestRoom(t, testConfig())
		c := mockClient("client-p2-again")
		require.NoError(t, r.Reconnect("p2", c))

		r.SendToPlayer("p2", mustMessage(t))
		assert.Len(t, c.Send, 1)
	})

	t.Run("unknown player", func(t *testing.T) {
		r, _, _ := setupTestRoom(t, testConfig())
		assert.ErrorIs(t, r.Reconnect("ghost", mockClient("c")), ErrUnknownPlayer)
	})
}
