package room

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ugaemi/prophunt-server/internal/game"
	"github.com/ugaemi/prophunt-server/internal/store"
	"github.com/ugaemi/prophunt-server/internal/ws"
)

var (
	ErrRoomFull       = errors.New("room is full")
	ErrNotWaiting     = errors.New("game already started")
	ErrNotPlaying     = errors.New("game is not in progress")
	ErrNotHost        = errors.New("only the host can start the game")
	ErrUnknownPlayer  = errors.New("player is not in this room")
	ErrNotEnoughUsers = errors.New("not enough players")
)

const saveTimeout = 5 * time.Second

// Member is a seat in the room. It outlives the connection so a player can
// reconnect to a running match.
type Member struct {
	ID        string `json:"id" msgpack:"id"`
	Nickname  string `json:"nickname" msgpack:"nickname"`
	Connected bool   `json:"connected" msgpack:"connected"`
}

// Room owns one match and serialises every tick and action on it.
type Room struct {
	Code   string         `json:"code"`
	State  game.RoomState `json:"state"`
	HostID string         `json:"host_id"`

	members map[string]*Member
	order   []string
	// Client mapping: player ID -> ws client
	clients map[string]*ws.Client

	cfg     game.Config
	match   *game.Match
	results store.ResultStore

	// Game loop control
	stopCh chan struct{}

	mu sync.RWMutex
}

// NewRoom creates a new room with the given code. Matches are played with
// cfg and recorded in results once finished.
func NewRoom(code string, cfg game.Config, results store.ResultStore) *Room {
	if results == nil {
		results = store.Discard
	}
	return &Room{
		Code:    code,
		State:   game.StateWaiting,
		cfg:     cfg,
		members: make(map[string]*Member),
		clients: make(map[string]*ws.Client),
		results: results,
	}
}

// AddPlayer seats a new member. The first member becomes host.
func (r *Room) AddPlayer(m *Member, client *ws.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.State != game.StateWaiting {
		return ErrNotWaiting
	}
	if len(r.members) >= r.cfg.MaxPlayers {
		return ErrRoomFull
	}

	m.Connected = client != nil
	r.members[m.ID] = m
	r.order = append(r.order, m.ID)
	if client != nil {
		r.clients[m.ID] = client
	}

	if len(r.members) == 1 {
		r.HostID = m.ID
	}
	return nil
}

// RemovePlayer handles a player leaving. Before the game the seat is freed;
// during the game it is kept and the player is marked as left in the match.
func (r *Room) RemovePlayer(playerID string) {
	r.mu.Lock()
	if _, ok := r.members[playerID]; !ok {
		r.mu.Unlock()
		return
	}
	delete(r.clients, playerID)

	if r.State != game.StatePlaying {
		r.removeMember(playerID)
		r.mu.Unlock()
		return
	}

	r.members[playerID].Connected = false
	if err := r.match.Leave(playerID); err != nil {
		slog.Warn("leave failed", "room", r.Code, "player", playerID, "error", err)
	}
	events, finished := r.match.Events(), r.match.Phase == game.PhaseFinished
	r.mu.Unlock()

	r.broadcastEvents(events)
	if finished {
		r.finish()
	}
}

// removeMember drops a seat and transfers host if needed.
// Caller must hold r.mu.
func (r *Room) removeMember(playerID string) {
	delete(r.members, playerID)
	for i, id := range r.order {
		if id == playerID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	// Transfer host if the host left
	if r.HostID == playerID {
		r.HostID = ""
		if len(r.order) > 0 {
			r.HostID = r.order[0]
		}
	}
}

// Reconnect binds a new connection to an existing seat. During a game the
// player rejoins the match where their body was left.
func (r *Room) Reconnect(playerID string, client *ws.Client) error {
	r.mu.Lock()
	m, ok := r.members[playerID]
	if !ok {
		r.mu.Unlock()
		return ErrUnknownPlayer
	}

	var events []game.Event
	if r.State == game.StatePlaying && !m.Connected {
		if err := r.match.Join(playerID); err != nil {
			r.mu.Unlock()
			return err
		}
		events = r.match.Events()
	}
	m.Connected = true
	r.clients[playerID] = client
	r.mu.Unlock()

	r.broadcastEvents(events)
	return nil
}

// Members returns the seats in join order.
func (r *Room) Members() []Member {
	r.mu.RLock()
	defer r.mu.RUnlock()
	members := make([]Member, 0, len(r.order))
	for _, id := range r.order {
		members = append(members, *r.members[id])
	}
	return members
}

// Info is the lobby view of a room.
type Info struct {
	Code    string   `json:"code" msgpack:"code"`
	State   string   `json:"state" msgpack:"state"`
	HostID  string   `json:"host_id" msgpack:"host_id"`
	Players []Member `json:"players" msgpack:"players"`
}

// Info returns the room's code, state, host and seats.
func (r *Room) Info() Info {
	members := r.Members()
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Info{
		Code:    r.Code,
		State:   r.State.String(),
		HostID:  r.HostID,
		Players: members,
	}
}

// HasPlayer reports whether the player holds a seat here.
func (r *Room) HasPlayer(playerID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.members[playerID]
	return ok
}

// PlayerCount returns the number of seats.
func (r *Room) PlayerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

// ConnectedCount returns the number of seats with a live connection.
func (r *Room) ConnectedCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// BroadcastMessage sends a message to all players in the room.
func (r *Room) BroadcastMessage(msg ws.Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, client := range r.clients {
		client.SendMessage(msg)
	}
}

// SendToPlayer sends a message to a specific player.
func (r *Room) SendToPlayer(playerID string, msg ws.Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if client, ok := r.clients[playerID]; ok {
		client.SendMessage(msg)
	}
}

// IsEmpty returns true if no player is connected.
func (r *Room) IsEmpty() bool {
	return r.ConnectedCount() == 0
}

// Snapshot returns the current match state. ok is false before the game starts.
func (r *Room) Snapshot() (snap game.Snapshot, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.match == nil {
		return game.Snapshot{}, false
	}
	return r.match.Snapshot(), true
}

type gameStartMessage struct {
	Snapshot game.Snapshot `json:"snapshot" msgpack:"snapshot"`
}

// StartGame sets up the match, broadcasts game_start with the full layout
// and starts the tick loop.
func (r *Room) StartGame(requestedBy string) error {
	r.mu.Lock()
	if r.State != game.StateWaiting {
		r.mu.Unlock()
		return ErrNotWaiting
	}
	if requestedBy != r.HostID {
		r.mu.Unlock()
		return ErrNotHost
	}
	if len(r.order) < r.cfg.MinPlayers {
		r.mu.Unlock()
		return fmt.Errorf("%w: %d of %d", ErrNotEnoughUsers, len(r.order), r.cfg.MinPlayers)
	}

	m, err := game.Setup(append([]string(nil), r.order...), r.cfg, nil)
	if err != nil {
		r.mu.Unlock()
		return err
	}
	// Seats whose connection dropped before the start begin as left.
	for _, id := range r.order {
		if !r.members[id].Connected {
			_ = m.Leave(id)
		}
	}
	m.Events()

	r.match = m
	r.State = game.StatePlaying
	r.stopCh = make(chan struct{})
	snap := m.Snapshot()
	stopCh := r.stopCh
	r.mu.Unlock()

	msg, _ := ws.NewMessage(ws.TypeGameStart, gameStartMessage{Snapshot: snap})
	r.BroadcastMessage(msg)

	slog.Info("game started", "room", r.Code, "players", len(snap.Players), "walls", len(snap.Layout.Walls))

	go r.gameLoop(time.Second/time.Duration(r.cfg.TickRate), stopCh)
	return nil
}

// Dispatch applies a player action immediately. Rejected actions return
// game.ErrInvalidAction and leave the match untouched.
func (r *Room) Dispatch(playerID string, action game.Action) error {
	r.mu.Lock()
	if r.State != game.StatePlaying {
		r.mu.Unlock()
		return ErrNotPlaying
	}
	err := r.match.Apply(playerID, action)
	events, finished := r.match.Events(), r.match.Phase == game.PhaseFinished
	r.mu.Unlock()

	r.broadcastEvents(events)
	if finished {
		r.finish()
	}
	return err
}

// StopGame aborts a running game without recording it.
func (r *Room) StopGame() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.State != game.StatePlaying {
		return
	}
	r.State = game.StateEnded
	close(r.stopCh)
	slog.Info("game aborted", "room", r.Code)
}

type gameOverMessage struct {
	Winner  string            `json:"winner" msgpack:"winner"`
	Results map[string]string `json:"results" msgpack:"results"`
}

// finish ends a match that reached Finished: stops the loop, broadcasts
// game_over and records the result. Safe to call more than once.
func (r *Room) finish() {
	r.mu.Lock()

	if r.State != game.StatePlaying {
		r.mu.Unlock()
		return
	}

	r.State = game.StateEnded

	// Signal the game loop to stop
	close(r.stopCh)
	snap := r.match.Snapshot()

	r.mu.Unlock()

	// Broadcast game over
	msg, _ := ws.NewMessage(ws.TypeGameOver, gameOverMessage{
		Winner:  snap.Winner,
		Results: snap.Results,
	})
	r.BroadcastMessage(msg)

	slog.Info("game ended", "room", r.Code, "winner", snap.Winner, "elapsed", snap.Elapsed)

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := r.results.SaveMatch(ctx, store.NewMatchRecord(r.Code, snap, time.Now())); err != nil {
		slog.Error("failed to record match", "room", r.Code, "error", err)
	}
}

func (r *Room) broadcastEvents(events []game.Event) {
	for _, e := range events {
		msg, err := ws.NewMessage(ws.TypeGameEvent, e)
		if err != nil {
			continue
		}
		r.BroadcastMessage(msg)
	}
}

// gameLoop advances the match once per interval until it finishes or the
// game is stopped.
func (r *Room) gameLoop(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			r.mu.Lock()
			if r.State != game.StatePlaying {
				r.mu.Unlock()
				return
			}
			r.match.Tick()
			snap := r.match.Snapshot()
			events, finished := r.match.Events(), r.match.Phase == game.PhaseFinished
			r.mu.Unlock()

			// The layout never changes after game_start.
			snap.Layout = nil
			msg, _ := ws.NewMessage(ws.TypeGameState, snap)
			r.BroadcastMessage(msg)
			r.broadcastEvents(events)

			if finished {
				r.finish()
				return
			}
		}
	}
}
