package room

import (
	"log/slog"
	"sync"

	"github.com/ugaemi/prophunt-server/internal/game"
	"github.com/ugaemi/prophunt-server/internal/store"
)

// Manager manages all active rooms.
type Manager struct {
	rooms map[string]*Room // code -> room
	mu    sync.RWMutex

	cfg     game.Config
	results store.ResultStore
}

// NewManager creates a room manager whose rooms play with cfg and record
// finished matches in results.
func NewManager(cfg game.Config, results store.ResultStore) *Manager {
	return &Manager{
		rooms:   make(map[string]*Room),
		cfg:     cfg,
		results: results,
	}
}

// Config returns the match settings new rooms are created with.
func (m *Manager) Config() game.Config {
	return m.cfg
}

// CreateRoom creates a new room and returns it.
func (m *Manager) CreateRoom() (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	code, err := GenerateCode(func(code string) bool {
		_, ok := m.rooms[code]
		return ok
	})
	if err != nil {
		return nil, err
	}
	room := NewRoom(code, m.cfg, m.results)
	m.rooms[code] = room

	slog.Info("room created", "code", code)
	return room, nil
}

// GetRoom returns a room by its code.
func (m *Manager) GetRoom(code string) *Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rooms[code]
}

// RemoveRoom stops any running game and removes the room.
func (m *Manager) RemoveRoom(code string) {
	m.mu.Lock()
	room, ok := m.rooms[code]
	delete(m.rooms, code)
	m.mu.Unlock()

	if !ok {
		return
	}
	room.StopGame()
	slog.Info("room removed", "code", code)
}

// RoomCount returns the number of active rooms.
func (m *Manager) RoomCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

// FindRoomByPlayerID finds the room holding a seat for the player.
func (m *Manager) FindRoomByPlayerID(playerID string) *Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, room := range m.rooms {
		if room.HasPlayer(playerID) {
			return room
		}
	}
	return nil
}

// Shutdown aborts every running game.
func (m *Manager) Shutdown() {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, room := range m.rooms {
		room.StopGame()
	}
}
