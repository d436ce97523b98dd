package handler

import (
	"log/slog"
	"sync"

	"github.com/ugaemi/prophunt-server/internal/auth"
	"github.com/ugaemi/prophunt-server/internal/room"
	"github.com/ugaemi/prophunt-server/internal/ws"
)

// Router dispatches incoming messages to the appropriate handler.
type Router struct {
	session  *SessionHandler
	lobby    *LobbyHandler
	gameplay *GameplayHandler

	// playerMap tracks client ID -> player ID mapping, shared across handlers.
	playerMap map[string]string
	mu        sync.RWMutex
}

// NewRouter creates a new message router. Seats handed out on create and
// join are signed with seats so a dropped client can rejoin.
func NewRouter(rm *room.Manager, seats *auth.SeatIssuer) *Router {
	r := &Router{
		playerMap: make(map[string]string),
	}
	r.session = NewSessionHandler(rm, seats, r)
	r.lobby = NewLobbyHandler(rm, seats, r)
	r.gameplay = NewGameplayHandler(rm, r)
	return r
}

// RegisterPlayer maps a client ID to a player ID.
func (r *Router) RegisterPlayer(clientID, playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.playerMap[clientID] = playerID
}

// UnregisterPlayer removes a client's player mapping.
func (r *Router) UnregisterPlayer(clientID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.playerMap, clientID)
}

// GetPlayerID returns the player ID for a client, or empty string if not found.
func (r *Router) GetPlayerID(clientID string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.playerMap[clientID]
}

// HandleMessage decodes and routes an incoming client message.
func (r *Router) HandleMessage(cm *ws.ClientMessage) {
	msg, err := cm.Decode()
	if err != nil {
		slog.Warn("invalid message format", "client", cm.Client.ID, "error", err)
		cm.Client.SendMessage(ws.NewErrorMessage("invalid message format"))
		return
	}

	switch msg.Type {
	// Lobby messages
	case ws.TypeCreateRoom:
		r.lobby.HandleCreateRoom(cm.Client, msg)
	case ws.TypeJoinRoom:
		r.lobby.HandleJoinRoom(cm.Client, msg)
	case ws.TypeRejoin:
		r.session.HandleRejoin(cm.Client, msg)
	case ws.TypeLeaveRoom:
		r.lobby.HandleLeaveRoom(cm.Client, msg)
	case ws.TypeStartGame:
		r.lobby.HandleStartGame(cm.Client, msg)

	// Gameplay messages
	case ws.TypePlayerMove:
		r.gameplay.HandlePlayerMove(cm.Client, msg)
	case ws.TypeCatch:
		r.gameplay.HandleCatch(cm.Client, msg)
	case ws.TypeScan:
		r.gameplay.HandleScan(cm.Client, msg)
	case ws.TypeSetDisguise:
		r.gameplay.HandleSetDisguise(cm.Client, msg)

	default:
		slog.Warn("unknown message type", "type", msg.Type, "client", cm.Client.ID)
		cm.Client.SendMessage(ws.NewErrorMessage("unknown message type: " + msg.Type))
	}
}

// HandleDisconnect handles client disconnection.
func (r *Router) HandleDisconnect(client *ws.Client) {
	r.lobby.HandleDisconnect(client)
}

// roomOf returns the room and player ID bound to a client, or reports
// "not in a room" to the client.
func (r *Router) roomOf(rm *room.Manager, client *ws.Client) (*room.Room, string) {
	playerID := r.GetPlayerID(client.ID)
	if playerID == "" {
		client.SendMessage(ws.NewErrorMessage("not in a room"))
		return nil, ""
	}
	found := rm.FindRoomByPlayerID(playerID)
	if found == nil {
		client.SendMessage(ws.NewErrorMessage("not in a room"))
		return nil, ""
	}
	return found, playerID
}
