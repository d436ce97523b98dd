package handler

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/ugaemi/prophunt-server/internal/auth"
	"github.com/ugaemi/prophunt-server/internal/game"
	"github.com/ugaemi/prophunt-server/internal/room"
	"github.com/ugaemi/prophunt-server/internal/ws"
)

// SessionHandler reattaches a new connection to a seat held by a seat token.
type SessionHandler struct {
	rm     *room.Manager
	seats  *auth.SeatIssuer
	router *Router
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(rm *room.Manager, seats *auth.SeatIssuer, router *Router) *SessionHandler {
	return &SessionHandler{
		rm:     rm,
		seats:  seats,
		router: router,
	}
}

type rejoinRequest struct {
	SeatToken string `json:"seat_token"`
}

type rejoinResponse struct {
	Code     string `json:"code" msgpack:"code"`
	PlayerID string `json:"player_id" msgpack:"player_id"`
	// Snapshot carries the full state, layout included, when a game is running.
	Snapshot *game.Snapshot `json:"snapshot,omitempty" msgpack:"snapshot,omitempty"`
}

// HandleRejoin verifies the seat token and binds the client to its seat.
func (h *SessionHandler) HandleRejoin(client *ws.Client, msg ws.Message) {
	var req rejoinRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil || req.SeatToken == "" {
		client.SendMessage(ws.NewErrorMessage("seat token is required"))
		return
	}

	seat, err := h.seats.Verify(req.SeatToken)
	if err != nil {
		slog.Warn("seat token rejected", "client", client.ID, "error", err)
		client.SendMessage(ws.NewErrorMessage("invalid seat token"))
		return
	}

	r := h.rm.GetRoom(seat.RoomCode)
	if r == nil {
		client.SendMessage(ws.NewErrorMessage("room not found"))
		return
	}

	if err := r.Reconnect(seat.PlayerID, client); err != nil {
		slog.Warn("rejoin failed", "room", r.Code, "player", seat.PlayerID, "error", err)
		switch {
		case errors.Is(err, room.ErrUnknownPlayer):
			client.SendMessage(ws.NewErrorMessage("seat no longer exists"))
		default:
			client.SendMessage(ws.NewErrorMessage("could not rejoin"))
		}
		return
	}
	h.router.RegisterPlayer(client.ID, seat.PlayerID)

	resp := rejoinResponse{Code: r.Code, PlayerID: seat.PlayerID}
	if snap, ok := r.Snapshot(); ok {
		resp.Snapshot = &snap
	}
	out, _ := ws.NewMessage(ws.TypeRejoin, resp)
	client.SendMessage(out)

	broadcastRoomInfo(r)

	slog.Info("player rejoined", "player", seat.PlayerID, "room", r.Code)
}
