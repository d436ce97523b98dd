package handler

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ugaemi/prophunt-server/internal/auth"
	"github.com/ugaemi/prophunt-server/internal/room"
	"github.com/ugaemi/prophunt-server/internal/ws"
)

// LobbyHandler handles lobby-related messages.
type LobbyHandler struct {
	rm     *room.Manager
	seats  *auth.SeatIssuer
	router *Router
}

// NewLobbyHandler creates a new lobby handler.
func NewLobbyHandler(rm *room.Manager, seats *auth.SeatIssuer, router *Router) *LobbyHandler {
	return &LobbyHandler{
		rm:     rm,
		seats:  seats,
		router: router,
	}
}

type createRoomRequest struct {
	Nickname string `json:"nickname"`
}

type seatResponse struct {
	Code      string `json:"code" msgpack:"code"`
	PlayerID  string `json:"player_id" msgpack:"player_id"`
	SeatToken string `json:"seat_token" msgpack:"seat_token"`
}

// HandleCreateRoom handles room creation.
func (h *LobbyHandler) HandleCreateRoom(client *ws.Client, msg ws.Message) {
	var req createRoomRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil || req.Nickname == "" {
		client.SendMessage(ws.NewErrorMessage("nickname is required"))
		return
	}
	if h.router.GetPlayerID(client.ID) != "" {
		client.SendMessage(ws.NewErrorMessage("already in a room"))
		return
	}

	r, err := h.rm.CreateRoom()
	if err != nil {
		slog.Error("failed to create room", "error", err)
		client.SendMessage(ws.NewErrorMessage("internal error"))
		return
	}
	h.seat(client, r, ws.TypeCreateRoom, req.Nickname)
}

type joinRoomRequest struct {
	Code     string `json:"code"`
	Nickname string `json:"nickname"`
}

// HandleJoinRoom handles joining an existing room.
func (h *LobbyHandler) HandleJoinRoom(client *ws.Client, msg ws.Message) {
	var req joinRoomRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil || req.Code == "" || req.Nickname == "" {
		client.SendMessage(ws.NewErrorMessage("code and nickname are required"))
		return
	}
	if h.router.GetPlayerID(client.ID) != "" {
		client.SendMessage(ws.NewErrorMessage("already in a room"))
		return
	}

	r := h.rm.GetRoom(req.Code)
	if r == nil {
		client.SendMessage(ws.NewErrorMessage("room not found"))
		return
	}
	h.seat(client, r, ws.TypeJoinRoom, req.Nickname)
}

// seat adds the client to r under a fresh player ID and replies with a
// signed seat token.
func (h *LobbyHandler) seat(client *ws.Client, r *room.Room, replyType, nickname string) {
	member := &room.Member{ID: uuid.NewString(), Nickname: nickname}
	if err := r.AddPlayer(member, client); err != nil {
		client.SendMessage(ws.NewErrorMessage(err.Error()))
		if r.PlayerCount() == 0 {
			h.rm.RemoveRoom(r.Code)
		}
		return
	}

	token, err := h.seats.Issue(auth.Seat{RoomCode: r.Code, PlayerID: member.ID})
	if err != nil {
		slog.Error("failed to issue seat token", "error", err)
		r.RemovePlayer(member.ID)
		client.SendMessage(ws.NewErrorMessage("internal error"))
		return
	}
	h.router.RegisterPlayer(client.ID, member.ID)

	resp, _ := ws.NewMessage(replyType, seatResponse{
		Code:      r.Code,
		PlayerID:  member.ID,
		SeatToken: token,
	})
	client.SendMessage(resp)

	broadcastRoomInfo(r)

	slog.Info("player seated", "player", member.ID, "nickname", nickname, "room", r.Code)
}

// HandleStartGame starts the match. Only the host may start it.
func (h *LobbyHandler) HandleStartGame(client *ws.Client, _ ws.Message) {
	r, playerID := h.router.roomOf(h.rm, client)
	if r == nil {
		return
	}

	if err := r.StartGame(playerID); err != nil {
		slog.Warn("start game rejected", "room", r.Code, "player", playerID, "error", err)
		client.SendMessage(ws.NewErrorMessage(startError(err)))
		return
	}
	broadcastRoomInfo(r)
}

// startError keeps configuration details out of client messages.
func startError(err error) string {
	switch {
	case errors.Is(err, room.ErrNotHost),
		errors.Is(err, room.ErrNotWaiting),
		errors.Is(err, room.ErrNotEnoughUsers):
		return err.Error()
	default:
		return "could not start game"
	}
}

// HandleLeaveRoom handles a player leaving a room.
func (h *LobbyHandler) HandleLeaveRoom(client *ws.Client, _ ws.Message) {
	h.removePlayer(client)
}

// HandleDisconnect handles client disconnection. A seat in a running game is
// kept so the player can rejoin with the seat token.
func (h *LobbyHandler) HandleDisconnect(client *ws.Client) {
	h.removePlayer(client)
}

func (h *LobbyHandler) removePlayer(client *ws.Client) {
	playerID := h.router.GetPlayerID(client.ID)
	if playerID == "" {
		return
	}

	r := h.rm.FindRoomByPlayerID(playerID)
	if r != nil {
		r.RemovePlayer(playerID)
		if r.IsEmpty() {
			h.rm.RemoveRoom(r.Code)
		} else {
			broadcastRoomInfo(r)
		}
	}

	h.router.UnregisterPlayer(client.ID)
	slog.Info("player left", "player", playerID)
}

func broadcastRoomInfo(r *room.Room) {
	resp, _ := ws.NewMessage(ws.TypeRoomInfo, r.Info())
	r.BroadcastMessage(resp)
}
