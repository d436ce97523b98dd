package handler

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/ugaemi/prophunt-server/internal/game"
	"github.com/ugaemi/prophunt-server/internal/room"
	"github.com/ugaemi/prophunt-server/internal/ws"
)

// GameplayHandler turns in-game messages into match actions.
type GameplayHandler struct {
	rm     *room.Manager
	router *Router
}

// NewGameplayHandler creates a new gameplay handler.
func NewGameplayHandler(rm *room.Manager, router *Router) *GameplayHandler {
	return &GameplayHandler{rm: rm, router: router}
}

type playerMoveRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// HandlePlayerMove sets the player's heading. The vector is a direction;
// its length is ignored.
func (h *GameplayHandler) HandlePlayerMove(client *ws.Client, msg ws.Message) {
	var req playerMoveRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		client.SendMessage(ws.NewErrorMessage("invalid move data"))
		return
	}
	h.dispatch(client, game.Move{Vector: game.Vec{X: req.X, Y: req.Y}})
}

// HandleCatch handles a hunter's catch attempt.
func (h *GameplayHandler) HandleCatch(client *ws.Client, _ ws.Message) {
	h.dispatch(client, game.Catch{})
}

// HandleScan handles a hunter's scan.
func (h *GameplayHandler) HandleScan(client *ws.Client, _ ws.Message) {
	h.dispatch(client, game.Scan{})
}

type setDisguiseRequest struct {
	Tag string `json:"tag"`
}

// HandleSetDisguise changes a hider's prop type.
func (h *GameplayHandler) HandleSetDisguise(client *ws.Client, msg ws.Message) {
	var req setDisguiseRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil || req.Tag == "" {
		client.SendMessage(ws.NewErrorMessage("tag is required"))
		return
	}
	h.dispatch(client, game.SetDisguise{Tag: req.Tag})
}

func (h *GameplayHandler) dispatch(client *ws.Client, action game.Action) {
	r, playerID := h.router.roomOf(h.rm, client)
	if r == nil {
		return
	}

	err := r.Dispatch(playerID, action)
	switch {
	case err == nil:
	case errors.Is(err, game.ErrInvalidAction), errors.Is(err, room.ErrNotPlaying):
		slog.Debug("action rejected", "room", r.Code, "player", playerID, "error", err)
		client.SendMessage(ws.NewErrorMessage(err.Error()))
	default:
		slog.Error("action failed", "room", r.Code, "player", playerID, "error", err)
		client.SendMessage(ws.NewErrorMessage("internal error"))
	}
}
