package ws

import "encoding/json"

// Message represents a WebSocket message with type-based routing.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`

	// payload is the value Data was built from, kept so binary clients can
	// encode it without a JSON round trip.
	payload any
}

// Message types - Lobby
const (
	TypeCreateRoom = "create_room"
	TypeJoinRoom   = "join_room"
	TypeRejoin     = "rejoin"
	TypeLeaveRoom  = "leave_room"
	TypeStartGame  = "start_game"
)

// Message types - Gameplay
const (
	TypePlayerMove  = "player_move"
	TypeCatch       = "catch"
	TypeScan        = "scan"
	TypeSetDisguise = "set_disguise"
	TypeGameStart   = "game_start"
	TypeGameState   = "game_state"
	TypeGameEvent   = "game_event"
	TypeGameOver    = "game_over"
)

// Message types - System
const (
	TypeError    = "error"
	TypeRoomInfo = "room_info"
)

// ErrorMessage is sent when an error occurs.
type ErrorMessage struct {
	Message string `json:"message" msgpack:"message"`
}

// NewErrorMessage creates a Message with an error payload.
func NewErrorMessage(msg string) Message {
	payload := ErrorMessage{Message: msg}
	data, _ := json.Marshal(payload)
	return Message{Type: TypeError, Data: data, payload: payload}
}

// NewMessage creates a Message with a typed payload.
func NewMessage(msgType string, payload any) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: msgType, Data: data, payload: payload}, nil
}
