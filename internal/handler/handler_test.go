package handler

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ugaemi/prophunt-server/internal/auth"
	"github.com/ugaemi/prophunt-server/internal/game"
	"github.com/ugaemi/prophunt-server/internal/room"
	"github.com/ugaemi/prophunt-server/internal/ws"
)

// sentMessage is a message captured from a test client.
type sentMessage struct {
	Type string
	Data json.RawMessage
}

// newTestClient creates a client whose outgoing messages are decoded with
// its codec and forwarded to the returned channel.
func newTestClient(id string, codec ws.Codec) (*ws.Client, chan sentMessage) {
	ch := make(chan sentMessage, 512)
	client := &ws.Client{
		ID:    id,
		Codec: codec,
		Send:  make(chan []byte, 512),
	}

	// Read sent messages in background
	go func() {
		for data := range client.Send {
			msg, err := codec.Decode(data)
			if err != nil {
				continue
			}
			ch <- sentMessage{Type: msg.Type, Data: msg.Data}
		}
	}()

	return client, ch
}

func testMatchConfig() game.Config {
	cfg := game.DefaultConfig()
	cfg.FirstPlayerHunter = true
	cfg.LobbyDuration = 0
	cfg.HidingDuration = 0
	cfg.HuntDuration = 5 * time.Second
	cfg.Seed = 3
	return cfg
}

func newTestRouter(t *testing.T) (*Router, *room.Manager, *auth.SeatIssuer) {
	t.Helper()
	seats, err := auth.NewSeatIssuer([]byte("test-secret"), time.Minute)
	require.NoError(t, err)
	rm := room.NewManager(testMatchConfig(), nil)
	t.Cleanup(rm.Shutdown)
	return NewRouter(rm, seats), rm, seats
}

// send routes a message from client as if it arrived over the socket.
func send(t *testing.T, router *Router, client *ws.Client, msgType string, payload any) {
	t.Helper()
	msg := ws.Message{Type: msgType}
	if payload != nil {
		var err error
		msg, err = ws.NewMessage(msgType, payload)
		require.NoError(t, err)
	}
	raw, err := client.Codec.Encode(msg)
	require.NoError(t, err)
	router.HandleMessage(&ws.ClientMessage{Client: client, Data: raw, Binary: client.Codec == ws.CodecMsgpack})
}

// readUntil returns the first message of msgType, skipping others.
func readUntil(t *testing.T, ch chan sentMessage, msgType string) sentMessage {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case msg := <-ch:
			if msg.Type == msgType {
				return msg
			}
		case <-deadline:
			t.Fatalf("timeout waiting for %s", msgType)
			return sentMessage{}
		}
	}
}

func readError(t *testing.T, ch chan sentMessage) string {
	t.Helper()
	resp := readUntil(t, ch, ws.TypeError)
	var errMsg ws.ErrorMessage
	require.NoError(t, json.Unmarshal(resp.Data, &errMsg))
	return errMsg.Message
}

func drainCh(ch chan sentMessage) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}

// createRoom seats client as host of a new room.
func createRoom(t *testing.T, router *Router, client *ws.Client, ch chan sentMessage) seatResponse {
	t.Helper()
	send(t, router, client, ws.TypeCreateRoom, createRoomRequest{Nickname: "host"})
	var seat seatResponse
	require.NoError(t, json.Unmarshal(readUntil(t, ch, ws.TypeCreateRoom).Data, &seat))
	return seat
}

func joinRoom(t *testing.T, router *Router, client *ws.Client, ch chan sentMessage, code string) seatResponse {
	t.Helper()
	send(t, router, client, ws.TypeJoinRoom, joinRoomRequest{Code: code, Nickname: "guest"})
	var seat seatResponse
	require.NoError(t, json.Unmarshal(readUntil(t, ch, ws.TypeJoinRoom).Data, &seat))
	return seat
}

// startedRoom creates a room with a host and two guests and starts the game.
// The host is the only hunter.
func startedRoom(t *testing.T, router *Router, rm *room.Manager) (*room.Room, []*ws.Client, []chan sentMessage, []seatResponse) {
	t.Helper()
	host, hostCh := newTestClient("host", ws.CodecJSON)
	clients := []*ws.Client{host}
	chans := []chan sentMessage{hostCh}
	seats := []seatResponse{createRoom(t, router, host, hostCh)}

	for _, id := range []string{"guest1", "guest2"} {
		c, ch := newTestClient(id, ws.CodecJSON)
		seats = append(seats, joinRoom(t, router, c, ch, seats[0].Code))
		clients = append(clients, c)
		chans = append(chans, ch)
	}

	send(t, router, host, ws.TypeStartGame, nil)
	readUntil(t, chans[1], ws.TypeGameStart)

	r := rm.GetRoom(seats[0].Code)
	require.NotNil(t, r)
	waitForHunt(t, r)

	return r, clients, chans, seats
}

func waitForHunt(t *testing.T, r *room.Room) {
	t.Helper()
	require.Eventually(t, func() bool {
		snap, ok := r.Snapshot()
		return ok && snap.Phase == "hunting"
	}, 2*time.Second, 5*time.Millisecond)
}
