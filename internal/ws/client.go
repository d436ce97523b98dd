package ws

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Client represents a single WebSocket connection.
type Client struct {
	ID    string
	Codec Codec
	Hub   *Hub
	Conn  *websocket.Conn
	Send  chan []byte

	mu     sync.Mutex
	closed bool
}

// NewClient creates a new Client.
func NewClient(id string, codec Codec, hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		ID:    id,
		Codec: codec,
		Hub:   hub,
		Conn:  conn,
		Send:  make(chan []byte, 256),
	}
}

// ReadPump pumps messages from the WebSocket connection to the hub.
func (c *Client) ReadPump() {
	defer func() {
		select {
		case c.Hub.Unregister <- c:
		case <-c.Hub.done:
		}
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		frame, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Error("websocket read error", "client", c.ID, "error", err)
			}
			break
		}
		cm := &ClientMessage{
			Client: c,
			Data:   message,
			Binary: frame == websocket.BinaryMessage,
		}
		select {
		case c.Hub.Incoming <- cm:
		case <-c.Hub.done:
			return
		}
	}
}

// WritePump pumps messages from the hub to the WebSocket connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(c.Codec.frameType())
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendMessage queues a Message for this client. Messages to a closed client
// are dropped.
func (c *Client) SendMessage(msg Message) {
	data, err := c.Codec.Encode(msg)
	if err != nil {
		slog.Error("failed to encode message", "type", msg.Type, "codec", c.Codec, "error", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.Send <- data:
	default:
		slog.Warn("client send buffer full, dropping message", "client", c.ID)
	}
}

// close closes the send channel once.
func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.Send)
	}
}

// ClientMessage wraps a raw message with its source client.
type ClientMessage struct {
	Client *Client
	Data   []byte
	// Binary is set for binary frames, which carry msgpack.
	Binary bool
}

// Decode parses the frame with the codec matching its frame type.
func (cm *ClientMessage) Decode() (Message, error) {
	if cm.Binary {
		return CodecMsgpack.Decode(cm.Data)
	}
	return CodecJSON.Decode(cm.Data)
}
