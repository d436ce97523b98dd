package ws

import (
	"log/slog"
	"sync"
)

// Hub owns the set of connected clients. Incoming frames and disconnects are
// handed to OnMessage and OnDisconnect one at a time from Run.
type Hub struct {
	clients    map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	Incoming   chan *ClientMessage
	mu         sync.RWMutex

	done     chan struct{}
	stopOnce sync.Once

	// OnMessage is called for each incoming client message.
	OnMessage func(cm *ClientMessage)
	// OnDisconnect is called when a client disconnects.
	OnDisconnect func(client *Client)
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Incoming:   make(chan *ClientMessage, 256),
		done:       make(chan struct{}),
	}
}

// Run processes registrations, messages and disconnects until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			slog.Info("client connected", "client", client.ID, "codec", client.Codec)

		case client := <-h.Unregister:
			h.mu.Lock()
			_, ok := h.clients[client]
			delete(h.clients, client)
			h.mu.Unlock()
			if !ok {
				continue
			}
			slog.Info("client disconnected", "client", client.ID)
			if h.OnDisconnect != nil {
				h.OnDisconnect(client)
			}
			client.close()

		case cm := <-h.Incoming:
			if h.OnMessage != nil {
				h.OnMessage(cm)
			}

		case <-h.done:
			h.closeAll()
			return
		}
	}
}

// closeAll closes every client's send channel so its write pump sends a
// close frame and exits.
func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		client.close()
		delete(h.clients, client)
	}
}

// Add registers a client. It returns false once the hub has stopped.
func (h *Hub) Add(client *Client) bool {
	select {
	case h.Register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Stop ends Run and disconnects every client. Safe to call more than once.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// CodecCounts returns the number of connected clients per wire codec.
func (h *Hub) CodecCounts() map[string]int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	counts := make(map[string]int, 2)
	for client := range h.clients {
		counts[client.Codec.String()]++
	}
	return counts
}
