// Package network is the WebSocket gateway between chat transports and the
// stat engine. Transports connect one socket per owner, send structured
// commands, and receive structured outcomes plus unsolicited notices.
// Rendering user-facing text is the transport's job; only reason codes
// cross this boundary.
package network

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/jinxed-vi/pawder-bot/internal/platform/logger"
	"github.com/jinxed-vi/pawder-bot/internal/platform/metrics"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The chat transport is a trusted sidecar, not a browser.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub maintains the set of active clients keyed by owner and delivers
// notices to specific owners. It also implements engine.Notifier.
type Hub struct {
	gateway *Gateway
	logger  *logger.Logger
	metrics *metrics.Collector

	mu         sync.Mutex
	clients    map[*Client]bool
	byOwner    map[string]*Client
	register   chan *Client
	unregister chan *Client
}

// NewHub initializes the WebSocket hub over a command gateway.
func NewHub(gateway *Gateway, log *logger.Logger) *Hub {
	return &Hub{
		gateway:    gateway,
		logger:     log,
		metrics:    metrics.Get(),
		clients:    make(map[*Client]bool),
		byOwner:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's main loop to handle client registration.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.logger.Info("WebSocket hub shutting down")
			return
		case client := <-h.register:
			h.mu.Lock()
			// A reconnect replaces the previous socket for the same owner.
			// Only done is closed; the send channel stays open so in-flight
			// responders and the sweeper never hit a closed channel.
			if prev, ok := h.byOwner[client.ownerID]; ok {
				delete(h.clients, prev)
				close(prev.done)
			}
			h.clients[client] = true
			h.byOwner[client.ownerID] = client
			h.mu.Unlock()
			h.metrics.ClientConnected()
			h.logger.Info("client connected for owner " + client.ownerID)
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				if h.byOwner[client.ownerID] == client {
					delete(h.byOwner, client.ownerID)
				}
				close(client.done)
				h.metrics.ClientDisconnected()
				h.logger.Info("client disconnected for owner " + client.ownerID)
			}
			h.mu.Unlock()
		}
	}
}

// Notify delivers an out-of-band notice to one owner's connection.
// Returns false when the owner has no connection or its buffer is full.
func (h *Hub) Notify(ownerID, message string) bool {
	h.mu.Lock()
	client, ok := h.byOwner[ownerID]
	h.mu.Unlock()
	if !ok {
		return false
	}

	payload, err := encodeNotice(message)
	if err != nil {
		h.logger.Errorf("failed to encode notice for %s: %v", ownerID, err)
		return false
	}

	select {
	case <-client.done:
		return false
	default:
	}

	select {
	case client.send <- payload:
		h.metrics.RecordMessageOut()
		return true
	case <-client.done:
		return false
	default:
		return false
	}
}

// ServeWS upgrades an HTTP request to a WebSocket client. The owner is
// bound from the `owner` query parameter for the connection's lifetime.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("owner")
	if ownerID == "" {
		http.Error(w, "missing owner parameter", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Errorf("websocket upgrade failed: %v", err)
		return
	}

	client := newClient(h, conn, ownerID)
	h.register <- client

	go client.writePump()
	// The request context dies with the handler; the hijacked connection
	// outlives it, so commands run against their own context.
	go client.readPump(context.Background())
}
