package network

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jinxed-vi/pawder-bot/internal/engine"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Maximum message size allowed from peer.
	maxMessageSize = 4096
)

// Client is one owner's active WebSocket connection. The send channel is
// never closed; teardown is signaled through done so concurrent senders
// (a dispatch in flight, the sweeper's notify) can safely no-op instead
// of hitting a closed channel.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	ownerID string
	send    chan []byte
	done    chan struct{}
}

func newClient(hub *Hub, conn *websocket.Conn, ownerID string) *Client {
	return &Client{
		hub:     hub,
		conn:    conn,
		ownerID: ownerID,
		send:    make(chan []byte, 256),
		done:    make(chan struct{}),
	}
}

// readPump parses commands off the connection and dispatches them.
func (c *Client) readPump(ctx context.Context) {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Errorf("websocket read for %s: %v", c.ownerID, err)
			}
			break
		}
		c.hub.metrics.RecordMessageIn()

		var cmd Command
		if err := json.Unmarshal(message, &cmd); err != nil {
			c.hub.logger.Warnf("malformed command from %s: %v", c.ownerID, err)
			c.respond(Response{OK: false, Reason: engine.ReasonInvalidInput})
			continue
		}
		if cmd.OwnerID == "" {
			cmd.OwnerID = c.ownerID
		}

		resp := c.hub.gateway.Dispatch(ctx, cmd)
		c.respond(resp)
	}
}

func (c *Client) respond(resp Response) {
	payload, err := json.Marshal(resp)
	if err != nil {
		c.hub.logger.Errorf("failed to encode response for %s: %v", c.ownerID, err)
		return
	}
	// Connection replaced or closed mid-dispatch; drop the response.
	select {
	case <-c.done:
		return
	default:
	}

	select {
	case c.send <- payload:
		c.hub.metrics.RecordMessageOut()
	case <-c.done:
	default:
		// Slow consumer; the pumps will clean up.
	}
}

// writePump pushes queued messages and keepalive pings to the connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
