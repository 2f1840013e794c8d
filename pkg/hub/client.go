package hub

import (
	"time"

	"github.com/gofiber/websocket/v2"

	"github.com/VatsalyaBhadaurya/follow-detect-TARA/internal/log"
)

const (
	// writeWait bounds a single frame or status write.
	writeWait = 10 * time.Second

	// pongWait is how long a silent connection is kept before it is
	// declared dead. pingPeriod must be shorter so a ping is always in
	// flight before the deadline.
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize caps inbound reads. Dashboard clients only send
	// pongs, so anything near this limit is a misbehaving peer.
	maxMessageSize = 512 * 1024
)

// Client is one dashboard websocket connection attached to a hub. The hub
// owns delivery ordering; the client owns the connection lifecycle.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan Message
}

// NewClient wraps the connection and registers it with the hub. The send
// buffer absorbs bursts of camera frames; the hub evicts the client if it
// falls behind by more than the buffer.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	client := &Client{
		hub:  hub,
		conn: conn,
		send: make(chan Message, 256),
	}
	hub.register <- client
	return client
}

// Run pumps the connection until it closes. Call it from the websocket
// handler; it blocks for the life of the connection.
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

// readPump drains inbound traffic. Dashboard clients send nothing we act
// on, but the read loop is what refreshes deadlines on pongs and notices
// the peer going away.
func (c *Client) readPump() {
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
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug("websocket read ended", "hub", c.hub.name, "error", err)
			}
			return
		}
	}
}

// writePump is the only goroutine allowed to write to the connection. It
// forwards hub messages and keeps the peer alive with periodic pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub evicted us; tell the peer before hanging up.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			wsType := websocket.TextMessage
			if message.Type == BinaryMessage {
				wsType = websocket.BinaryMessage
			}
			if err := c.conn.WriteMessage(wsType, message.Data); err != nil {
				log.Debug("websocket write failed", "hub", c.hub.name, "error", err)
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
