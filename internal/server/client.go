package server

import (
	"encoding/json"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const sendBufferSize = 256

// Client is one connected player. The connection ID doubles as the
// player ID for the lifetime of the session.
type Client struct {
	id   string
	conn *websocket.Conn
	send chan []byte

	// room the client joined, guarded by the gateway's lock.
	room string
}

// readPump consumes inbound frames until the connection drops, then
// triggers the implicit disconnect intent.
func (c *Client) readPump(g *Gateway) {
	defer func() {
		g.disconnect(c)
		c.conn.Close()
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			g.logger.Debug("dropping malformed message",
				zap.String("player", c.id), zap.Error(err))
			continue
		}
		g.handleMessage(c, msg)
	}
}

// writePump drains the send buffer onto the wire.
func (c *Client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}

// enqueue queues an outbound message, dropping it if the client's
// buffer is full rather than blocking the engine.
func (c *Client) enqueue(raw []byte) {
	select {
	case c.send <- raw:
	default:
	}
}
