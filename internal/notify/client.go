package notify

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 1024
	sendBuffer     = 16
)

// Client binds one websocket connection to one logical channel.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	channel string
	log     *slog.Logger
	send    chan []byte
}

func newClient(hub *Hub, conn *websocket.Conn, channel string, log *slog.Logger) *Client {
	return &Client{
		hub:     hub,
		conn:    conn,
		channel: channel,
		log:     log.With("channel", channel),
		send:    make(chan []byte, sendBuffer),
	}
}

// trySend queues a payload for the write pump without blocking the
// hub. A subscriber that cannot keep up loses the event.
func (c *Client) trySend(payload []byte) {
	select {
	case c.send <- payload:
	default:
		c.log.Warn("subscriber send buffer full, dropping event")
	}
}

type clientMessage struct {
	Type string `json:"type"`
}

// serve registers the client and runs both pumps. It returns when the
// connection is gone.
func (c *Client) serve() {
	c.hub.subscribe(c.channel, c)
	defer func() {
		c.hub.unsubscribe(c.channel, c)
		_ = c.conn.Close()
	}()

	go c.writePump()
	c.readPump()
}

func (c *Client) readPump() {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warn("websocket read", "error", err)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.reply(map[string]string{"type": "error", "message": "Invalid JSON format"})
			continue
		}
		switch msg.Type {
		case "ping":
			c.reply(map[string]string{"type": "pong", "message": "pong"})
		case "subscribe_orders":
			c.reply(map[string]string{"type": "subscription_confirmed", "message": "Subscribed to order notifications"})
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) reply(v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.trySend(payload)
}
