package notify

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Auth happens before the upgrade; origin policy is the proxy's job.
	CheckOrigin: func(*http.Request) bool { return true },
}

// ServeWS upgrades the request and binds the connection to channel.
// The caller is responsible for authentication and channel selection;
// anything reaching here is already authorized. Blocks until the
// connection closes.
func ServeWS(hub *Hub, log *slog.Logger, w http.ResponseWriter, r *http.Request, channel string, userID int64) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := newClient(hub, conn, channel, log)

	ack, _ := json.Marshal(map[string]any{
		"type":      "connection_established",
		"message":   "Connected to order notifications",
		"user_id":   userID,
		"timestamp": time.Now().UTC(),
	})
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.TextMessage, ack); err != nil {
		_ = conn.Close()
		return err
	}

	c.serve()
	return nil
}
