package usecase

import (
	"fmt"
	"time"
)

// Event kinds pushed over the notification channels.
const (
	EventOrderCreated       = "order_created"
	EventOrderUpdate        = "order_update"
	EventNewOrder           = "new_order"
	EventOrderStatusChanged = "order_status_changed"
)

// AdminChannel is the shared channel every connected admin subscribes to.
const AdminChannel = "admin_orders"

// UserChannel names the per-user notification channel.
func UserChannel(userID int64) string {
	return fmt.Sprintf("user_%d", userID)
}

// Event is an ephemeral notification message. It is not persisted;
// delivery is at-most-once to currently connected subscribers.
type Event struct {
	Type       string    `json:"type"`
	Channel    string    `json:"-"`
	OrderID    int64     `json:"order_id"`
	UserID     int64     `json:"user_id,omitempty"`
	UserName   string    `json:"user_name,omitempty"`
	OldStatus  string    `json:"old_status,omitempty"`
	NewStatus  string    `json:"new_status,omitempty"`
	TotalPrice string    `json:"total_price,omitempty"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}
