package http

import (
	"github.com/Dpak2002/go-ecommerce-api/internal/adapter/http/middleware"
	"github.com/Dpak2002/go-ecommerce-api/internal/logging"
	"github.com/Dpak2002/go-ecommerce-api/internal/notify"
	"github.com/Dpak2002/go-ecommerce-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

// WSHandler upgrades authenticated connections onto notification
// channels. Authentication and the admin gate run in the Authz
// middleware before these handlers, so an unauthorized caller is
// refused without ever upgrading.
type WSHandler struct {
	hub *notify.Hub
}

func NewWSHandler(hub *notify.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// GET /ws/orders — customer channel (user_<id>)
func (h *WSHandler) Customer(c *gin.Context) {
	user := middleware.CurrentUser(c)
	channel := usecase.UserChannel(user.UserID)
	if err := notify.ServeWS(h.hub, logging.From(c), c.Writer, c.Request, channel, user.UserID); err != nil {
		logging.From(c).Warn("websocket upgrade failed", "error", err)
	}
}

// GET /ws/admin/orders — shared admin channel
func (h *WSHandler) Admin(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := notify.ServeWS(h.hub, logging.From(c), c.Writer, c.Request, usecase.AdminChannel, user.UserID); err != nil {
		logging.From(c).Warn("websocket upgrade failed", "error", err)
	}
}
