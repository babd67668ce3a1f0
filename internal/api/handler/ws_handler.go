package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ShikhaMathur02/Visitor-System/internal/notify"
	"github.com/ShikhaMathur02/Visitor-System/pkg/jwt"
	"github.com/ShikhaMathur02/Visitor-System/pkg/response"
)

// WSHandler upgrades dashboard connections onto the notification hub.
type WSHandler struct {
	hub    *notify.Hub
	jwtMgr *jwt.Manager
}

// NewWSHandler creates a WSHandler.
func NewWSHandler(hub *notify.Hub, jwtMgr *jwt.Manager) *WSHandler {
	return &WSHandler{hub: hub, jwtMgr: jwtMgr}
}

// Serve authenticates and attaches a client to the hub. Browsers
// cannot set an Authorization header on a WebSocket handshake, so the
// token travels in the query string.
// GET /ws?token=<jwt>
func (h *WSHandler) Serve(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Unauthorized(c, 10002, "missing token")
		return
	}

	claims, err := h.jwtMgr.ParseToken(token)
	if err != nil {
		response.Unauthorized(c, 10002, "token invalid or expired")
		return
	}

	h.hub.ServeWS(c.Writer, c.Request, claims.UserID, claims.Role)
}
