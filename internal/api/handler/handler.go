package handler

import (
	"github.com/ShikhaMathur02/Visitor-System/internal/notify"
	"github.com/ShikhaMathur02/Visitor-System/internal/service"
	"github.com/ShikhaMathur02/Visitor-System/pkg/jwt"
)

// Handler aggregates every HTTP handler.
type Handler struct {
	Auth  *AuthHandler
	User  *UserHandler
	Entry *EntryHandler
	Stats *StatsHandler
	WS    *WSHandler
}

// NewHandler wires the handlers.
func NewHandler(svc *service.Service, hub *notify.Hub, jwtMgr *jwt.Manager) *Handler {
	return &Handler{
		Auth:  NewAuthHandler(svc.Auth),
		User:  NewUserHandler(svc.User),
		Entry: NewEntryHandler(svc.Entry),
		Stats: NewStatsHandler(svc.Stats),
		WS:    NewWSHandler(hub, jwtMgr),
	}
}
