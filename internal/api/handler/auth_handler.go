package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ShikhaMathur02/Visitor-System/internal/dto"
	"github.com/ShikhaMathur02/Visitor-System/internal/service"
	"github.com/ShikhaMathur02/Visitor-System/pkg/response"
)

// AuthHandler serves the authentication endpoints.
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login authenticates a staff member.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, 11001, "invalid email or password")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Logout revokes the current access token.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti := c.GetString("token_jti")
	exp, _ := c.Get("token_exp")
	expiresAt, _ := exp.(time.Time)

	if err := h.authSvc.Logout(c.Request.Context(), jti, expiresAt); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// Me returns the authenticated user.
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.authSvc.Me(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 20001, "user not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, user)
}
