package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ShikhaMathur02/Visitor-System/pkg/jwt"
	"github.com/ShikhaMathur02/Visitor-System/pkg/redis"
	"github.com/ShikhaMathur02/Visitor-System/pkg/response"
)

// JWTAuth extracts and verifies the access token from
// Authorization: Bearer <token>. rdb may be nil, in which case the
// revocation check is skipped.
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "invalid authorization header")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "token invalid or expired")
			c.Abort()
			return
		}

		if rdb != nil {
			revoked, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			// Redis errors degrade open; revocation is best effort
			if err == nil && revoked {
				response.Unauthorized(c, 10002, "token revoked")
				c.Abort()
				return
			}
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("token_jti", claims.ID)
		c.Set("token_exp", claims.ExpiresAt.Time)

		c.Next()
	}
}

// RoleAuth allows the request through only when the authenticated user
// holds one of the given roles.
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Unauthorized(c, 10002, "not authenticated")
			c.Abort()
			return
		}

		userRole := role.(string)
		for _, r := range allowedRoles {
			if userRole == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "insufficient permissions")
		c.Abort()
	}
}
