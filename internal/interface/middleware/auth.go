package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/JoaquinVilchez/business-manager-api/pkg/helpers"
	"github.com/JoaquinVilchez/business-manager-api/pkg/response"
)

const (
	CtxUserIDKey    = "userID"
	CtxRoleKey      = "role"
	CtxSessionIDKey = "sessionID"
)

func accessToken(c *gin.Context) string {
	if token, err := c.Cookie(helpers.AccessTokenCookie); err == nil && token != "" {
		return token
	}
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// Auth validates the access token from the cookie or the Authorization header.
// With a redis client it also requires the token's session to still be the active one.
// It sets userID (int64), role and sessionID in the Gin context on success.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := accessToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "unauthorized", "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "unauthorized", "invalid access token", nil)
			return
		}

		if rdb != nil {
			sid, err := rdb.HGet(c.Request.Context(), helpers.SessionKey(claims.UserID), "sid").Result()
			if err != nil || sid != claims.SessionID {
				response.Error(c, http.StatusUnauthorized, "unauthorized", "session not found", nil)
				return
			}
		}

		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxRoleKey, claims.Role)
		c.Set(CtxSessionIDKey, claims.SessionID)
		c.Next()
	}
}

// RequireRole rejects authenticated callers whose role is not listed.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(CtxRoleKey)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		response.Error(c, http.StatusForbidden, "forbidden", "insufficient role", nil)
	}
}
