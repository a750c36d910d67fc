package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"microblog/services"

	"github.com/gin-gonic/gin"
)

func resolveUserID(c *gin.Context, users *services.UserService) (int64, bool) {
	// X-User-ID заголовок - путь для простых тестов
	userIDHeader := c.GetHeader("X-User-ID")
	if userIDHeader != "" {
		if userID, err := strconv.ParseInt(userIDHeader, 10, 64); err == nil {
			return userID, true
		}
		return 0, false
	}

	// Authorization Bearer token
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		token := strings.TrimPrefix(authHeader, "Bearer ")
		userID, err := users.ResolveToken(c.Request.Context(), token)
		if err == nil {
			return userID, true
		}
	}

	return 0, false
}

// AuthMiddleware требует аутентификацию: X-User-ID заголовок
// или Authorization Bearer token
func AuthMiddleware(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := resolveUserID(c, users)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required: provide X-User-ID header or Authorization Bearer token"})
			c.Abort()
			return
		}
		c.Set("user_id", userID)
		c.Next()
	}
}

// OptionalAuthMiddleware - опциональная аутентификация. Без валидных
// учетных данных запрос проходит дальше анонимно
func OptionalAuthMiddleware(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := resolveUserID(c, users); ok {
			c.Set("user_id", userID)
		}
		c.Next()
	}
}
