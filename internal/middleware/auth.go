package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/thereayou/chatlite/internal/config"
	"github.com/thereayou/chatlite/pkg/auth"
)

const UserIDKey = "userID"

// Identify разрешает личность вызывающего.
//
// В режиме token: 401 без креденшела, 403 при невалидном, истёкшем или
// отозванном токене; иначе userID кладётся в контекст запроса.
// В режиме none личность берётся из query-параметра userId, если он есть;
// его отсутствие хендлеры трактуют сами (обычно 400).
func Identify(cfg *config.Config, jwtManager *auth.JWTManager, redisClient *redis.Client) gin.HandlerFunc {
	if cfg.AuthMode == config.AuthModeNone {
		return identifyByQuery
	}

	return func(c *gin.Context) {
		token, err := auth.ExtractTokenFromHeader(c.Request)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
			c.Abort()
			return
		}

		// Отозванные через logout токены лежат в Redis до истечения.
		if redisClient != nil {
			exists, err := redisClient.Exists(context.Background(), "blacklist:"+token).Result()
			if err != nil || exists > 0 {
				c.JSON(http.StatusForbidden, gin.H{"error": "token is revoked"})
				c.Abort()
				return
			}
		}

		claims, err := jwtManager.Verify(token)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid user id"})
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

func identifyByQuery(c *gin.Context) {
	if raw := c.Query("userId"); raw != "" {
		if userID, err := uuid.Parse(raw); err == nil {
			c.Set(UserIDKey, userID)
		}
	}
	c.Next()
}
