package server

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/thereayou/chatlite/internal/config"
	"github.com/thereayou/chatlite/internal/handlers"
	"github.com/thereayou/chatlite/internal/middleware"
	"github.com/thereayou/chatlite/pkg/auth"
)

func APIEndpoints(
	r *gin.Engine,
	cfg *config.Config,
	jwtMgr *auth.JWTManager,
	rdb *redis.Client,
	authH *handlers.AuthHandler,
	chatH *handlers.ChatHandler,
	msgH *handlers.MessageHandler,
	uploadH *handlers.UploadHandler,
	wsH *handlers.WebSocketHandler,
) {
	// Auth endpoints
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", authH.Register)
		authGroup.POST("/login", authH.Login)
		authGroup.POST("/logout", authH.Logout)
	}

	// API endpoints
	api := r.Group("/api")
	api.Use(middleware.Identify(cfg, jwtMgr, rdb))
	{
		api.GET("/users/me", authH.Me)
		api.GET("/chats", chatH.ListChats)
		api.POST("/chats", chatH.CreateChat)
		api.GET("/messages", msgH.ListMessages)
		api.POST("/messages", msgH.PostMessage)
		api.POST("/upload", uploadH.Upload)
	}

	// WebSocket endpoint
	r.GET("/ws", middleware.Identify(cfg, jwtMgr, rdb), wsH.HandleWebSocket)

	// Загруженные файлы отдаются статикой по сохранённому path
	r.Static("/uploads", cfg.UploadDir)
}
