package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"

	"github.com/thereayou/chatlite/internal/config"
	"github.com/thereayou/chatlite/internal/handlers"
	"github.com/thereayou/chatlite/internal/store"
	"github.com/thereayou/chatlite/internal/store/gormstore"
	"github.com/thereayou/chatlite/internal/store/jsonstore"
	ws "github.com/thereayou/chatlite/internal/websocket"
	"github.com/thereayou/chatlite/pkg/auth"
)

type Server struct {
	Router     *gin.Engine
	Store      store.Store
	Redis      *redis.Client
	JWTManager *auth.JWTManager
	Hub        *ws.Hub
	Config     *config.Config
}

func NewServer() *Server {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println(".env not found, using environment variables")
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config load failed: %v", err)
	}

	st, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Store open failed: %v", err)
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		rdb = redis.NewClient(redisOpts)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("Redis connect failed: %v", err)
		}
	}

	var jwtMgr *auth.JWTManager
	if cfg.AuthMode == config.AuthModeToken {
		jwtMgr = auth.NewJWTManager(cfg.JWTSecret, 24*time.Hour)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("Upload dir create failed: %v", err)
	}

	hub := ws.NewHub()
	go hub.Run()

	authH := handlers.NewAuthHandler(st, jwtMgr, rdb, cfg.AuthMode)
	chatH := handlers.NewChatHandler(st, hub)
	msgH := handlers.NewMessageHandler(st, hub, cfg.EnforceMembership)
	uploadH := handlers.NewUploadHandler(st, cfg)
	wsH := handlers.NewWebSocketHandler(hub)

	router := gin.Default()
	APIEndpoints(router, cfg, jwtMgr, rdb, authH, chatH, msgH, uploadH, wsH)

	return &Server{
		Router:     router,
		Store:      st,
		Redis:      rdb,
		JWTManager: jwtMgr,
		Hub:        hub,
		Config:     cfg,
	}
}

// openStore выбирает бэкенд хранилища по конфигурации.
func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		return gormstore.Open(postgres.Open(cfg.DatabaseURL))

	case config.BackendSQLite:
		path := cfg.DatabaseURL
		if path == "" {
			if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
				return nil, err
			}
			path = filepath.Join(cfg.DataDir, "chatlite.db")
		}
		return gormstore.Open(sqlite.Open(path))

	case config.BackendJSON:
		return jsonstore.New(cfg.DataDir)
	}

	return nil, fmt.Errorf("unknown store backend: %q", cfg.StoreBackend)
}

// Run поднимает HTTP-сервер и по SIGINT/SIGTERM гасит его штатно:
// сначала закрываются сокеты хаба, потом дорабатываются запросы.
func (s *Server) Run() {
	srv := &http.Server{
		Addr:    s.Config.Addr,
		Handler: s.Router,
	}

	go func() {
		log.Printf("Server starting on %s", s.Config.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server run error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down")
	s.Hub.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
}
