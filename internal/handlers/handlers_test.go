package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"

	"github.com/thereayou/chatlite/internal/config"
	"github.com/thereayou/chatlite/internal/middleware"
	"github.com/thereayou/chatlite/internal/store"
	"github.com/thereayou/chatlite/internal/store/gormstore"
	ws "github.com/thereayou/chatlite/internal/websocket"
	"github.com/thereayou/chatlite/pkg/auth"
)

func newTestConfig(t *testing.T, authMode string) *config.Config {
	t.Helper()

	return &config.Config{
		AuthMode:       authMode,
		JWTSecret:      "test-secret",
		UploadDir:      t.TempDir(),
		UploadMaxBytes: 5 << 20,
	}
}

// newTestRouter собирает роутер с теми же маршрутами, что и боевой сервер,
// поверх sqlite-стора во временной директории.
func newTestRouter(t *testing.T, cfg *config.Config) (*gin.Engine, store.Store, *auth.JWTManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := gormstore.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")))
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}

	var jwtMgr *auth.JWTManager
	if cfg.AuthMode == config.AuthModeToken {
		jwtMgr = auth.NewJWTManager(cfg.JWTSecret, time.Hour)
	}

	hub := ws.NewHub()
	authH := NewAuthHandler(st, jwtMgr, nil, cfg.AuthMode)
	chatH := NewChatHandler(st, hub)
	msgH := NewMessageHandler(st, hub, cfg.EnforceMembership)
	uploadH := NewUploadHandler(st, cfg)

	r := gin.New()
	authGroup := r.Group("/api/auth")
	authGroup.POST("/register", authH.Register)
	authGroup.POST("/login", authH.Login)
	authGroup.POST("/logout", authH.Logout)

	api := r.Group("/api")
	api.Use(middleware.Identify(cfg, jwtMgr, nil))
	api.GET("/users/me", authH.Me)
	api.GET("/chats", chatH.ListChats)
	api.POST("/chats", chatH.CreateChat)
	api.GET("/messages", msgH.ListMessages)
	api.POST("/messages", msgH.PostMessage)
	api.POST("/upload", uploadH.Upload)

	return r, st, jwtMgr
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}

	req, err := http.NewRequest(method, path, &buf)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rr.Body.String(), err)
	}
	return body
}

func decodeList(t *testing.T, rr *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()

	var body []map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rr.Body.String(), err)
	}
	return body
}

func registerUser(t *testing.T, r *gin.Engine, username, password string) string {
	t.Helper()

	rr := doJSON(t, r, "POST", "/api/auth/register", gin.H{
		"username": username,
		"password": password,
	}, "")
	if rr.Code != http.StatusCreated {
		t.Fatalf("Register %s failed with status %d: %s", username, rr.Code, rr.Body.String())
	}
	return decodeBody(t, rr)["id"].(string)
}
