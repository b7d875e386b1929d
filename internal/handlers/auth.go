package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/thereayou/chatlite/internal/config"
	"github.com/thereayou/chatlite/internal/handlers/dto"
	"github.com/thereayou/chatlite/internal/models"
	"github.com/thereayou/chatlite/internal/store"
	"github.com/thereayou/chatlite/pkg/auth"
)

type AuthHandler struct {
	store      store.Store
	jwtManager *auth.JWTManager
	redis      *redis.Client
	authMode   string
}

func NewAuthHandler(st store.Store, jwtMgr *auth.JWTManager, rdb *redis.Client, authMode string) *AuthHandler {
	return &AuthHandler{store: st, jwtManager: jwtMgr, redis: rdb, authMode: authMode}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := &models.User{
		Username:  req.Username,
		Password:  req.Password,
		CreatedAt: time.Now(),
	}

	if err := h.store.CreateUser(user); err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":       user.ID,
		"username": user.Username,
	})
}

// Login проверяет креденшелы строковым равенством и, в зависимости от
// режима, выдаёт JWT либо возвращает голую identity.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.store.GetUserByUsername(req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}

	if user.Password != req.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	if h.authMode == config.AuthModeNone {
		c.JSON(http.StatusOK, gin.H{
			"id":       user.ID,
			"username": user.Username,
		})
		return
	}

	token, err := h.jwtManager.Generate(user.ID.String(), user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Logout ставит токен в черный список в Redis до истечения
func (h *AuthHandler) Logout(c *gin.Context) {
	if h.authMode == config.AuthModeNone {
		c.Status(http.StatusOK)
		return
	}

	rawToken, err := auth.ExtractTokenFromHeader(c.Request)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	exp, err := h.jwtManager.Expiry(rawToken)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "invalid token"})
		return
	}

	if h.redis != nil {
		ttl := time.Until(exp)
		h.redis.Set(context.Background(), "blacklist:"+rawToken, 1, ttl)
	}

	c.Status(http.StatusOK)
}

// Me возвращает текущего пользователя без пароля
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing userId"})
		return
	}

	user, err := h.store.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        user.ID,
		"username":  user.Username,
		"createdAt": user.CreatedAt,
	})
}
