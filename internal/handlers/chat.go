package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thereayou/chatlite/internal/handlers/dto"
	"github.com/thereayou/chatlite/internal/models"
	"github.com/thereayou/chatlite/internal/store"
	ws "github.com/thereayou/chatlite/internal/websocket"
)

type ChatHandler struct {
	store store.Store
	hub   *ws.Hub
}

func NewChatHandler(st store.Store, hub *ws.Hub) *ChatHandler {
	return &ChatHandler{store: st, hub: hub}
}

// ListChats возвращает чаты, в которых состоит вызывающий
func (h *ChatHandler) ListChats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing userId"})
		return
	}

	chats, err := h.store.GetUserChats(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get chats"})
		return
	}

	result := make([]gin.H, 0, len(chats))
	for i := range chats {
		resp := formatChatResponse(&chats[i])
		if h.hub != nil {
			resp["onlineCount"] = len(h.hub.GetChatUsers(chats[i].ID))
		}
		result = append(result, resp)
	}

	c.JSON(http.StatusOK, result)
}

// CreateChat создает чат. Для individual-чата на двоих сначала ищется
// существующий с тем же множеством участников: найденный возвращается
// как есть со статусом 200, без новой записи.
func (h *ChatHandler) CreateChat(c *gin.Context) {
	var req dto.CreateChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	participantIDs, err := parseParticipants(req.Participants)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	creatorID, ok := currentUserID(c)
	if !ok {
		creatorID, err = uuid.Parse(req.CreatedBy)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing createdBy"})
			return
		}
	}

	chatType := req.Type
	if chatType == "" {
		chatType = models.ChatIndividual
	}
	if chatType != models.ChatIndividual && chatType != models.ChatGroup {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chat type"})
		return
	}

	// Правило дедупликации: individual-чат на ту же пару не создаётся
	// повторно, в каком бы порядке ни пришли id.
	if chatType == models.ChatIndividual && len(participantIDs) == 2 {
		existing, err := h.store.FindIndividualChat(participantIDs[0], participantIDs[1])
		if err == nil {
			c.JSON(http.StatusOK, formatChatResponse(existing))
			return
		}
		if !errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create chat"})
			return
		}
	}

	chat := &models.Chat{
		Name:      req.Name,
		Type:      chatType,
		CreatedBy: creatorID,
		CreatedAt: time.Now(),
	}

	if err := h.store.CreateChat(chat, participantIDs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create chat"})
		return
	}

	c.JSON(http.StatusCreated, formatChatResponse(chat))
}

// parseParticipants разбирает id и убирает дубликаты, сохраняя порядок:
// членство — это множество, по одной строке на пользователя.
func parseParticipants(raw []string) ([]uuid.UUID, error) {
	if len(raw) == 0 {
		return nil, errors.New("participants are required")
	}

	seen := make(map[uuid.UUID]bool, len(raw))
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, errors.New("invalid participant id")
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// formatChatResponse форматирует ответ для чата
func formatChatResponse(chat *models.Chat) gin.H {
	participants := chat.ParticipantIDs
	if participants == nil {
		participants = []uuid.UUID{}
	}

	return gin.H{
		"id":           chat.ID,
		"name":         chat.Name,
		"type":         chat.Type,
		"createdBy":    chat.CreatedBy,
		"createdAt":    chat.CreatedAt,
		"participants": participants,
	}
}
