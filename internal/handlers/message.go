package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thereayou/chatlite/internal/handlers/dto"
	"github.com/thereayou/chatlite/internal/models"
	"github.com/thereayou/chatlite/internal/store"
	ws "github.com/thereayou/chatlite/internal/websocket"
)

type MessageHandler struct {
	store store.Store
	hub   *ws.Hub

	// enforceMembership включает проверку членства отправителя в чате.
	enforceMembership bool
}

func NewMessageHandler(st store.Store, hub *ws.Hub, enforceMembership bool) *MessageHandler {
	return &MessageHandler{store: st, hub: hub, enforceMembership: enforceMembership}
}

// PostMessage добавляет сообщение в конец лога чата
func (h *MessageHandler) PostMessage(c *gin.Context) {
	var req dto.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	chatID, err := uuid.Parse(req.ChatID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chatId"})
		return
	}

	senderID, ok := currentUserID(c)
	if !ok {
		senderID, err = uuid.Parse(req.SenderID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing senderId"})
			return
		}
	}

	if h.enforceMembership {
		isMember, err := h.store.IsParticipant(chatID, senderID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save message"})
			return
		}
		if !isMember {
			c.JSON(http.StatusForbidden, gin.H{"error": "sender is not a participant of this chat"})
			return
		}
	}

	msgType := req.Type
	if msgType == "" {
		msgType = "text"
	}

	message := &models.Message{
		ChatID:    chatID,
		SenderID:  senderID,
		Content:   req.Content,
		Type:      msgType,
		Status:    "sent",
		CreatedAt: time.Now(),
	}

	if err := h.store.SaveMessage(message); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save message"})
		return
	}

	h.broadcast(message)

	c.JSON(http.StatusCreated, formatMessageResponse(message))
}

// ListMessages возвращает сообщения чата в порядке записи
func (h *MessageHandler) ListMessages(c *gin.Context) {
	raw := c.Query("chatId")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing chatId"})
		return
	}

	chatID, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chatId"})
		return
	}

	messages, err := h.store.GetChatMessages(chatID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get messages"})
		return
	}

	result := make([]gin.H, 0, len(messages))
	for i := range messages {
		result = append(result, formatMessageResponse(&messages[i]))
	}

	c.JSON(http.StatusOK, result)
}

// broadcast рассылает событие подписчикам чата, best-effort.
func (h *MessageHandler) broadcast(message *models.Message) {
	if h.hub == nil {
		return
	}

	data, err := json.Marshal(formatMessageResponse(message))
	if err != nil {
		return
	}

	wsMsg := ws.Message{
		Type:      ws.TypeMessage,
		ChatID:    &message.ChatID,
		UserID:    message.SenderID,
		Data:      data,
		Timestamp: time.Now(),
	}

	if msgData, err := json.Marshal(wsMsg); err == nil {
		h.hub.SendToChat(message.ChatID, msgData)
	}
}

// formatMessageResponse форматирует ответ для сообщения
func formatMessageResponse(msg *models.Message) gin.H {
	response := gin.H{
		"id":        msg.ID,
		"chatId":    msg.ChatID,
		"senderId":  msg.SenderID,
		"content":   msg.Content,
		"type":      msg.Type,
		"status":    msg.Status,
		"createdAt": msg.CreatedAt,
	}

	if len(msg.SeenBy) > 0 {
		response["seenBy"] = msg.SeenBy
	}

	return response
}
