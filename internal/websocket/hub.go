package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MessageType определяет типы событий на сокете
type MessageType string

const (
	// Системные типы
	TypePing MessageType = "ping"
	TypePong MessageType = "pong"

	// Подписка на чаты
	TypeChatJoin  MessageType = "chat_join"
	TypeChatLeave MessageType = "chat_leave"

	// Новое сообщение в чате
	TypeMessage MessageType = "message"
)

type Message struct {
	Type      MessageType     `json:"type"`
	ChatID    *uuid.UUID      `json:"chat_id,omitempty"`
	UserID    uuid.UUID       `json:"user_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// Hub раздаёт события по подключённым клиентам. Доставка best-effort:
// переполненная очередь клиента просто пропускается.
type Hub struct {
	clients map[uuid.UUID]*Client

	// Клиенты, подписанные на чат
	chats map[uuid.UUID]map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub создает новый Hub
func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:    make(map[uuid.UUID]*Client),
		chats:      make(map[uuid.UUID]map[uuid.UUID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Run запускает hub
func (h *Hub) Run() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case <-ticker.C:
			h.ping()
		}
	}
}

// Stop останавливает hub
func (h *Hub) Stop() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		close(client.Send)
		client.Conn.Close()
	}
}

// Register регистрирует нового клиента
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister отменяет регистрацию клиента
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client
	log.Printf("Client registered: %s (User: %s)", client.ID, client.UserID)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; ok {
		for chatID := range client.Chats {
			h.removeFromChatUnsafe(client, chatID)
		}

		delete(h.clients, client.ID)
		close(client.Send)

		log.Printf("Client unregistered: %s (User: %s)", client.ID, client.UserID)
	}
}

// JoinChat подписывает клиента на события чата
func (h *Hub) JoinChat(client *Client, chatID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.chats[chatID]; !ok {
		h.chats[chatID] = make(map[uuid.UUID]*Client)
	}

	h.chats[chatID][client.ID] = client
	client.mu.Lock()
	client.Chats[chatID] = true
	client.mu.Unlock()
}

// LeaveChat снимает подписку клиента с чата
func (h *Hub) LeaveChat(client *Client, chatID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeFromChatUnsafe(client, chatID)
}

func (h *Hub) removeFromChatUnsafe(client *Client, chatID uuid.UUID) {
	if chat, ok := h.chats[chatID]; ok {
		if _, ok := chat[client.ID]; ok {
			delete(chat, client.ID)
			client.mu.Lock()
			delete(client.Chats, chatID)
			client.mu.Unlock()

			if len(chat) == 0 {
				delete(h.chats, chatID)
			}
		}
	}
}

// SendToChat отправляет событие всем подписчикам чата
func (h *Hub) SendToChat(chatID uuid.UUID, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if chat, ok := h.chats[chatID]; ok {
		for _, client := range chat {
			if err := client.enqueue(message); err != nil {
				log.Printf("Client %s: %v", client.ID, err)
			}
		}
	}
}

func (h *Hub) ping() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	msg := Message{
		Type:      TypePing,
		Timestamp: time.Now(),
	}

	if data, err := json.Marshal(msg); err == nil {
		for _, client := range h.clients {
			// Пропуск ping не критичен, клиент отвалится по дедлайну
			_ = client.enqueue(data)
		}
	}
}

// GetChatUsers возвращает список пользователей, подписанных на чат
func (h *Hub) GetChatUsers(chatID uuid.UUID) []uuid.UUID {
	h.mu.RLock()
	defer h.mu.RUnlock()

	userMap := make(map[uuid.UUID]bool)
	if chat, ok := h.chats[chatID]; ok {
		for _, client := range chat {
			userMap[client.UserID] = true
		}
	}

	users := make([]uuid.UUID, 0, len(userMap))
	for userID := range userMap {
		users = append(users, userID)
	}
	return users
}
