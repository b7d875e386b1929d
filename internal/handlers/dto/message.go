package dto

type PostMessageRequest struct {
	ChatID  string `json:"chatId" binding:"required"`
	Content string `json:"content" binding:"required"`
	// SenderID используется в режиме без токенов.
	SenderID string `json:"senderId"`
	Type     string `json:"type"`
}
