package gormstore

import (
	"github.com/google/uuid"
	"github.com/thereayou/chatlite/internal/models"
)

func (s *Store) SaveMessage(message *models.Message) error {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	return s.db.Create(message).Error
}

// GetChatMessages отдаёт сообщения чата в порядке вставки (по seq).
func (s *Store) GetChatMessages(chatID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message

	err := s.db.
		Where("chat_id = ?", chatID).
		Order("seq ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
