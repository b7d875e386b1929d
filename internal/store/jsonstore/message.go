package jsonstore

import (
	"github.com/google/uuid"
	"github.com/thereayou/chatlite/internal/models"
)

func (s *Store) SaveMessage(message *models.Message) error {
	s.messagesMu.Lock()
	defer s.messagesMu.Unlock()

	var messages []models.Message
	if err := s.load(messagesFile, &messages); err != nil {
		return err
	}

	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}

	// Только append: порядок в файле и есть порядок вставки.
	messages = append(messages, *message)
	return s.save(messagesFile, messages)
}

func (s *Store) GetChatMessages(chatID uuid.UUID) ([]models.Message, error) {
	s.messagesMu.Lock()
	defer s.messagesMu.Unlock()

	var messages []models.Message
	if err := s.load(messagesFile, &messages); err != nil {
		return nil, err
	}

	result := make([]models.Message, 0)
	for _, m := range messages {
		if m.ChatID == chatID {
			result = append(result, m)
		}
	}
	return result, nil
}
