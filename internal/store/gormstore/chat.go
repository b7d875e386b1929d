package gormstore

import (
	"errors"

	"github.com/google/uuid"
	"github.com/thereayou/chatlite/internal/models"
	"github.com/thereayou/chatlite/internal/store"
	"gorm.io/gorm"
)

func (s *Store) CreateChat(chat *models.Chat, participantIDs []uuid.UUID) error {
	if chat.ID == uuid.Nil {
		chat.ID = uuid.New()
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(chat).Error; err != nil {
			return err
		}
		for _, userID := range participantIDs {
			link := models.ChatParticipant{ChatID: chat.ID, UserID: userID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	chat.ParticipantIDs = participantIDs
	return nil
}

// FindIndividualChat ищет individual-чат ровно с двумя участниками {a, b}.
// Подзапрос с COUNT гарантирует точное равенство множеств, а не включение.
func (s *Store) FindIndividualChat(a, b uuid.UUID) (*models.Chat, error) {
	var chat models.Chat

	err := s.db.
		Joins("JOIN chat_participants p1 ON p1.chat_id = chats.id AND p1.user_id = ?", a).
		Joins("JOIN chat_participants p2 ON p2.chat_id = chats.id AND p2.user_id = ?", b).
		Where("chats.type = ?", models.ChatIndividual).
		Where("(SELECT COUNT(*) FROM chat_participants cp WHERE cp.chat_id = chats.id) = 2").
		First(&chat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	if err := s.loadParticipantIDs(&chat); err != nil {
		return nil, err
	}
	return &chat, nil
}

func (s *Store) GetUserChats(userID uuid.UUID) ([]models.Chat, error) {
	var chats []models.Chat

	err := s.db.
		Joins("JOIN chat_participants p ON p.chat_id = chats.id").
		Where("p.user_id = ?", userID).
		Find(&chats).Error
	if err != nil {
		return nil, err
	}

	for i := range chats {
		if err := s.loadParticipantIDs(&chats[i]); err != nil {
			return nil, err
		}
	}
	return chats, nil
}

func (s *Store) IsParticipant(chatID, userID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&models.ChatParticipant{}).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Count(&count).Error
	return count > 0, err
}

func (s *Store) loadParticipantIDs(chat *models.Chat) error {
	var links []models.ChatParticipant
	if err := s.db.Where("chat_id = ?", chat.ID).Find(&links).Error; err != nil {
		return err
	}

	chat.ParticipantIDs = make([]uuid.UUID, 0, len(links))
	for _, link := range links {
		chat.ParticipantIDs = append(chat.ParticipantIDs, link.UserID)
	}
	return nil
}
