package store

import (
	"errors"

	"github.com/google/uuid"
	"github.com/thereayou/chatlite/internal/models"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrUsernameTaken = errors.New("username already taken")
)

// Store — контракт хранилища поверх пяти коллекций: пользователи, чаты,
// участники, сообщения и загрузки. Реализации обязаны линеаризовать
// мутации одной коллекции между собой и сохранять порядок вставки сообщений.
type Store interface {
	CreateUser(user *models.User) error
	GetUserByID(id uuid.UUID) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)

	// CreateChat создаёт чат и ровно по одной строке членства на каждый id.
	CreateChat(chat *models.Chat, participantIDs []uuid.UUID) error
	// FindIndividualChat ищет individual-чат, множество участников которого
	// в точности {a, b}. Возвращает ErrNotFound, если такого нет.
	FindIndividualChat(a, b uuid.UUID) (*models.Chat, error)
	GetUserChats(userID uuid.UUID) ([]models.Chat, error)
	IsParticipant(chatID, userID uuid.UUID) (bool, error)

	SaveMessage(message *models.Message) error
	GetChatMessages(chatID uuid.UUID) ([]models.Message, error)

	SaveUpload(upload *models.Upload) error
}
