package models

import (
	"github.com/google/uuid"
	"time"
)

const (
	ChatIndividual = "individual"
	ChatGroup      = "group"
)

type Chat struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `json:"name"`
	Type      string    `gorm:"not null;check:type IN ('individual','group')" json:"type"`
	CreatedBy uuid.UUID `gorm:"type:uuid" json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`

	// Заполняется стором при чтении, в chats.json не сериализуется.
	ParticipantIDs []uuid.UUID `gorm:"-" json:"-"`
}

// ChatParticipant — строка членства, уникальная на пару (chat, user).
type ChatParticipant struct {
	ChatID uuid.UUID `gorm:"type:uuid;primaryKey" json:"chatId"`
	UserID uuid.UUID `gorm:"type:uuid;primaryKey" json:"userId"`
}
