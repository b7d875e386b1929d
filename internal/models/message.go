package models

import (
	"github.com/google/uuid"
	"time"
)

type Message struct {
	// Seq — монотонный порядок вставки в реляционном сторе.
	// В файловом сторе порядок задаёт сам файл, туда Seq не пишется.
	Seq      int64     `gorm:"primaryKey;autoIncrement" json:"-"`
	ID       uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"id"`
	ChatID   uuid.UUID `gorm:"type:uuid;not null;index" json:"chatId"`
	SenderID uuid.UUID `gorm:"type:uuid;not null" json:"senderId"`
	Content  string    `gorm:"not null" json:"content"`
	Type     string    `gorm:"default:'text'" json:"type"`
	Status   string    `gorm:"default:'sent'" json:"status"`

	SeenBy []uuid.UUID `gorm:"serializer:json" json:"seenBy,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}
