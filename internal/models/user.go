package models

import (
	"github.com/google/uuid"
	"time"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username string    `gorm:"uniqueIndex;not null" json:"username"`
	// Пароль хранится как есть; наружу его отдают только DTO без этого поля.
	Password  string    `gorm:"not null" json:"password"`
	CreatedAt time.Time `json:"createdAt"`
}
