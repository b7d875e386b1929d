package models

import (
	"github.com/google/uuid"
	"time"
)

type Upload struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Filename     string    `gorm:"uniqueIndex;not null" json:"filename"`
	OriginalName string    `json:"originalName"`
	// Относительный путь, по которому файл отдаётся статикой.
	Path       string    `json:"path"`
	Size       int64     `json:"size"`
	Mimetype   string    `json:"mimetype"`
	UploadedBy uuid.UUID `gorm:"type:uuid" json:"uploadedBy"`
	UploadedAt time.Time `json:"uploadedAt"`
}
