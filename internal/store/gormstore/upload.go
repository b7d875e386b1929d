package gormstore

import (
	"github.com/google/uuid"
	"github.com/thereayou/chatlite/internal/models"
)

func (s *Store) SaveUpload(upload *models.Upload) error {
	if upload.ID == uuid.Nil {
		upload.ID = uuid.New()
	}
	return s.db.Create(upload).Error
}
