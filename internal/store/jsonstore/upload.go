package jsonstore

import (
	"github.com/google/uuid"
	"github.com/thereayou/chatlite/internal/models"
)

func (s *Store) SaveUpload(upload *models.Upload) error {
	s.uploadsMu.Lock()
	defer s.uploadsMu.Unlock()

	var uploads []models.Upload
	if err := s.load(uploadsFile, &uploads); err != nil {
		return err
	}

	if upload.ID == uuid.Nil {
		upload.ID = uuid.New()
	}

	uploads = append(uploads, *upload)
	return s.save(uploadsFile, uploads)
}
