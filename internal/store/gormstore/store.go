package gormstore

import (
	"github.com/thereayou/chatlite/internal/models"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

// Open подключается через переданный диалект (postgres или sqlite)
// и прогоняет миграции.
func Open(dialector gorm.Dialector) (*Store, error) {
	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Chat{},
		&models.ChatParticipant{},
		&models.Message{},
		&models.Upload{},
	)
	if err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}
