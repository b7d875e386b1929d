package gormstore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/chatlite/internal/models"
	"gorm.io/driver/sqlite"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	return s
}

func createTestUser(t *testing.T, s *Store, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:  username,
		Password:  "pass",
		CreatedAt: time.Now(),
	}
	if err := s.CreateUser(user); err != nil {
		t.Fatalf("Failed to create user %s: %v", username, err)
	}
	return user
}

func createTestChat(t *testing.T, s *Store, chatType string, participants ...uuid.UUID) *models.Chat {
	t.Helper()

	chat := &models.Chat{
		Type:      chatType,
		CreatedBy: participants[0],
		CreatedAt: time.Now(),
	}
	if err := s.CreateChat(chat, participants); err != nil {
		t.Fatalf("Failed to create chat: %v", err)
	}
	return chat
}
