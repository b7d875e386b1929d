package gormstore

import (
	"errors"
	"testing"

	"github.com/thereayou/chatlite/internal/models"
	"github.com/thereayou/chatlite/internal/store"
)

func TestCreateChatParticipants(t *testing.T) {
	s := setupTestStore(t)

	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")

	chat := createTestChat(t, s, models.ChatIndividual, alice.ID, bob.ID)

	isMember, err := s.IsParticipant(chat.ID, alice.ID)
	if err != nil {
		t.Fatalf("IsParticipant failed: %v", err)
	}
	if !isMember {
		t.Error("Expected alice to be participant")
	}

	isMember, _ = s.IsParticipant(chat.ID, bob.ID)
	if !isMember {
		t.Error("Expected bob to be participant")
	}
}

func TestFindIndividualChatOrderIndependent(t *testing.T) {
	s := setupTestStore(t)

	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")

	chat := createTestChat(t, s, models.ChatIndividual, alice.ID, bob.ID)

	found, err := s.FindIndividualChat(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("FindIndividualChat failed: %v", err)
	}
	if found.ID != chat.ID {
		t.Errorf("Expected chat %s, got %s", chat.ID, found.ID)
	}

	// Обратный порядок id должен находить тот же чат
	found, err = s.FindIndividualChat(bob.ID, alice.ID)
	if err != nil {
		t.Fatalf("FindIndividualChat reversed failed: %v", err)
	}
	if found.ID != chat.ID {
		t.Errorf("Expected chat %s for reversed pair, got %s", chat.ID, found.ID)
	}
}

func TestFindIndividualChatExactSetOnly(t *testing.T) {
	s := setupTestStore(t)

	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	carol := createTestUser(t, s, "carol")

	// Групповой чат с той же парой внутри не должен находиться
	createTestChat(t, s, models.ChatGroup, alice.ID, bob.ID, carol.ID)

	_, err := s.FindIndividualChat(alice.ID, bob.ID)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestFindIndividualChatIgnoresGroupType(t *testing.T) {
	s := setupTestStore(t)

	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")

	// Группа ровно на двоих — не individual, дедупликация её не видит
	createTestChat(t, s, models.ChatGroup, alice.ID, bob.ID)

	_, err := s.FindIndividualChat(alice.ID, bob.ID)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for group chat, got %v", err)
	}
}

func TestGetUserChats(t *testing.T) {
	s := setupTestStore(t)

	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	carol := createTestUser(t, s, "carol")

	chat := createTestChat(t, s, models.ChatIndividual, alice.ID, bob.ID)
	createTestChat(t, s, models.ChatIndividual, bob.ID, carol.ID)

	chats, err := s.GetUserChats(alice.ID)
	if err != nil {
		t.Fatalf("GetUserChats failed: %v", err)
	}
	if len(chats) != 1 {
		t.Fatalf("Expected 1 chat for alice, got %d", len(chats))
	}
	if chats[0].ID != chat.ID {
		t.Errorf("Expected chat %s, got %s", chat.ID, chats[0].ID)
	}
	if len(chats[0].ParticipantIDs) != 2 {
		t.Errorf("Expected 2 participants, got %d", len(chats[0].ParticipantIDs))
	}

	chats, err = s.GetUserChats(bob.ID)
	if err != nil {
		t.Fatalf("GetUserChats failed: %v", err)
	}
	if len(chats) != 2 {
		t.Errorf("Expected 2 chats for bob, got %d", len(chats))
	}
}
