package jsonstore

import (
	"github.com/google/uuid"
	"github.com/thereayou/chatlite/internal/models"
	"github.com/thereayou/chatlite/internal/store"
)

func (s *Store) CreateUser(user *models.User) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	var users []models.User
	if err := s.load(usersFile, &users); err != nil {
		return err
	}

	for _, u := range users {
		if u.Username == user.Username {
			return store.ErrUsernameTaken
		}
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	users = append(users, *user)
	return s.save(usersFile, users)
}

func (s *Store) GetUserByID(id uuid.UUID) (*models.User, error) {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	var users []models.User
	if err := s.load(usersFile, &users); err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) GetUserByUsername(username string) (*models.User, error) {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	var users []models.User
	if err := s.load(usersFile, &users); err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, store.ErrNotFound
}
