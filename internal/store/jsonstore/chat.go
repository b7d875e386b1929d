package jsonstore

import (
	"github.com/google/uuid"
	"github.com/thereayou/chatlite/internal/models"
	"github.com/thereayou/chatlite/internal/store"
)

// Порядок взятия мьютексов для операций над двумя коллекциями
// всегда один: сначала chats, потом participants.

func (s *Store) CreateChat(chat *models.Chat, participantIDs []uuid.UUID) error {
	s.chatsMu.Lock()
	defer s.chatsMu.Unlock()
	s.participantsMu.Lock()
	defer s.participantsMu.Unlock()

	var chats []models.Chat
	if err := s.load(chatsFile, &chats); err != nil {
		return err
	}

	if chat.ID == uuid.Nil {
		chat.ID = uuid.New()
	}

	chats = append(chats, *chat)
	if err := s.save(chatsFile, chats); err != nil {
		return err
	}

	var links []models.ChatParticipant
	if err := s.load(participantsFile, &links); err != nil {
		return err
	}
	for _, userID := range participantIDs {
		links = append(links, models.ChatParticipant{ChatID: chat.ID, UserID: userID})
	}
	if err := s.save(participantsFile, links); err != nil {
		return err
	}

	chat.ParticipantIDs = participantIDs
	return nil
}

func (s *Store) FindIndividualChat(a, b uuid.UUID) (*models.Chat, error) {
	s.chatsMu.Lock()
	defer s.chatsMu.Unlock()
	s.participantsMu.Lock()
	defer s.participantsMu.Unlock()

	var chats []models.Chat
	if err := s.load(chatsFile, &chats); err != nil {
		return nil, err
	}
	members, err := s.membersByChat()
	if err != nil {
		return nil, err
	}

	for i := range chats {
		if chats[i].Type != models.ChatIndividual {
			continue
		}
		ids := members[chats[i].ID]
		if len(ids) != 2 {
			continue
		}
		if (ids[0] == a && ids[1] == b) || (ids[0] == b && ids[1] == a) {
			chats[i].ParticipantIDs = ids
			return &chats[i], nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) GetUserChats(userID uuid.UUID) ([]models.Chat, error) {
	s.chatsMu.Lock()
	defer s.chatsMu.Unlock()
	s.participantsMu.Lock()
	defer s.participantsMu.Unlock()

	var chats []models.Chat
	if err := s.load(chatsFile, &chats); err != nil {
		return nil, err
	}
	members, err := s.membersByChat()
	if err != nil {
		return nil, err
	}

	result := make([]models.Chat, 0)
	for i := range chats {
		for _, id := range members[chats[i].ID] {
			if id == userID {
				chats[i].ParticipantIDs = members[chats[i].ID]
				result = append(result, chats[i])
				break
			}
		}
	}
	return result, nil
}

func (s *Store) IsParticipant(chatID, userID uuid.UUID) (bool, error) {
	s.participantsMu.Lock()
	defer s.participantsMu.Unlock()

	var links []models.ChatParticipant
	if err := s.load(participantsFile, &links); err != nil {
		return false, err
	}

	for _, link := range links {
		if link.ChatID == chatID && link.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

// membersByChat собирает участников по чатам; вызывающий держит participantsMu.
func (s *Store) membersByChat() (map[uuid.UUID][]uuid.UUID, error) {
	var links []models.ChatParticipant
	if err := s.load(participantsFile, &links); err != nil {
		return nil, err
	}

	members := make(map[uuid.UUID][]uuid.UUID)
	for _, link := range links {
		members[link.ChatID] = append(members[link.ChatID], link.UserID)
	}
	return members, nil
}
