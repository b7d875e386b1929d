// Package jsonstore хранит каждую коллекцию одним JSON-файлом.
// Каждая мутация — это полный цикл чтение файла -> правка в памяти ->
// перезапись файла, сериализованный мьютексом коллекции.
package jsonstore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

const (
	usersFile        = "users.json"
	chatsFile        = "chats.json"
	participantsFile = "participants.json"
	messagesFile     = "messages.json"
	uploadsFile      = "uploads.json"
)

type Store struct {
	dir string

	// По мьютексу на коллекцию: все записи в один файл линеаризованы.
	usersMu        sync.Mutex
	chatsMu        sync.Mutex
	participantsMu sync.Mutex
	messagesMu     sync.Mutex
	uploadsMu      sync.Mutex
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

// load читает коллекцию целиком; отсутствующий файл — пустая коллекция.
func (s *Store) load(name string, out interface{}) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

// save перезаписывает коллекцию целиком через временный файл и rename,
// чтобы упавшая запись не оставила файл в полузаписанном виде.
func (s *Store) save(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
