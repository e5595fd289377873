package session

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"plant_nursery/model"
)

// Fixed storage keys.
const (
	KeyToken    = "token"
	KeyRole     = "role"
	KeyLanguage = "language"
)

// Storage is a persistent string key/value store.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(keys ...string) error
}

type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStorage) Delete(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

// FileStorage keeps the values in a YAML file, rewritten on every change.
type FileStorage struct {
	mu     sync.RWMutex
	path   string
	values map[string]string
}

func OpenFileStorage(path string) (*FileStorage, error) {
	fs := &FileStorage{path: path, values: make(map[string]string)}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fs, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, &fs.values); err != nil {
		return nil, fmt.Errorf("session file %s: %w", path, err)
	}
	if fs.values == nil {
		fs.values = make(map[string]string)
	}
	return fs, nil
}

func (f *FileStorage) Get(key string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.values[key]
	return v, ok
}

func (f *FileStorage) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	return f.flush()
}

func (f *FileStorage) Delete(keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range keys {
		delete(f.values, key)
	}
	return f.flush()
}

func (f *FileStorage) flush() error {
	data, err := yaml.Marshal(f.values)
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0o600)
}

// Session reads and writes the auth token, role and language preference.
type Session struct {
	storage Storage
}

func New(storage Storage) *Session {
	return &Session{storage: storage}
}

func (s *Session) Save(token string, role model.Role) error {
	if err := s.storage.Set(KeyToken, token); err != nil {
		return err
	}
	return s.storage.Set(KeyRole, string(role))
}

func (s *Session) Token() string {
	token, _ := s.storage.Get(KeyToken)
	return token
}

func (s *Session) Role() model.Role {
	role, _ := s.storage.Get(KeyRole)
	return model.Role(role)
}

func (s *Session) LoggedIn() bool {
	return s.Token() != ""
}

// Clear forgets the credentials; the language preference survives logout.
func (s *Session) Clear() error {
	return s.storage.Delete(KeyToken, KeyRole)
}

func (s *Session) Language() string {
	lang, ok := s.storage.Get(KeyLanguage)
	if !ok {
		return "en"
	}
	return lang
}

func (s *Session) SetLanguage(lang string) error {
	return s.storage.Set(KeyLanguage, lang)
}
