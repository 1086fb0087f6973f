package client

import (
	"encoding/json"
	"os"
	"sync"
)

// TokenStore holds the current session credentials. Implementations
// must be safe for concurrent use.
type TokenStore interface {
	AccessToken() string
	RefreshToken() string
	SetTokens(accessToken, refreshToken string) error
	Clear() error
}

// MemoryTokenStore keeps the pair in process memory.
type MemoryTokenStore struct {
	mu      sync.RWMutex
	access  string
	refresh string
}

// NewMemoryTokenStore returns an empty in-memory store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

func (s *MemoryTokenStore) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

func (s *MemoryTokenStore) SetTokens(accessToken, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = accessToken
	s.refresh = refreshToken
	return nil
}

func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = ""
	s.refresh = ""
	return nil
}

// FileTokenStore persists the pair as a small JSON document so a CLI
// session survives process restarts.
type FileTokenStore struct {
	mu   sync.Mutex
	path string
}

type storedTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// NewFileTokenStore returns a store backed by the given file path. The
// file is created on first write.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

func (s *FileTokenStore) AccessToken() string {
	tokens, _ := s.load()
	return tokens.AccessToken
}

func (s *FileTokenStore) RefreshToken() string {
	tokens, _ := s.load()
	return tokens.RefreshToken
}

func (s *FileTokenStore) SetTokens(accessToken, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(storedTokens{AccessToken: accessToken, RefreshToken: refreshToken})
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

func (s *FileTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *FileTokenStore) load() (storedTokens, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var tokens storedTokens
	data, err := os.ReadFile(s.path)
	if err != nil {
		return tokens, err
	}
	if err := json.Unmarshal(data, &tokens); err != nil {
		return storedTokens{}, err
	}
	return tokens, nil
}
