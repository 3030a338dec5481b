package session

import (
	"context"
	"sync"
	"time"

	"github.com/tarcanfarm/farm-backend/internal/models"
)

// MemoryStore is the in-process session store used by tests and when
// running without Redis.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memorySession
	byUser   map[string]string
}

type memorySession struct {
	user      models.User
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memorySession),
		byUser:   make(map[string]string),
	}
}

func (s *MemoryStore) Create(_ context.Context, user *models.User) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	snapshot := *user
	snapshot.PasswordHash = ""

	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.byUser[user.ID.String()]; ok {
		delete(s.sessions, old)
	}
	s.sessions[token] = memorySession{user: snapshot, expiresAt: time.Now().Add(Duration)}
	s.byUser[user.ID.String()] = token
	return token, nil
}

func (s *MemoryStore) Resolve(_ context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, nil
	}
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok || time.Now().After(sess.expiresAt) {
		return nil, nil
	}
	user := sess.user
	return &user, nil
}

func (s *MemoryStore) Destroy(_ context.Context, token string) error {
	if token == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[token]; ok {
		delete(s.byUser, sess.user.ID.String())
		delete(s.sessions, token)
	}
	return nil
}
