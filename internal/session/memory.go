package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"todo-service/internal/entity"
)

// MemoryStore is a mutex-guarded in-process session map. Sessions do not
// survive a restart and are invisible to other instances, so it is only
// wired for development and tests; production uses RedisStore.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*entity.Session
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]*entity.Session),
	}
}

func (s *MemoryStore) Create(ctx context.Context, userID int, username string) (*entity.Session, error) {
	sess := &entity.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		Username:  username,
		ExpiresAt: time.Now().Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[sess.Token] = sess
	s.mu.Unlock()

	return sess, nil
}

func (s *MemoryStore) Find(ctx context.Context, token string) (*entity.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return nil, nil
	}
	if time.Now().After(sess.ExpiresAt) {
		// There is no background sweep; expired entries are reaped on read.
		delete(s.sessions, token)
		return nil, nil
	}

	copied := *sess
	return &copied, nil
}

func (s *MemoryStore) Destroy(ctx context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}
