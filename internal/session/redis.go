package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"todo-service/internal/entity"
)

// RedisStore keeps sessions in redis under session:<token> with a TTL, so
// restart durability and multi-instance deployments come for free. The
// record still carries ExpiresAt and Find checks it explicitly; a stale
// key that outlived its TTL bookkeeping reads as absent, never as an error.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

func (s *RedisStore) Create(ctx context.Context, userID int, username string) (*entity.Session, error) {
	sess := &entity.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		Username:  username,
		ExpiresAt: time.Now().Add(s.ttl),
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return nil, err
	}

	if err := s.rdb.Set(ctx, sessionKey(sess.Token), payload, s.ttl).Err(); err != nil {
		return nil, err
	}

	return sess, nil
}

func (s *RedisStore) Find(ctx context.Context, token string) (*entity.Session, error) {
	val, err := s.rdb.Get(ctx, sessionKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	sess := &entity.Session{}
	if err := json.Unmarshal([]byte(val), sess); err != nil {
		return nil, err
	}
	if time.Now().After(sess.ExpiresAt) {
		return nil, nil
	}

	return sess, nil
}

func (s *RedisStore) Destroy(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, sessionKey(token)).Err()
}
