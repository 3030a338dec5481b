package session

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/tarcanfarm/farm-backend/internal/models"
)

const (
	sessionKeyPrefix     = "session:"
	userSessionKeyPrefix = "user_session:"
)

// RedisStore keeps session records in Redis with a 7-day TTL. A
// user_session reverse mapping lets a new login invalidate the previous
// session so the expiry timer restarts from the current login.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Create(ctx context.Context, user *models.User) (string, error) {
	// Drop any existing session for this user first
	s.invalidateUserSession(ctx, user.ID.String())

	token, err := newToken()
	if err != nil {
		return "", err
	}

	// PasswordHash is json:"-" so the snapshot never contains it
	snapshot, err := json.Marshal(user)
	if err != nil {
		return "", err
	}

	if err := s.client.Set(ctx, sessionKeyPrefix+token, snapshot, Duration).Err(); err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, userSessionKeyPrefix+user.ID.String(), token, Duration).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *RedisStore) Resolve(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, nil
	}
	val, err := s.client.Get(ctx, sessionKeyPrefix+token).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := json.Unmarshal([]byte(val), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *RedisStore) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	// Remove the reverse mapping before the session record
	val, err := s.client.Get(ctx, sessionKeyPrefix+token).Result()
	if err == nil && val != "" {
		var user models.User
		if json.Unmarshal([]byte(val), &user) == nil {
			s.client.Del(ctx, userSessionKeyPrefix+user.ID.String())
		}
	}
	return s.client.Del(ctx, sessionKeyPrefix+token).Err()
}

func (s *RedisStore) invalidateUserSession(ctx context.Context, userID string) {
	token, err := s.client.Get(ctx, userSessionKeyPrefix+userID).Result()
	if err == nil && token != "" {
		s.client.Del(ctx, sessionKeyPrefix+token)
	}
	s.client.Del(ctx, userSessionKeyPrefix+userID)
}
