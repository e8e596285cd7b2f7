package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"ticketpro/src/config"
	"ticketpro/src/models"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists the signed-in user between requests.
type SessionStore interface {
	Save(ctx context.Context, sid string, user *models.User, ttl time.Duration) error
	Load(ctx context.Context, sid string) (*models.User, error)
	Clear(ctx context.Context, sid string) error
}

func SessionKey(sid string) string {
	return fmt.Sprintf("%s:%s", config.SESSION_PREFIX, sid)
}

type RedisSessionStore struct {
	rd *redis.Client
}

func NewRedisSessionStore(rd *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rd: rd}
}

func (s *RedisSessionStore) Save(ctx context.Context, sid string, user *models.User, ttl time.Duration) error {
	value, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.rd.Set(ctx, SessionKey(sid), string(value), ttl).Err(); err != nil {
		log.Printf("[redis] Error saving session: %s\n", err.Error())
		return err
	}
	return nil
}

func (s *RedisSessionStore) Load(ctx context.Context, sid string) (*models.User, error) {
	val, err := s.rd.Get(ctx, SessionKey(sid)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		log.Printf("[redis] Error loading session: %s\n", err.Error())
		return nil, err
	}
	var user models.User
	if err := json.Unmarshal([]byte(val), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *RedisSessionStore) Clear(ctx context.Context, sid string) error {
	return s.rd.Del(ctx, SessionKey(sid)).Err()
}

type memorySession struct {
	user      models.User
	expiresAt time.Time
}

type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]memorySession
	now      func() time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: map[string]memorySession{}, now: time.Now}
}

func (s *MemorySessionStore) Save(ctx context.Context, sid string, user *models.User, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := memorySession{user: *user}
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}
	s.sessions[SessionKey(sid)] = entry
	return nil
}

func (s *MemorySessionStore) Load(ctx context.Context, sid string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := SessionKey(sid)
	entry, ok := s.sessions[key]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if !entry.expiresAt.IsZero() && s.now().After(entry.expiresAt) {
		delete(s.sessions, key)
		return nil, ErrSessionNotFound
	}
	user := entry.user
	return &user, nil
}

func (s *MemorySessionStore) Clear(ctx context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, SessionKey(sid))
	return nil
}
