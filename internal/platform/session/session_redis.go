// Package session はoracleセッションの保存先を提供します。
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"lunch_oracle/internal/feature/oracle/domain"
	"lunch_oracle/internal/feature/oracle/domain/entity"
	"lunch_oracle/internal/feature/oracle/usecase"
)

// DefaultTTL はセッションの既定の保持期間です。
const DefaultTTL = 24 * time.Hour

// SessionRedis implements usecase.SessionRepository using Redis.
type SessionRedis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ usecase.SessionRepository = (*SessionRedis)(nil)

// NewSessionRedis creates a new SessionRedis instance.
// If ttl is 0 or negative, DefaultTTL is used. If prefix is empty, "oracle:session" is used.
func NewSessionRedis(client *redis.Client, prefix string, ttl time.Duration) *SessionRedis {
	if prefix == "" {
		prefix = "oracle:session"
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SessionRedis{client: client, prefix: prefix, ttl: ttl}
}

// sessionKey returns the Redis key for a session.
func (r *SessionRedis) sessionKey(id string) string {
	return fmt.Sprintf("%s:%s", r.prefix, id)
}

// Save persists a session and refreshes its TTL.
func (r *SessionRedis) Save(ctx context.Context, s *entity.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return r.client.Set(ctx, r.sessionKey(s.ID), data, r.ttl).Err()
}

// FindByID retrieves a session by its ID.
func (r *SessionRedis) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	data, err := r.client.Get(ctx, r.sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	var s entity.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &s, nil
}

// Delete removes a session. Deleting a missing session is not an error.
func (r *SessionRedis) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, r.sessionKey(id)).Err()
}
