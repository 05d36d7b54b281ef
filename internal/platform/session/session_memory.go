package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"lunch_oracle/internal/feature/oracle/domain"
	"lunch_oracle/internal/feature/oracle/domain/entity"
	"lunch_oracle/internal/feature/oracle/usecase"
)

// SessionMemory はRedisが使えない場合のプロセス内セッション保存先です。
// 呼び出し側と状態を共有しないよう、JSONに直列化して保持します。
type SessionMemory struct {
	c *gocache.Cache
}

var _ usecase.SessionRepository = (*SessionMemory)(nil)

// NewSessionMemory はSessionMemoryの新しいインスタンスを生成します。
func NewSessionMemory(ttl time.Duration) *SessionMemory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SessionMemory{c: gocache.New(ttl, ttl/2)}
}

func (m *SessionMemory) Save(_ context.Context, s *entity.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	m.c.SetDefault(s.ID, data)
	return nil
}

func (m *SessionMemory) FindByID(_ context.Context, id string) (*entity.Session, error) {
	v, ok := m.c.Get(id)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	var s entity.Session
	if err := json.Unmarshal(v.([]byte), &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &s, nil
}

func (m *SessionMemory) Delete(_ context.Context, id string) error {
	m.c.Delete(id)
	return nil
}
