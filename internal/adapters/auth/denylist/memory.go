package denylist

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// Memory es la denylist por proceso cuando no hay Redis configurado.
type Memory struct {
	c   *cache.Cache
	now func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		c:   cache.New(cache.NoExpiration, 10*time.Minute),
		now: time.Now,
	}
}

func (m *Memory) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := until.Sub(m.now())
	if ttl <= 0 {
		return nil
	}
	m.c.Set(tokenID, struct{}{}, ttl)
	return nil
}

func (m *Memory) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	_, found := m.c.Get(tokenID)
	return found, nil
}
