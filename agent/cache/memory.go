package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	contractx "github.com/tanpawarit/Chative-Store-Assistant/agent/contract"
)

// Memory is an in-process LRU with per-entry expiry.
type Memory struct {
	lru *expirable.LRU[string, string]
}

var _ contractx.IntentCache = (*Memory)(nil)

// NewMemory creates a cache holding at most size entries. A zero ttl disables expiry.
func NewMemory(size int, ttl time.Duration) *Memory {
	if size <= 0 {
		size = 1024
	}
	return &Memory{lru: expirable.NewLRU[string, string](size, nil, ttl)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.lru.Get(key)
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.lru.Add(key, value)
	return nil
}

func (m *Memory) Len() int {
	return m.lru.Len()
}
