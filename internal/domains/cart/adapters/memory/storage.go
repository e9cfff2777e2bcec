package memory

import (
	"context"
	"sync"

	"github.com/Apurer/rocketshoes-cart/internal/domains/cart/ports"
)

var _ ports.Storage = (*Storage)(nil)

// Storage is an in-memory key/value slot store.
type Storage struct {
	mu    sync.RWMutex
	slots map[string]string
}

func NewStorage() *Storage {
	return &Storage{slots: map[string]string{}}
}

func (s *Storage) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.slots[key]
	return text, ok, nil
}

func (s *Storage) Set(_ context.Context, key, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[key] = text
	return nil
}
