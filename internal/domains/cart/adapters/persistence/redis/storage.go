package redis

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Apurer/rocketshoes-cart/internal/domains/cart/ports"
)

var _ ports.Storage = (*Storage)(nil)

// Storage keeps the cart slot in Redis. Keys never expire, like browser local storage.
type Storage struct {
	client goredis.Cmdable
}

// NewStorage wires a Redis-backed slot store. Caller manages the client lifecycle.
func NewStorage(client goredis.Cmdable) *Storage {
	return &Storage{client: client}
}

func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	if err := s.ensureClient(); err != nil {
		return "", false, err
	}
	text, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return text, true, nil
}

func (s *Storage) Set(ctx context.Context, key, text string) error {
	if err := s.ensureClient(); err != nil {
		return err
	}
	return s.client.Set(ctx, key, text, 0).Err()
}

func (s *Storage) ensureClient() error {
	if s == nil || s.client == nil {
		return errors.New("redis cart storage not configured")
	}
	return nil
}
