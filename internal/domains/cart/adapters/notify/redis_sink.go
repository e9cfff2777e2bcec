package notify

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultChannel is the pub/sub channel notifications are published on.
const DefaultChannel = "cart:notifications"

// Event is the payload published for every notification.
type Event struct {
	ID      string    `json:"id"`
	Level   string    `json:"level"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// Publisher is the subset of the redis client the sink needs.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisSink publishes notifications for UI clients subscribed to the channel.
// Publish failures are logged and dropped.
type RedisSink struct {
	client  Publisher
	channel string
	logger  *slog.Logger
	now     func() time.Time
}

func NewRedisSink(client Publisher, channel string, logger *slog.Logger) *RedisSink {
	if channel == "" {
		channel = DefaultChannel
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &RedisSink{client: client, channel: channel, logger: logger, now: time.Now}
}

func (s *RedisSink) Error(ctx context.Context, message string) {
	if s == nil || s.client == nil {
		return
	}
	payload, err := json.Marshal(Event{
		ID:      uuid.NewString(),
		Level:   "error",
		Message: message,
		Time:    s.now().UTC(),
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to encode notification", slog.String("error", err.Error()))
		return
	}
	if err := s.client.Publish(ctx, s.channel, payload).Err(); err != nil {
		s.logger.WarnContext(ctx, "failed to publish notification", slog.String("channel", s.channel), slog.String("error", err.Error()))
	}
}
