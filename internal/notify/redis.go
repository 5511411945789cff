package notify

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	ovaerr "github.com/KirkDiggler/ova-combat/internal/errors"
)

// DefaultChannel is the pub/sub channel notifications go to
const DefaultChannel = "ova:notifications"

// RedisPublisherConfig holds configuration for the Redis publisher
type RedisPublisherConfig struct {
	Client  redis.UniversalClient
	Channel string
	Logger  *zap.Logger
}

// RedisPublisher publishes notifications as JSON on a Redis channel
type RedisPublisher struct {
	client  redis.UniversalClient
	channel string
	logger  *zap.Logger
}

// NewRedisPublisher creates a publisher
func NewRedisPublisher(cfg *RedisPublisherConfig) *RedisPublisher {
	if cfg == nil {
		panic("RedisPublisherConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}

	channel := cfg.Channel
	if channel == "" {
		channel = DefaultChannel
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &RedisPublisher{
		client:  cfg.Client,
		channel: channel,
		logger:  logger,
	}
}

// Notify publishes n. Nobody listening is not an error.
func (p *RedisPublisher) Notify(ctx context.Context, n *Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return ovaerr.Wrap(err, "failed to marshal notification")
	}

	receivers, err := p.client.Publish(ctx, p.channel, string(data)).Result()
	if err != nil {
		return ovaerr.Wrapf(err, "failed to publish to %s", p.channel)
	}

	p.logger.Debug("notification published",
		zap.String("channel", p.channel),
		zap.String("kind", n.Kind),
		zap.Int64("receivers", receivers))
	return nil
}
