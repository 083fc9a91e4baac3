package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	contractx "github.com/tanpawarit/Chative-Store-Assistant/agent/contract"
)

type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	DialTimeout time.Duration
}

// Redis stores intents in a Redis server.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

var _ contractx.IntentCache = (*Redis)(nil)

func NewRedis(cfg RedisConfig, ttl time.Duration) *Redis {
	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	return NewRedisFromClient(redis.NewClient(opts), ttl)
}

func NewRedisFromClient(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: redis get: %w", contractx.ErrCache, err)
	}
	return val, true, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, key, value, r.ttl).Err(); err != nil {
		return fmt.Errorf("%w: redis set: %w", contractx.ErrCache, err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
