// Package cache provides intent cache backends keyed by the normalised message text.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	contractx "github.com/tanpawarit/Chative-Store-Assistant/agent/contract"
)

const (
	BackendNone    = "none"
	BackendMemory  = "memory"
	BackendRedis   = "redis"
	BackendUpstash = "upstash"

	defaultKeyPrefix = "intent:"
)

type Config struct {
	Backend   string        `split_words:"true" default:"none"`
	TTL       time.Duration `envconfig:"TTL" default:"1h"`
	Size      int           `split_words:"true" default:"1024"`
	KeyPrefix string        `split_words:"true" default:"intent:"`

	RedisAddr     string `split_words:"true" default:"localhost:6379"`
	RedisPassword string `split_words:"true"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	Upstash UpstashConfig `envconfig:"UPSTASH"`
}

func (c Config) Validate() error {
	switch c.backend() {
	case BackendNone, BackendMemory, BackendRedis:
	case BackendUpstash:
		if strings.TrimSpace(c.Upstash.URL) == "" || strings.TrimSpace(c.Upstash.Token) == "" {
			return fmt.Errorf("%w: upstash cache requires url and token", contractx.ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown cache backend %q", contractx.ErrValidation, c.Backend)
	}
	if c.TTL < 0 {
		return fmt.Errorf("%w: cache ttl must be >= 0", contractx.ErrValidation)
	}
	return nil
}

func (c Config) backend() string {
	b := strings.ToLower(strings.TrimSpace(c.Backend))
	if b == "" {
		return BackendNone
	}
	return b
}

// New builds the configured backend. The "none" backend yields a nil cache.
func New(cfg Config) (contractx.IntentCache, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.backend() {
	case BackendMemory:
		return NewMemory(cfg.Size, cfg.TTL), nil
	case BackendRedis:
		return NewRedis(RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, cfg.TTL), nil
	case BackendUpstash:
		up, err := NewUpstash(cfg.Upstash, WithTTL(cfg.TTL))
		if err != nil {
			return nil, err
		}
		return up, nil
	default:
		return nil, nil
	}
}

// Key derives the cache key for a message: prefix plus the sha256 of the
// trimmed, lower-cased, whitespace-collapsed text.
func Key(prefix, message string) string {
	if strings.TrimSpace(prefix) == "" {
		prefix = defaultKeyPrefix
	}
	normalized := strings.Join(strings.Fields(strings.ToLower(message)), " ")
	sum := sha256.Sum256([]byte(normalized))
	return prefix + hex.EncodeToString(sum[:])
}
