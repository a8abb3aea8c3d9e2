package cache

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/janhq/autoreply-api/internal/config"
	"github.com/janhq/autoreply-api/internal/domain/retrieval"
)

// Config selects and sizes the embedding cache backend.
type Config struct {
	Type      string // "redis", "memory", "noop"
	RedisURL  string
	KeyPrefix string
	MaxSize   int
	TTL       time.Duration
}

// ConfigFromApp maps application config onto cache config.
func ConfigFromApp(cfg *config.Config) Config {
	return Config{
		Type:      cfg.EmbeddingCacheType,
		RedisURL:  cfg.EmbeddingCacheRedisURL,
		KeyPrefix: cfg.EmbeddingCacheKeyPrefix,
		MaxSize:   cfg.EmbeddingCacheMaxSize,
		TTL:       cfg.EmbeddingCacheTTL,
	}
}

// New builds the configured embedding cache.
func New(cfg Config, log zerolog.Logger) (retrieval.EmbeddingCache, error) {
	switch cfg.Type {
	case config.CacheTypeRedis:
		c, err := NewRedisCache(cfg.RedisURL, cfg.KeyPrefix, cfg.TTL, log)
		if err != nil {
			return nil, err
		}
		return c, nil
	case config.CacheTypeMemory, "":
		c, err := NewMemoryCache(cfg.MaxSize, cfg.TTL)
		if err != nil {
			return nil, err
		}
		return c, nil
	case config.CacheTypeNoop:
		return NewNoOpsCache(), nil
	default:
		return nil, fmt.Errorf("unknown embedding cache type %q", cfg.Type)
	}
}
