package cache

import (
	"context"

	"github.com/janhq/autoreply-api/internal/domain/retrieval"
)

// NoOpsCache disables caching.
type NoOpsCache struct{}

var _ retrieval.EmbeddingCache = (*NoOpsCache)(nil)

func NewNoOpsCache() *NoOpsCache {
	return &NoOpsCache{}
}

func (c *NoOpsCache) Get(context.Context, string) ([]float32, bool) {
	return nil, false
}

func (c *NoOpsCache) Set(context.Context, string, []float32) {}
