package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "autoreply-api", cfg.ServiceName)
	assert.Equal(t, ":8083", cfg.Addr())
	assert.Equal(t, "gpt-4o", cfg.ChatModel)
	assert.Equal(t, CacheTypeMemory, cfg.EmbeddingCacheType)
	assert.InDelta(t, 0.7, cfg.DocumentMatchThreshold, 1e-9)
	assert.Equal(t, 10, cfg.DocumentMatchCount)
	assert.Equal(t, "Asia/Ho_Chi_Minh", cfg.Location().String())
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown timezone", map[string]string{"TRANSCRIPT_TIMEZONE": "Mars/Olympus"}},
		{"unknown cache type", map[string]string{"EMBEDDING_CACHE_TYPE": "disk"}},
		{"redis without url", map[string]string{"EMBEDDING_CACHE_TYPE": "redis"}},
		{"threshold out of range", map[string]string{"DOCUMENT_MATCH_THRESHOLD": "1.5"}},
		{"non-positive match count", map[string]string{"DOCUMENT_MATCH_COUNT": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadResetsNonPositiveTimeouts(t *testing.T) {
	t.Setenv("INFERENCE_TIMEOUT", "0s")
	t.Setenv("CHANNEL_TIMEOUT", "-1s")
	t.Setenv("EMBEDDING_CACHE_TYPE", " Redis ")
	t.Setenv("EMBEDDING_CACHE_REDIS_URL", "redis://localhost:6379/3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 75*time.Second, cfg.InferenceTimeout)
	assert.Equal(t, 30*time.Second, cfg.ChannelTimeout)
	assert.Equal(t, CacheTypeRedis, cfg.EmbeddingCacheType)
}

func TestLocationFallsBackToUTC(t *testing.T) {
	var cfg Config
	assert.Equal(t, time.UTC, cfg.Location())
}
