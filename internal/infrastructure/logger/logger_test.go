package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/autoreply-api/internal/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("loud"))
	assert.Equal(t, zerolog.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("warn"))
}

func TestJSONFormatCarriesServiceFields(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{ServiceName: "autoreply-api", Environment: "test", LogLevel: "info", LogFormat: "json"}

	log := newWithWriter(cfg, &buf)
	log.Info().Str("conversation_id", "42").Msg("hello")
	log.Debug().Msg("filtered")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "autoreply-api", entry["service"])
	assert.Equal(t, "test", entry["environment"])
	assert.Equal(t, "42", entry["conversation_id"])
	assert.Equal(t, "hello", entry["message"])
}
