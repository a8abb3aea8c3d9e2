package llmprovider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/autoreply-api/internal/domain/inference"
	"github.com/janhq/autoreply-api/internal/domain/settings"
)

func newServer(t *testing.T, handler http.HandlerFunc) (*Client, *settings.InferenceSettings) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(5 * time.Second), &settings.InferenceSettings{APIURL: srv.URL + "/v1/", APIKey: "sk-test"}
}

func TestComplete(t *testing.T) {
	var got map[string]any
	client, creds := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"id":"c1","choices":[{"index":0,"message":{"role":"assistant","content":"Dạ chào chị"}}]}`))
	})

	reply, err := client.Complete(context.Background(), creds, "gpt-4o", []inference.Message{
		{Role: inference.RoleSystem, Content: "# RULES"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Dạ chào chị", reply)
	assert.Equal(t, "gpt-4o", got["model"])
	messages, ok := got["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 1)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
}

func TestCompleteFailures(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		wantProvider bool
		want         string
	}{
		{"error object", http.StatusOK, `{"error":{"message":"quota exceeded","type":"insufficient_quota"}}`, true, "quota exceeded"},
		{"error string", http.StatusBadRequest, `{"error":"bad model"}`, true, "bad model"},
		{"status only", http.StatusBadGateway, `upstream unavailable`, false, "upstream unavailable"},
		{"no choices", http.StatusOK, `{"choices":[]}`, false, errNoChoices.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, creds := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.Complete(context.Background(), creds, "gpt-4o", nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			var perr *inference.ProviderError
			assert.Equal(t, tt.wantProvider, errors.As(err, &perr))
		})
	}
}

func TestEmbed(t *testing.T) {
	client, creds := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/embeddings", r.URL.Path)
		var req map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "text-embedding-3-small", req["model"])
		assert.Equal(t, "áo sơ mi", req["input"])
		_, _ = w.Write([]byte(`{"object":"list","data":[{"object":"embedding","index":0,"embedding":[0.5,-0.25]}]}`))
	})

	vec, err := client.Embed(context.Background(), creds, "text-embedding-3-small", "áo sơ mi")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, -0.25}, vec)
}

func TestEmbedMissingVector(t *testing.T) {
	client, creds := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	})

	_, err := client.Embed(context.Background(), creds, "m", "x")
	assert.ErrorIs(t, err, errNoEmbedding)
}

func TestMissingCredentials(t *testing.T) {
	client := NewClient(time.Second)
	_, err := client.Complete(context.Background(), &settings.InferenceSettings{APIURL: "http://x"}, "m", nil)
	assert.ErrorIs(t, err, errMissingCredentials)
}
