package chatwoot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/autoreply-api/internal/domain/settings"
	"github.com/janhq/autoreply-api/internal/domain/transcript"
)

func newServer(t *testing.T, handler http.HandlerFunc) (*Client, *settings.ChannelSettings) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(5 * time.Second), &settings.ChannelSettings{BaseURL: srv.URL + "/", AccountID: "3", APIToken: "tok"}
}

func TestListMessages(t *testing.T) {
	client, creds := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/accounts/3/conversations/42/messages", r.URL.Path)
		assert.Equal(t, "tok", r.Header.Get("api_access_token"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"payload":[
			{"id":1,"content":"Xin chào","message_type":0,"created_at":1714550400},
			{"id":2,"content":null,"message_type":2,"created_at":1714550460},
			{"id":3,"content":"Dạ","message_type":1,"created_at":1714550520,"private":false}
		]}`))
	})

	messages, err := client.ListMessages(context.Background(), creds, "42")
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, transcript.DirectionInbound, messages[0].Direction)
	assert.Equal(t, "Xin chào", messages[0].Content)
	assert.Equal(t, int64(1714550400), messages[0].CreatedAt.Unix())
	assert.Equal(t, transcript.DirectionOther, messages[1].Direction)
	assert.Equal(t, "", messages[1].Content)
	assert.Equal(t, transcript.DirectionOutbound, messages[2].Direction)
}

func TestSendMessage(t *testing.T) {
	var got createMessageRequest
	client, creds := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/accounts/3/conversations/42/messages", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"id":10}`))
	})

	require.NoError(t, client.SendMessage(context.Background(), creds, "42", "ghi chú", true))
	assert.Equal(t, createMessageRequest{Content: "ghi chú", MessageType: "outgoing", Private: true}, got)
}

func TestMarkAsRead(t *testing.T) {
	called := false
	client, creds := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, "/api/v1/accounts/3/conversations/42/update_last_seen", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, client.MarkAsRead(context.Background(), creds, "42"))
	assert.True(t, called)
}

func TestUpstreamErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"error field", `{"error":"Access denied"}`, "Access denied"},
		{"message field", `{"message":"Resource not found"}`, "Resource not found"},
		{"plain text", `gateway down`, "gateway down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, creds := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := client.ListMessages(context.Background(), creds, "42")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Contains(t, err.Error(), "401")
		})
	}
}

func TestMissingCredentials(t *testing.T) {
	client := NewClient(time.Second)
	_, err := client.ListMessages(context.Background(), nil, "42")
	assert.ErrorIs(t, err, errMissingCredentials)
}
