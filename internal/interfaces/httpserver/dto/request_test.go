package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationIDUnmarshal(t *testing.T) {
	tests := []struct {
		body string
		want ConversationID
	}{
		{`{"conversationId":"1042"}`, "1042"},
		{`{"conversationId":1042}`, "1042"},
		{`{"conversationId":null}`, ""},
		{`{}`, ""},
	}
	for _, tt := range tests {
		var req ConversationRequest
		require.NoError(t, json.Unmarshal([]byte(tt.body), &req), tt.body)
		assert.Equal(t, tt.want, req.ConversationID, tt.body)
	}
}

func TestConversationIDRejectsOtherTypes(t *testing.T) {
	for _, body := range []string{`{"conversationId":true}`, `{"conversationId":{"id":1}}`} {
		var req ConversationRequest
		assert.Error(t, json.Unmarshal([]byte(body), &req), body)
	}
}
