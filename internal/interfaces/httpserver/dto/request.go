package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ConversationID accepts a JSON string or number and holds its text form.
type ConversationID string

func (id *ConversationID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ConversationID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*id = ConversationID(n.String())
		return nil
	}
	return fmt.Errorf("conversationId must be a string or number, got %s", data)
}

func (id ConversationID) String() string {
	return string(id)
}

// ConversationRequest is the body of the auto-reply and care-script triggers.
type ConversationRequest struct {
	ConversationID ConversationID `json:"conversationId" example:"1042"`
}

// SearchDocumentsRequest is the body of the document search endpoint.
type SearchDocumentsRequest struct {
	Query string `json:"query" example:"Áo sơ mi còn size M không?"`
}
