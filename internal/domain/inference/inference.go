package inference

import (
	"context"

	"github.com/janhq/autoreply-api/internal/domain/settings"
)

// Role of a chat message sent to the model.
type Role string

const (
	RoleSystem Role = "system"
)

// Message is one chat turn sent to the model.
type Message struct {
	Role    Role
	Content string
}

// Client talks to an OpenAI compatible endpoint using per-call credentials.
type Client interface {
	Complete(ctx context.Context, creds *settings.InferenceSettings, model string, messages []Message) (string, error)
	Embed(ctx context.Context, creds *settings.InferenceSettings, model string, text string) ([]float32, error)
}

// ProviderError is an error payload returned by the endpoint itself,
// as opposed to a transport or status failure.
type ProviderError struct {
	Message string
}

func (e *ProviderError) Error() string {
	return e.Message
}
