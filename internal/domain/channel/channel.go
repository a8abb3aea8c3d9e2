package channel

import (
	"context"

	"github.com/janhq/autoreply-api/internal/domain/settings"
	"github.com/janhq/autoreply-api/internal/domain/transcript"
)

// Client lists and posts conversation messages on the support channel.
type Client interface {
	ListMessages(ctx context.Context, creds *settings.ChannelSettings, conversationID string) ([]transcript.Message, error)
	SendMessage(ctx context.Context, creds *settings.ChannelSettings, conversationID, content string, private bool) error
	MarkAsRead(ctx context.Context, creds *settings.ChannelSettings, conversationID string) error
}
