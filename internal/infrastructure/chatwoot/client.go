package chatwoot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/janhq/autoreply-api/internal/domain/channel"
	"github.com/janhq/autoreply-api/internal/domain/settings"
	"github.com/janhq/autoreply-api/internal/domain/transcript"
)

// Chatwoot message_type values.
const (
	messageTypeIncoming = 0
	messageTypeOutgoing = 1
)

var errMissingCredentials = errors.New("chatwoot credentials are not configured")

// Client implements channel.Client against the Chatwoot REST API.
type Client struct {
	httpClient *resty.Client
}

var _ channel.Client = (*Client)(nil)

// NewClient creates a Resty-backed Chatwoot client.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: resty.New().
			SetHeader("Content-Type", "application/json").
			SetTimeout(timeout),
	}
}

type messageDTO struct {
	ID          int64   `json:"id"`
	Content     *string `json:"content"`
	MessageType int     `json:"message_type"`
	CreatedAt   int64   `json:"created_at"`
	Private     bool    `json:"private"`
}

type listMessagesResponse struct {
	Payload []messageDTO `json:"payload"`
}

type createMessageRequest struct {
	Content     string `json:"content"`
	MessageType string `json:"message_type"`
	Private     bool   `json:"private"`
}

// ListMessages fetches the conversation history.
func (c *Client) ListMessages(ctx context.Context, creds *settings.ChannelSettings, conversationID string) ([]transcript.Message, error) {
	endpoint, err := conversationURL(creds, conversationID, "messages")
	if err != nil {
		return nil, err
	}

	var out listMessagesResponse
	resp, err := c.request(ctx, creds).SetResult(&out).Get(endpoint)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, upstreamError(resp)
	}

	messages := make([]transcript.Message, 0, len(out.Payload))
	for _, m := range out.Payload {
		content := ""
		if m.Content != nil {
			content = *m.Content
		}
		messages = append(messages, transcript.Message{
			ID:        m.ID,
			Direction: direction(m.MessageType),
			Content:   content,
			CreatedAt: time.Unix(m.CreatedAt, 0),
		})
	}
	return messages, nil
}

// SendMessage posts an outgoing message or a private note.
func (c *Client) SendMessage(ctx context.Context, creds *settings.ChannelSettings, conversationID, content string, private bool) error {
	endpoint, err := conversationURL(creds, conversationID, "messages")
	if err != nil {
		return err
	}

	resp, err := c.request(ctx, creds).
		SetBody(createMessageRequest{Content: content, MessageType: "outgoing", Private: private}).
		Post(endpoint)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return upstreamError(resp)
	}
	return nil
}

// MarkAsRead updates the agent last-seen marker.
func (c *Client) MarkAsRead(ctx context.Context, creds *settings.ChannelSettings, conversationID string) error {
	endpoint, err := conversationURL(creds, conversationID, "update_last_seen")
	if err != nil {
		return err
	}

	resp, err := c.request(ctx, creds).Post(endpoint)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return upstreamError(resp)
	}
	return nil
}

func (c *Client) request(ctx context.Context, creds *settings.ChannelSettings) *resty.Request {
	return c.httpClient.R().
		SetContext(ctx).
		SetHeader("api_access_token", creds.APIToken)
}

func conversationURL(creds *settings.ChannelSettings, conversationID, suffix string) (string, error) {
	if creds == nil || strings.TrimSpace(creds.BaseURL) == "" {
		return "", errMissingCredentials
	}
	return fmt.Sprintf("%s/api/v1/accounts/%s/conversations/%s/%s",
		strings.TrimRight(creds.BaseURL, "/"),
		url.PathEscape(creds.AccountID),
		url.PathEscape(conversationID),
		suffix,
	), nil
}

func direction(messageType int) transcript.Direction {
	switch messageType {
	case messageTypeIncoming:
		return transcript.DirectionInbound
	case messageTypeOutgoing:
		return transcript.DirectionOutbound
	default:
		return transcript.DirectionOther
	}
}

func upstreamError(resp *resty.Response) error {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	detail := strings.TrimSpace(resp.String())
	if err := json.Unmarshal(resp.Body(), &body); err == nil {
		switch {
		case body.Error != "":
			detail = body.Error
		case body.Message != "":
			detail = body.Message
		}
	}
	if detail == "" {
		detail = resp.Status()
	}
	return fmt.Errorf("chatwoot status %d: %s", resp.StatusCode(), detail)
}
