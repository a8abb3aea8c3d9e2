package llmprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	openai "github.com/sashabaranov/go-openai"

	"github.com/janhq/autoreply-api/internal/domain/inference"
	"github.com/janhq/autoreply-api/internal/domain/settings"
)

var (
	errMissingCredentials = errors.New("inference endpoint is not configured")
	errNoChoices          = errors.New("response did not contain any choices")
	errNoEmbedding        = errors.New("response did not contain a valid embedding")
)

// Client implements inference.Client for OpenAI compatible endpoints.
type Client struct {
	httpClient *resty.Client
}

var _ inference.Client = (*Client)(nil)

// NewClient creates a Resty-backed client.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: resty.New().
			SetHeader("Content-Type", "application/json").
			SetTimeout(timeout),
	}
}

// Complete runs a non-streaming chat completion and returns the first choice.
func (c *Client) Complete(ctx context.Context, creds *settings.InferenceSettings, model string, messages []inference.Message) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:    model,
		Messages: make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{Role: string(m.Role), Content: m.Content})
	}

	body, err := c.post(ctx, creds, "/chat/completions", req)
	if err != nil {
		return "", err
	}

	var completion openai.ChatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("decode chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", errNoChoices
	}
	return completion.Choices[0].Message.Content, nil
}

// Embed returns the embedding vector for text.
func (c *Client) Embed(ctx context.Context, creds *settings.InferenceSettings, model string, text string) ([]float32, error) {
	req := openai.EmbeddingRequest{
		Input: text,
		Model: openai.EmbeddingModel(model),
	}

	body, err := c.post(ctx, creds, "/embeddings", req)
	if err != nil {
		return nil, err
	}

	var out openai.EmbeddingResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, errNoEmbedding
	}
	if len(out.Data) == 0 || len(out.Data[0].Embedding) == 0 {
		return nil, errNoEmbedding
	}
	return out.Data[0].Embedding, nil
}

func (c *Client) post(ctx context.Context, creds *settings.InferenceSettings, path string, payload any) ([]byte, error) {
	if !creds.Usable() {
		return nil, errMissingCredentials
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetAuthToken(creds.APIKey).
		SetBody(payload).
		Post(strings.TrimRight(creds.APIURL, "/") + path)
	if err != nil {
		return nil, err
	}

	body := resp.Body()
	if perr := providerError(body); perr != nil {
		return nil, perr
	}
	if resp.IsError() {
		detail := strings.TrimSpace(string(body))
		if detail == "" {
			detail = resp.Status()
		}
		return nil, fmt.Errorf("inference status %d: %s", resp.StatusCode(), detail)
	}
	return body, nil
}

// providerError extracts an "error" member from a JSON body, if present.
func providerError(body []byte) error {
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil
	}
	raw := bytes.TrimSpace(envelope.Error)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return &inference.ProviderError{Message: text}
	}
	var apiErr openai.APIError
	if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Message != "" {
		return &inference.ProviderError{Message: apiErr.Message}
	}
	return &inference.ProviderError{Message: string(raw)}
}
