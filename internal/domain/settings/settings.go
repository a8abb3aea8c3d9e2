package settings

import (
	"context"
	"strings"
)

// ListItem is one entry of a list-valued training field (products, steps, conditions).
type ListItem struct {
	ID    any    `json:"id,omitempty"`
	Value string `json:"value"`
}

// TemplateBlock is one titled fragment of the system prompt.
type TemplateBlock struct {
	ID      any    `json:"id,omitempty"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// TrainingConfig is the persona and process configuration stored in auto_reply_settings.config.
type TrainingConfig struct {
	Enabled          bool            `json:"enabled"`
	Industry         string          `json:"industry"`
	Role             string          `json:"role"`
	Products         []ListItem      `json:"products"`
	Style            string          `json:"style"`
	Tone             string          `json:"tone"`
	Language         string          `json:"language"`
	Pronouns         string          `json:"pronouns"`
	CustomerPronouns string          `json:"customerPronouns"`
	Goal             string          `json:"goal"`
	ProcessSteps     []ListItem      `json:"processSteps"`
	Conditions       []ListItem      `json:"conditions"`
	PromptTemplate   []TemplateBlock `json:"promptTemplate"`
}

// ProductValues returns the product descriptions in configured order.
func (c *TrainingConfig) ProductValues() []string {
	values := make([]string, 0, len(c.Products))
	for _, p := range c.Products {
		values = append(values, p.Value)
	}
	return values
}

// InferenceSettings holds the language model endpoint credentials.
type InferenceSettings struct {
	APIURL         string
	APIKey         string
	EmbeddingModel string
}

// Usable reports whether the endpoint can be called.
func (s *InferenceSettings) Usable() bool {
	return s != nil && strings.TrimSpace(s.APIURL) != "" && strings.TrimSpace(s.APIKey) != ""
}

// ChannelSettings holds the Chatwoot account credentials.
type ChannelSettings struct {
	BaseURL   string
	AccountID string
	APIToken  string
}

// Repository reads the singleton settings rows.
// Absent rows are reported as platformerrors NOT_FOUND.
type Repository interface {
	GetTrainingConfig(ctx context.Context) (*TrainingConfig, error)
	GetInferenceSettings(ctx context.Context) (*InferenceSettings, error)
	GetChannelSettings(ctx context.Context) (*ChannelSettings, error)
}
