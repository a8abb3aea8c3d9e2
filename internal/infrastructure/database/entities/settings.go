package entities

import (
	"time"

	"gorm.io/datatypes"
)

// AutoReplySettings is the singleton row holding the training configuration.
type AutoReplySettings struct {
	ID        uint           `gorm:"primaryKey"`
	Config    datatypes.JSON `gorm:"type:jsonb"`
	UpdatedAt time.Time
}

func (AutoReplySettings) TableName() string { return "auto_reply_settings" }

// AISettings is the singleton row with model endpoint credentials.
type AISettings struct {
	ID                 uint    `gorm:"primaryKey"`
	APIURL             string  `gorm:"column:api_url"`
	APIKey             string  `gorm:"column:api_key"`
	EmbeddingModelName *string `gorm:"column:embedding_model_name"`
}

func (AISettings) TableName() string { return "ai_settings" }

// ChatwootSettings is the singleton row with Chatwoot credentials.
type ChatwootSettings struct {
	ID          uint   `gorm:"primaryKey"`
	ChatwootURL string `gorm:"column:chatwoot_url"`
	AccountID   string `gorm:"column:account_id"`
	APIToken    string `gorm:"column:api_token"`
}

func (ChatwootSettings) TableName() string { return "chatwoot_settings" }

// AITrainingPrompt is a named operator prompt.
type AITrainingPrompt struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"uniqueIndex"`
	PromptText string `gorm:"column:prompt_text"`
	IsActive   bool   `gorm:"column:is_active"`
}

func (AITrainingPrompt) TableName() string { return "ai_training_prompts" }
