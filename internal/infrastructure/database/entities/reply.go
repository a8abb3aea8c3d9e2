package entities

import "time"

// AITypingStatus is the per-conversation typing flag.
type AITypingStatus struct {
	ConversationID string `gorm:"primaryKey;column:conversation_id"`
	IsTyping       bool   `gorm:"column:is_typing;not null;default:false"`
	UpdatedAt      time.Time
}

func (AITypingStatus) TableName() string { return "ai_typing_status" }

// AIReplyLog is one append-only audit row.
type AIReplyLog struct {
	ID             uint    `gorm:"primaryKey"`
	ConversationID string  `gorm:"column:conversation_id;not null;index"`
	Status         string  `gorm:"not null"`
	Details        string  `gorm:"type:text"`
	SystemPrompt   *string `gorm:"column:system_prompt;type:text"`
	CreatedAt      time.Time
}

func (AIReplyLog) TableName() string { return "ai_reply_logs" }
