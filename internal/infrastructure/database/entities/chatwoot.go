package entities

import "time"

// Local mirror of Chatwoot data kept in sync by the channel integration.

type ChatwootMessage struct {
	ID                int64 `gorm:"primaryKey"`
	ConversationID    int64 `gorm:"index"`
	Content           *string
	MessageType       int
	CreatedAtChatwoot time.Time `gorm:"column:created_at_chatwoot"`
}

func (ChatwootMessage) TableName() string { return "chatwoot_messages" }

type ChatwootConversation struct {
	ID        int64 `gorm:"primaryKey"`
	ContactID *int64
}

func (ChatwootConversation) TableName() string { return "chatwoot_conversations" }

type ChatwootContact struct {
	ID   int64 `gorm:"primaryKey"`
	Name *string
}

func (ChatwootContact) TableName() string { return "chatwoot_contacts" }
