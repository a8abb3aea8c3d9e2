package chatwootmirrorrepo

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/janhq/autoreply-api/internal/domain/carescript"
	"github.com/janhq/autoreply-api/internal/domain/transcript"
	"github.com/janhq/autoreply-api/internal/infrastructure/database/entities"
)

// Chatwoot message_type values.
const (
	messageTypeIncoming = 0
	messageTypeOutgoing = 1
)

// ChatwootMirrorGormRepository implements carescript.ConversationMirror over the synced Chatwoot tables.
type ChatwootMirrorGormRepository struct {
	db *gorm.DB
}

var _ carescript.ConversationMirror = (*ChatwootMirrorGormRepository)(nil)

// NewChatwootMirrorGormRepository constructs a new repository.
func NewChatwootMirrorGormRepository(db *gorm.DB) *ChatwootMirrorGormRepository {
	return &ChatwootMirrorGormRepository{db: db}
}

// ListMessages returns the mirrored messages of a conversation ordered by Chatwoot creation time.
func (repo *ChatwootMirrorGormRepository) ListMessages(ctx context.Context, conversationID string) ([]transcript.Message, error) {
	id, err := parseID(conversationID)
	if err != nil {
		return nil, err
	}

	var rows []entities.ChatwootMessage
	err = repo.db.WithContext(ctx).
		Where("conversation_id = ?", id).
		Order("created_at_chatwoot ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	messages := make([]transcript.Message, 0, len(rows))
	for _, row := range rows {
		msg := transcript.Message{
			ID:        row.ID,
			Direction: direction(row.MessageType),
			CreatedAt: row.CreatedAtChatwoot,
		}
		if row.Content != nil {
			msg.Content = *row.Content
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// ContactName resolves the display name of the conversation's contact. An unnamed contact yields "".
func (repo *ChatwootMirrorGormRepository) ContactName(ctx context.Context, conversationID string) (string, error) {
	id, err := parseID(conversationID)
	if err != nil {
		return "", err
	}

	var conv entities.ChatwootConversation
	if err := repo.db.WithContext(ctx).First(&conv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("conversation %d not found", id)
		}
		return "", err
	}
	if conv.ContactID == nil {
		return "", nil
	}

	var contact entities.ChatwootContact
	if err := repo.db.WithContext(ctx).First(&contact, *conv.ContactID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("contact %d not found", *conv.ContactID)
		}
		return "", err
	}
	if contact.Name == nil {
		return "", nil
	}
	return *contact.Name, nil
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

func parseID(conversationID string) (int64, error) {
	id, err := strconv.ParseInt(conversationID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid conversation id %q", conversationID)
	}
	return id, nil
}
