package replylogrepo

import (
	"context"

	"gorm.io/gorm"

	"github.com/janhq/autoreply-api/internal/domain/autoreply"
	"github.com/janhq/autoreply-api/internal/infrastructure/database/entities"
	"github.com/janhq/autoreply-api/internal/utils/platformerrors"
)

// ReplyLogGormRepository implements autoreply.AuditLog using GORM.
type ReplyLogGormRepository struct {
	db *gorm.DB
}

var (
	_ autoreply.AuditLog    = (*ReplyLogGormRepository)(nil)
	_ autoreply.AuditReader = (*ReplyLogGormRepository)(nil)
)

// NewReplyLogGormRepository constructs a new repository.
func NewReplyLogGormRepository(db *gorm.DB) *ReplyLogGormRepository {
	return &ReplyLogGormRepository{db: db}
}

// Append inserts one audit row.
func (repo *ReplyLogGormRepository) Append(ctx context.Context, entry autoreply.AuditEntry) error {
	row := entities.AIReplyLog{
		ConversationID: entry.ConversationID,
		Status:         string(entry.Status),
		Details:        entry.Details,
		SystemPrompt:   entry.SystemPrompt,
	}
	if err := repo.db.WithContext(ctx).Create(&row).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to insert reply log", err)
	}
	return nil
}

// ListByConversation returns audit rows for a conversation, oldest first.
func (repo *ReplyLogGormRepository) ListByConversation(ctx context.Context, conversationID string) ([]autoreply.AuditEntry, error) {
	var rows []entities.AIReplyLog
	err := repo.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to list reply logs", err)
	}

	out := make([]autoreply.AuditEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, autoreply.AuditEntry{
			ConversationID: row.ConversationID,
			Status:         autoreply.Outcome(row.Status),
			Details:        row.Details,
			SystemPrompt:   row.SystemPrompt,
			CreatedAt:      row.CreatedAt,
		})
	}
	return out, nil
}
