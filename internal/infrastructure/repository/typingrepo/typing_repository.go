package typingrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/janhq/autoreply-api/internal/domain/autoreply"
	"github.com/janhq/autoreply-api/internal/infrastructure/database/entities"
	"github.com/janhq/autoreply-api/internal/utils/platformerrors"
)

// TypingStatusGormRepository implements autoreply.TypingStatusStore using GORM.
type TypingStatusGormRepository struct {
	db  *gorm.DB
	now func() time.Time
}

var (
	_ autoreply.TypingStatusStore  = (*TypingStatusGormRepository)(nil)
	_ autoreply.TypingStatusReader = (*TypingStatusGormRepository)(nil)
)

// NewTypingStatusGormRepository constructs a new repository.
func NewTypingStatusGormRepository(db *gorm.DB) *TypingStatusGormRepository {
	return &TypingStatusGormRepository{db: db, now: time.Now}
}

// SetTyping upserts the flag for a conversation. Last write wins.
func (repo *TypingStatusGormRepository) SetTyping(ctx context.Context, conversationID string, typing bool) error {
	entity := entities.AITypingStatus{
		ConversationID: conversationID,
		IsTyping:       typing,
		UpdatedAt:      repo.now().UTC(),
	}

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "conversation_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_typing", "updated_at"}),
		}).
		Create(&entity).
		Error
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to upsert typing status", err)
	}
	return nil
}

// IsTyping reads the current flag. Unknown conversations are not typing.
func (repo *TypingStatusGormRepository) IsTyping(ctx context.Context, conversationID string) (bool, error) {
	var entity entities.AITypingStatus
	err := repo.db.WithContext(ctx).Where("conversation_id = ?", conversationID).First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to read typing status", err)
	}
	return entity.IsTyping, nil
}
