package trainingpromptrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/janhq/autoreply-api/internal/domain/carescript"
	"github.com/janhq/autoreply-api/internal/infrastructure/database/entities"
	"github.com/janhq/autoreply-api/internal/utils/platformerrors"
)

// TrainingPromptGormRepository implements carescript.PromptStore.
type TrainingPromptGormRepository struct {
	db *gorm.DB
}

var _ carescript.PromptStore = (*TrainingPromptGormRepository)(nil)

// NewTrainingPromptGormRepository constructs a new repository.
func NewTrainingPromptGormRepository(db *gorm.DB) *TrainingPromptGormRepository {
	return &TrainingPromptGormRepository{db: db}
}

// GetTrainingPrompt loads a prompt by name.
func (repo *TrainingPromptGormRepository) GetTrainingPrompt(ctx context.Context, name string) (*carescript.TrainingPrompt, error) {
	var row entities.AITrainingPrompt
	err := repo.db.WithContext(ctx).Where("name = ?", name).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "training prompt "+name+" not found", err)
	}
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to load training prompt", err)
	}
	return &carescript.TrainingPrompt{Name: row.Name, Text: row.PromptText, Active: row.IsActive}, nil
}
