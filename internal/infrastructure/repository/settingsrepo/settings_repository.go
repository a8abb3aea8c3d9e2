package settingsrepo

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"github.com/janhq/autoreply-api/internal/domain/settings"
	"github.com/janhq/autoreply-api/internal/infrastructure/database/entities"
	"github.com/janhq/autoreply-api/internal/utils/platformerrors"
)

// singletonID is the primary key of every settings row.
const singletonID = 1

// SettingsGormRepository implements settings.Repository using GORM.
type SettingsGormRepository struct {
	db *gorm.DB
}

var _ settings.Repository = (*SettingsGormRepository)(nil)

// NewSettingsGormRepository constructs a new repository.
func NewSettingsGormRepository(db *gorm.DB) *SettingsGormRepository {
	return &SettingsGormRepository{db: db}
}

// GetTrainingConfig decodes the auto-reply training configuration.
func (repo *SettingsGormRepository) GetTrainingConfig(ctx context.Context) (*settings.TrainingConfig, error) {
	var row entities.AutoReplySettings
	if err := repo.first(ctx, &row, "auto reply settings"); err != nil {
		return nil, err
	}

	cfg := &settings.TrainingConfig{}
	if len(row.Config) == 0 || string(row.Config) == "null" {
		return cfg, nil
	}
	if err := json.Unmarshal(row.Config, cfg); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeInternal, "decode auto reply config", err)
	}
	return cfg, nil
}

// GetInferenceSettings returns the model endpoint credentials.
func (repo *SettingsGormRepository) GetInferenceSettings(ctx context.Context) (*settings.InferenceSettings, error) {
	var row entities.AISettings
	if err := repo.first(ctx, &row, "ai settings"); err != nil {
		return nil, err
	}

	out := &settings.InferenceSettings{APIURL: row.APIURL, APIKey: row.APIKey}
	if row.EmbeddingModelName != nil {
		out.EmbeddingModel = *row.EmbeddingModelName
	}
	return out, nil
}

// GetChannelSettings returns the Chatwoot credentials.
func (repo *SettingsGormRepository) GetChannelSettings(ctx context.Context) (*settings.ChannelSettings, error) {
	var row entities.ChatwootSettings
	if err := repo.first(ctx, &row, "chatwoot settings"); err != nil {
		return nil, err
	}
	return &settings.ChannelSettings{
		BaseURL:   row.ChatwootURL,
		AccountID: row.AccountID,
		APIToken:  row.APIToken,
	}, nil
}

func (repo *SettingsGormRepository) first(ctx context.Context, dest any, what string) error {
	err := repo.db.WithContext(ctx).First(dest, singletonID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, what+" not found", err)
	}
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to load "+what, err)
	}
	return nil
}
