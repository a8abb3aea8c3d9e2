package settingsrepo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/janhq/autoreply-api/internal/infrastructure/database/entities"
	"github.com/janhq/autoreply-api/internal/infrastructure/repository/repotest"
	"github.com/janhq/autoreply-api/internal/utils/platformerrors"
)

func TestSettingsNotFound(t *testing.T) {
	db := repotest.NewDB(t, &entities.AutoReplySettings{}, &entities.AISettings{}, &entities.ChatwootSettings{})
	repo := NewSettingsGormRepository(db)
	ctx := context.Background()

	_, err := repo.GetTrainingConfig(ctx)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
	_, err = repo.GetInferenceSettings(ctx)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
	_, err = repo.GetChannelSettings(ctx)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
}

func TestGetTrainingConfig(t *testing.T) {
	db := repotest.NewDB(t, &entities.AutoReplySettings{})
	raw := `{
		"enabled": true,
		"industry": "Thời trang",
		"products": [{"id": 1, "value": "Áo"}, {"id": "b", "value": "Quần"}],
		"customerPronouns": "chị",
		"processSteps": [{"id": 1, "value": "Chào hỏi"}],
		"promptTemplate": [{"id": 1, "title": "rules", "content": "{{language}}"}]
	}`
	require.NoError(t, db.Create(&entities.AutoReplySettings{ID: 1, Config: datatypes.JSON(raw)}).Error)

	cfg, err := NewSettingsGormRepository(db).GetTrainingConfig(context.Background())
	require.NoError(t, err)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "Thời trang", cfg.Industry)
	assert.Equal(t, []string{"Áo", "Quần"}, cfg.ProductValues())
	assert.Equal(t, "chị", cfg.CustomerPronouns)
	require.Len(t, cfg.PromptTemplate, 1)
	assert.Equal(t, "rules", cfg.PromptTemplate[0].Title)
}

func TestGetTrainingConfigNullIsDisabled(t *testing.T) {
	db := repotest.NewDB(t, &entities.AutoReplySettings{})
	require.NoError(t, db.Create(&entities.AutoReplySettings{ID: 1}).Error)

	cfg, err := NewSettingsGormRepository(db).GetTrainingConfig(context.Background())
	require.NoError(t, err)
	assert.False(t, cfg.Enabled)
}

func TestGetCredentials(t *testing.T) {
	db := repotest.NewDB(t, &entities.AISettings{}, &entities.ChatwootSettings{})
	model := "text-embedding-3-large"
	require.NoError(t, db.Create(&entities.AISettings{ID: 1, APIURL: "https://llm", APIKey: "sk", EmbeddingModelName: &model}).Error)
	require.NoError(t, db.Create(&entities.ChatwootSettings{ID: 1, ChatwootURL: "https://cw", AccountID: "3", APIToken: "tok"}).Error)

	repo := NewSettingsGormRepository(db)

	inf, err := repo.GetInferenceSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://llm", inf.APIURL)
	assert.Equal(t, "sk", inf.APIKey)
	assert.Equal(t, model, inf.EmbeddingModel)

	ch, err := repo.GetChannelSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://cw", ch.BaseURL)
	assert.Equal(t, "3", ch.AccountID)
	assert.Equal(t, "tok", ch.APIToken)
}
