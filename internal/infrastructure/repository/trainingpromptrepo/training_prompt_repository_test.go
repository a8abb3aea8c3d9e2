package trainingpromptrepo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/janhq/autoreply-api/internal/domain/carescript"
	"github.com/janhq/autoreply-api/internal/infrastructure/database/entities"
	"github.com/janhq/autoreply-api/internal/infrastructure/repository/repotest"
	"github.com/janhq/autoreply-api/internal/utils/platformerrors"
)

func TestGetTrainingPrompt(t *testing.T) {
	db := repotest.NewDB(t, &entities.AITrainingPrompt{})
	require.NoError(t, db.Create(&entities.AITrainingPrompt{Name: carescript.PromptName, PromptText: "Hãy gợi ý", IsActive: true}).Error)
	repo := NewTrainingPromptGormRepository(db)

	tp, err := repo.GetTrainingPrompt(context.Background(), carescript.PromptName)
	require.NoError(t, err)
	assert.Equal(t, "Hãy gợi ý", tp.Text)
	assert.True(t, tp.Active)

	_, err = repo.GetTrainingPrompt(context.Background(), "other")
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGetTrainingPromptDatabaseError(t *testing.T) {
	db := repotest.NewDB(t, &entities.AITrainingPrompt{})
	require.NoError(t, db.Migrator().DropTable(&entities.AITrainingPrompt{}))
	repo := NewTrainingPromptGormRepository(db)

	_, err := repo.GetTrainingPrompt(context.Background(), carescript.PromptName)
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeDatabaseError))

	var pe *platformerrors.PlatformError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, platformerrors.LayerRepository, pe.Layer)
}
