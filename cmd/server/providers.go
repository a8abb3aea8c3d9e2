package main

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/janhq/autoreply-api/internal/config"
	"github.com/janhq/autoreply-api/internal/domain/autoreply"
	"github.com/janhq/autoreply-api/internal/domain/carescript"
	"github.com/janhq/autoreply-api/internal/domain/inference"
	"github.com/janhq/autoreply-api/internal/domain/retrieval"
	"github.com/janhq/autoreply-api/internal/domain/settings"
	"github.com/janhq/autoreply-api/internal/infrastructure/cache"
	"github.com/janhq/autoreply-api/internal/infrastructure/chatwoot"
	"github.com/janhq/autoreply-api/internal/infrastructure/database"
	"github.com/janhq/autoreply-api/internal/infrastructure/llmprovider"
	"github.com/janhq/autoreply-api/internal/infrastructure/observability"
	"github.com/janhq/autoreply-api/internal/interfaces/httpserver"
	"github.com/janhq/autoreply-api/internal/utils/redact"
)

func newDatabaseConfig(cfg *config.Config) database.Config {
	dbCfg := database.ConfigFromApp(cfg)
	dbCfg.LogLevel = gormlogger.Warn
	return dbCfg
}

func newGormDB(ctx context.Context, cfg *config.Config, dbCfg database.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.Connect(dbCfg)
	if err != nil {
		return nil, err
	}
	if cfg.RunMigrations {
		if err := database.AutoMigrate(ctx, db, log); err != nil {
			return nil, err
		}
	}
	return db, nil
}

func newReadinessProbe(db *gorm.DB) httpserver.ReadinessProbe {
	return func(ctx context.Context) error {
		return database.Ping(ctx, db)
	}
}

func newEmbeddingCache(cfg *config.Config, log zerolog.Logger) (retrieval.EmbeddingCache, error) {
	return cache.New(cache.ConfigFromApp(cfg), log)
}

func newChatwootClient(cfg *config.Config) *chatwoot.Client {
	return chatwoot.NewClient(cfg.ChannelTimeout)
}

func newInferenceClient(cfg *config.Config) *llmprovider.Client {
	return llmprovider.NewClient(cfg.InferenceTimeout)
}

func newRedactor(cfg *config.Config) *redact.Redactor {
	return redact.New(cfg.LogPIILevel, cfg.LogPIISalt)
}

func newObserver() autoreply.Observer {
	return observability.NewPipelineObserver(nil)
}

func newRetrievalOptions(cfg *config.Config) retrieval.Options {
	return retrieval.Options{
		Threshold:      cfg.DocumentMatchThreshold,
		Count:          cfg.DocumentMatchCount,
		EmbeddingModel: cfg.EmbeddingModel,
	}
}

func newAutoReplyOptions(cfg *config.Config) autoreply.Options {
	return autoreply.Options{
		ChatModel: cfg.ChatModel,
		Location:  cfg.Location(),
	}
}

func newCareScriptService(
	cfg *config.Config,
	repo settings.Repository,
	prompts carescript.PromptStore,
	mirror carescript.ConversationMirror,
	client inference.Client,
	log zerolog.Logger,
) *carescript.Service {
	return carescript.NewService(repo, prompts, mirror, client, cfg.ChatModel, cfg.Location(), log)
}

// closeCache releases backends that hold connections.
func closeCache(c retrieval.EmbeddingCache, log zerolog.Logger) {
	if closer, ok := c.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			log.Error().Err(err).Msg("close embedding cache")
		}
	}
}
