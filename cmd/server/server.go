package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/janhq/autoreply-api/internal/config"
	"github.com/janhq/autoreply-api/internal/domain/autoreply"
	"github.com/janhq/autoreply-api/internal/domain/retrieval"
	"github.com/janhq/autoreply-api/internal/infrastructure/database"
	"github.com/janhq/autoreply-api/internal/infrastructure/logger"
	"github.com/janhq/autoreply-api/internal/infrastructure/observability"
	"github.com/janhq/autoreply-api/internal/infrastructure/repository/chatwootmirrorrepo"
	"github.com/janhq/autoreply-api/internal/infrastructure/repository/documentrepo"
	"github.com/janhq/autoreply-api/internal/infrastructure/repository/replylogrepo"
	"github.com/janhq/autoreply-api/internal/infrastructure/repository/settingsrepo"
	"github.com/janhq/autoreply-api/internal/infrastructure/repository/trainingpromptrepo"
	"github.com/janhq/autoreply-api/internal/infrastructure/repository/typingrepo"
	"github.com/janhq/autoreply-api/internal/interfaces/httpserver"
	"github.com/janhq/autoreply-api/internal/interfaces/httpserver/handlers"
)

// @title Auto-Reply API
// @version 1.0
// @description Automated customer-support replies for Chatwoot conversations
// @BasePath /
type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := newGormDB(ctx, cfg, newDatabaseConfig(cfg), log)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error().Err(err).Msg("close database")
		}
	}()

	embeddingCache, err := newEmbeddingCache(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize embedding cache")
	}
	defer closeCache(embeddingCache, log)

	settingsRepo := settingsrepo.NewSettingsGormRepository(db)
	typingRepo := typingrepo.NewTypingStatusGormRepository(db)
	replyLogRepo := replylogrepo.NewReplyLogGormRepository(db)
	documentRepo := documentrepo.NewDocumentGormRepository(db)
	promptRepo := trainingpromptrepo.NewTrainingPromptGormRepository(db)
	mirrorRepo := chatwootmirrorrepo.NewChatwootMirrorGormRepository(db)

	inferenceClient := newInferenceClient(cfg)
	channelClient := newChatwootClient(cfg)

	searchService := retrieval.NewService(settingsRepo, inferenceClient, documentRepo, embeddingCache, newRetrievalOptions(cfg), log)
	autoReplyService := autoreply.NewService(
		settingsRepo,
		channelClient,
		inferenceClient,
		searchService,
		typingRepo,
		replyLogRepo,
		newObserver(),
		newRedactor(cfg),
		newAutoReplyOptions(cfg),
		log,
	)
	careScriptService := newCareScriptService(cfg, settingsRepo, promptRepo, mirrorRepo, inferenceClient, log)

	handlerProvider := handlers.NewProvider(autoReplyService, searchService, careScriptService, typingRepo, replyLogRepo, log)
	httpServer := httpserver.New(cfg, log, handlerProvider, newReadinessProbe(db))
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
