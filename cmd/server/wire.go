//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"github.com/janhq/autoreply-api/internal/config"
	"github.com/janhq/autoreply-api/internal/domain/autoreply"
	"github.com/janhq/autoreply-api/internal/domain/carescript"
	"github.com/janhq/autoreply-api/internal/domain/channel"
	"github.com/janhq/autoreply-api/internal/domain/inference"
	"github.com/janhq/autoreply-api/internal/domain/retrieval"
	"github.com/janhq/autoreply-api/internal/infrastructure/chatwoot"
	"github.com/janhq/autoreply-api/internal/infrastructure/llmprovider"
	"github.com/janhq/autoreply-api/internal/infrastructure/logger"
	"github.com/janhq/autoreply-api/internal/infrastructure/repository"
	"github.com/janhq/autoreply-api/internal/interfaces/httpserver"
	"github.com/janhq/autoreply-api/internal/interfaces/httpserver/handlers"
	"github.com/janhq/autoreply-api/internal/utils/redact"
)

var clientSet = wire.NewSet(
	newChatwootClient,
	wire.Bind(new(channel.Client), new(*chatwoot.Client)),
	newInferenceClient,
	wire.Bind(new(inference.Client), new(*llmprovider.Client)),
)

var serviceSet = wire.NewSet(
	newRetrievalOptions,
	newEmbeddingCache,
	retrieval.NewService,
	wire.Bind(new(retrieval.Searcher), new(*retrieval.Service)),
	newObserver,
	newRedactor,
	wire.Bind(new(autoreply.Redactor), new(*redact.Redactor)),
	newAutoReplyOptions,
	autoreply.NewService,
	wire.Bind(new(autoreply.Processor), new(*autoreply.Service)),
	newCareScriptService,
	wire.Bind(new(carescript.Suggester), new(*carescript.Service)),
)

// BuildApplication assembles the service with Wire.
func BuildApplication(ctx context.Context) (*Application, error) {
	wire.Build(
		config.Load,
		logger.New,
		newDatabaseConfig,
		newGormDB,
		newReadinessProbe,
		repository.RepositoryProvider,
		clientSet,
		serviceSet,
		handlers.NewProvider,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}
