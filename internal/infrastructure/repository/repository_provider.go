package repository

import (
	"github.com/google/wire"

	"github.com/janhq/autoreply-api/internal/domain/autoreply"
	"github.com/janhq/autoreply-api/internal/domain/carescript"
	"github.com/janhq/autoreply-api/internal/domain/retrieval"
	"github.com/janhq/autoreply-api/internal/domain/settings"
	"github.com/janhq/autoreply-api/internal/infrastructure/repository/chatwootmirrorrepo"
	"github.com/janhq/autoreply-api/internal/infrastructure/repository/documentrepo"
	"github.com/janhq/autoreply-api/internal/infrastructure/repository/replylogrepo"
	"github.com/janhq/autoreply-api/internal/infrastructure/repository/settingsrepo"
	"github.com/janhq/autoreply-api/internal/infrastructure/repository/trainingpromptrepo"
	"github.com/janhq/autoreply-api/internal/infrastructure/repository/typingrepo"
)

var RepositoryProvider = wire.NewSet(
	settingsrepo.NewSettingsGormRepository,
	wire.Bind(new(settings.Repository), new(*settingsrepo.SettingsGormRepository)),
	typingrepo.NewTypingStatusGormRepository,
	wire.Bind(new(autoreply.TypingStatusStore), new(*typingrepo.TypingStatusGormRepository)),
	wire.Bind(new(autoreply.TypingStatusReader), new(*typingrepo.TypingStatusGormRepository)),
	replylogrepo.NewReplyLogGormRepository,
	wire.Bind(new(autoreply.AuditLog), new(*replylogrepo.ReplyLogGormRepository)),
	wire.Bind(new(autoreply.AuditReader), new(*replylogrepo.ReplyLogGormRepository)),
	documentrepo.NewDocumentGormRepository,
	wire.Bind(new(retrieval.DocumentStore), new(*documentrepo.DocumentGormRepository)),
	trainingpromptrepo.NewTrainingPromptGormRepository,
	wire.Bind(new(carescript.PromptStore), new(*trainingpromptrepo.TrainingPromptGormRepository)),
	chatwootmirrorrepo.NewChatwootMirrorGormRepository,
	wire.Bind(new(carescript.ConversationMirror), new(*chatwootmirrorrepo.ChatwootMirrorGormRepository)),
)
