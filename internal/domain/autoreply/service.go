package autoreply

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/janhq/autoreply-api/internal/domain/channel"
	"github.com/janhq/autoreply-api/internal/domain/inference"
	"github.com/janhq/autoreply-api/internal/domain/prompt"
	"github.com/janhq/autoreply-api/internal/domain/retrieval"
	"github.com/janhq/autoreply-api/internal/domain/settings"
	"github.com/janhq/autoreply-api/internal/domain/transcript"
)

const replyPreviewLength = 100

// Redactor masks customer text before it is logged.
type Redactor interface {
	String(input string) string
}

// Options tunes the pipeline.
type Options struct {
	ChatModel string
	Location  *time.Location
}

// Result describes a run that did not fail.
type Result struct {
	Disabled bool
	Message  string
	Reply    string
	Trail    []Stage
}

// Processor runs the reply pipeline for one conversation.
type Processor interface {
	Process(ctx context.Context, conversationID string) (Result, error)
}

// Service is the reply orchestrator.
type Service struct {
	settings  settings.Repository
	channel   channel.Client
	inference inference.Client
	retrieval retrieval.Searcher
	typing    TypingStatusStore
	audit     AuditLog
	observer  Observer
	redactor  Redactor
	opts      Options
	log       zerolog.Logger
}

// NewService wires the orchestrator. A nil observer disables telemetry.
func NewService(
	repo settings.Repository,
	channelClient channel.Client,
	inferenceClient inference.Client,
	searcher retrieval.Searcher,
	typing TypingStatusStore,
	audit AuditLog,
	observer Observer,
	redactor Redactor,
	opts Options,
	log zerolog.Logger,
) *Service {
	if observer == nil {
		observer = NoopObserver{}
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &Service{
		settings:  repo,
		channel:   channelClient,
		inference: inferenceClient,
		retrieval: searcher,
		typing:    typing,
		audit:     audit,
		observer:  observer,
		redactor:  redactor,
		opts:      opts,
		log:       log.With().Str("component", "autoreply").Logger(),
	}
}

// run carries the per-run mutable state.
type run struct {
	conversationID string
	stage          Stage
	enteredAt      time.Time
	trail          []Stage
	systemPrompt   *string
	observer       Observer
	log            zerolog.Logger
}

func (r *run) enter(ctx context.Context, to Stage) {
	from := r.stage
	if !CanTransition(from, to) {
		r.log.Warn().Str("from", from.String()).Str("to", to.String()).Msg("unexpected stage transition")
	}
	now := time.Now()
	r.observer.StageCompleted(ctx, from, now.Sub(r.enteredAt))
	r.observer.StageChanged(ctx, from, to)
	r.log.Debug().Str("from", from.String()).Str("to", to.String()).Msg("stage transition")
	r.stage = to
	r.enteredAt = now
	r.trail = append(r.trail, to)
}

// Process runs the pipeline. Fatal failures are returned as *StageError after the
// error note and audit row have been attempted. The typing flag is reset on every path.
func (s *Service) Process(ctx context.Context, conversationID string) (result Result, err error) {
	conversationID = strings.TrimSpace(conversationID)
	if conversationID == "" {
		return Result{}, newStageError(KindMissingInput, StageInit, MsgMissingConversationID, nil)
	}

	ctx = s.observer.RunStarted(ctx, conversationID)
	r := &run{
		conversationID: conversationID,
		stage:          StageInit,
		enteredAt:      time.Now(),
		trail:          []Stage{StageInit},
		observer:       s.observer,
		log:            s.log.With().Str("conversation_id", conversationID).Logger(),
	}

	defer func() {
		result.Trail = r.trail
		outcome := OutcomeSuccess
		switch {
		case err != nil:
			outcome = OutcomeError
		case result.Disabled:
			outcome = OutcomeDisabled
		}
		s.observer.RunFinished(ctx, outcome, err)
	}()

	// Needed by the error note even when configuration loading fails.
	channelCreds := s.loadChannelSettings(ctx, r)

	release := s.acquireTyping(ctx, r)
	defer release()

	result, stageErr := s.execute(ctx, r, channelCreds)
	if stageErr == nil {
		return result, nil
	}

	r.log.Error().Str("kind", string(stageErr.Kind)).Str("stage", stageErr.Stage.String()).Err(stageErr.Cause).Msg(stageErr.Detail())

	cleanupCtx := context.WithoutCancel(ctx)
	r.enter(cleanupCtx, StageEmittingErrorNote)
	s.sendErrorNote(cleanupCtx, r, channelCreds, stageErr.Message)

	r.enter(cleanupCtx, StageLoggingError)
	s.appendAudit(cleanupCtx, r, AuditEntry{
		ConversationID: conversationID,
		Status:         OutcomeError,
		Details:        stageErr.Message,
		SystemPrompt:   r.systemPrompt,
	})
	return Result{}, stageErr
}

func (s *Service) execute(ctx context.Context, r *run, channelCreds *settings.ChannelSettings) (Result, *StageError) {
	r.enter(ctx, StageLoadingConfig)
	cfg, creds, stageErr := s.loadConfig(ctx, r)
	if stageErr != nil {
		return Result{}, stageErr
	}
	if cfg == nil {
		r.log.Info().Msg("auto-reply disabled, skipping")
		return Result{Disabled: true, Message: MsgDisabled}, nil
	}
	if channelCreds == nil {
		return Result{}, newStageError(KindConfigurationMissing, StageLoadingConfig, MsgChannelConfigAbsent, nil)
	}

	r.enter(ctx, StageFetchingHistory)
	messages, err := s.channel.ListMessages(ctx, channelCreds, r.conversationID)
	if err != nil {
		return Result{}, newStageError(KindHistoryFetchFailed, StageFetchingHistory, msgHistoryFetchPrefix+err.Error(), err)
	}
	history, err := transcript.Format(messages, s.opts.Location)
	if err != nil {
		return Result{}, newStageError(KindEmptyHistory, StageFetchingHistory, fmt.Sprintf(msgEmptyHistoryFormat, r.conversationID), err)
	}

	var docs []retrieval.Document
	if last, ok := transcript.LastInbound(messages); ok && last.Content != "" {
		r.enter(ctx, StageRetrievingContext)
		docs = s.retrieveContext(ctx, r, cfg, last.Content)
	}

	r.enter(ctx, StageBuildingPrompt)
	systemPrompt, err := prompt.Build(prompt.Input{Config: cfg, History: history, Documents: docs})
	if err != nil {
		return Result{}, newStageError(KindTemplateNotConfigured, StageBuildingPrompt, err.Error(), err)
	}
	r.systemPrompt = &systemPrompt

	r.enter(ctx, StageInvokingInference)
	reply, err := s.inference.Complete(ctx, creds, s.opts.ChatModel, []inference.Message{
		{Role: inference.RoleSystem, Content: systemPrompt},
	})
	if err != nil {
		var providerErr *inference.ProviderError
		if errors.As(err, &providerErr) {
			return Result{}, newStageError(KindInferenceFailed, StageInvokingInference, msgProxyResponsePrefix+providerErr.Message, err)
		}
		return Result{}, newStageError(KindInferenceFailed, StageInvokingInference, msgProxyCallPrefix+err.Error(), err)
	}

	r.enter(ctx, StageDispatchingReply)
	if err := s.channel.SendMessage(ctx, channelCreds, r.conversationID, reply, false); err != nil {
		return Result{}, newStageError(KindDispatchFailed, StageDispatchingReply, msgDispatchPrefix+err.Error(), err)
	}

	r.enter(ctx, StageMarkingRead)
	if err := s.channel.MarkAsRead(ctx, channelCreds, r.conversationID); err != nil {
		return Result{}, newStageError(KindMarkReadFailed, StageMarkingRead, msgMarkReadPrefix+err.Error(), err)
	}

	r.enter(ctx, StageLoggingSuccess)
	s.appendAudit(ctx, r, AuditEntry{
		ConversationID: r.conversationID,
		Status:         OutcomeSuccess,
		Details:        fmt.Sprintf(msgSuccessAuditFormat, preview(reply, replyPreviewLength)),
		SystemPrompt:   r.systemPrompt,
	})

	return Result{
		Message: fmt.Sprintf(msgSuccessFormat, r.conversationID),
		Reply:   reply,
	}, nil
}

// loadConfig reads reply and inference settings concurrently. A nil config with a nil
// error means auto-reply is disabled.
func (s *Service) loadConfig(ctx context.Context, r *run) (*settings.TrainingConfig, *settings.InferenceSettings, *StageError) {
	var (
		cfg          *settings.TrainingConfig
		creds        *settings.InferenceSettings
		cfgErr       error
		inferenceErr error
	)

	// Both results are inspected below in a fixed order, so neither read cancels the other.
	var g errgroup.Group
	g.Go(func() error {
		cfg, cfgErr = s.settings.GetTrainingConfig(ctx)
		return nil
	})
	g.Go(func() error {
		creds, inferenceErr = s.settings.GetInferenceSettings(ctx)
		return nil
	})
	_ = g.Wait()

	if inferenceErr != nil || creds == nil {
		return nil, nil, newStageError(KindConfigurationMissing, StageLoadingConfig, MsgInferenceConfigAbsent, inferenceErr)
	}
	if cfgErr != nil {
		r.log.Warn().Err(cfgErr).Msg("reply settings unavailable, treating auto-reply as disabled")
		return nil, creds, nil
	}
	if cfg == nil || !cfg.Enabled {
		return nil, creds, nil
	}
	return cfg, creds, nil
}

func (s *Service) loadChannelSettings(ctx context.Context, r *run) *settings.ChannelSettings {
	creds, err := s.settings.GetChannelSettings(ctx)
	if err != nil {
		r.log.Warn().Err(err).Msg("channel settings unavailable")
		return nil
	}
	return creds
}

func (s *Service) retrieveContext(ctx context.Context, r *run, cfg *settings.TrainingConfig, question string) []retrieval.Document {
	query := retrieval.BuildQuery(cfg, question)
	docs, err := s.retrieval.Search(ctx, query)
	if err != nil {
		stageErr := newStageError(KindRetrievalFailed, StageRetrievingContext, "document search failed", err)
		r.log.Warn().
			Str("kind", string(stageErr.Kind)).
			Str("query", s.redact(query)).
			Err(err).
			Msg("continuing without document context")
		s.observer.RetrievalFailed(ctx, stageErr)
		return nil
	}
	r.log.Debug().Int("documents", len(docs)).Msg("document context retrieved")
	return docs
}

// acquireTyping sets the typing flag and returns its release. Write failures are logged only.
func (s *Service) acquireTyping(ctx context.Context, r *run) func() {
	r.enter(ctx, StageTypingOn)
	if err := s.typing.SetTyping(ctx, r.conversationID, true); err != nil {
		r.log.Error().Err(err).Msg("failed to set typing status")
	}
	return func() {
		releaseCtx := context.WithoutCancel(ctx)
		r.enter(releaseCtx, StageTypingOff)
		if err := s.typing.SetTyping(releaseCtx, r.conversationID, false); err != nil {
			r.log.Error().Err(err).Msg("failed to reset typing status")
		}
	}
}

func (s *Service) sendErrorNote(ctx context.Context, r *run, creds *settings.ChannelSettings, message string) {
	if creds == nil {
		return
	}
	if err := s.channel.SendMessage(ctx, creds, r.conversationID, msgErrorNotePrefix+message, true); err != nil {
		noteErr := newStageError(KindErrorNoteFailed, StageEmittingErrorNote, "failed to send error note", err)
		r.log.Error().Str("kind", string(noteErr.Kind)).Err(err).Msg(noteErr.Message)
		s.observer.ErrorNoteDelivered(ctx, false)
		return
	}
	s.observer.ErrorNoteDelivered(ctx, true)
}

func (s *Service) appendAudit(ctx context.Context, r *run, entry AuditEntry) {
	if err := s.audit.Append(ctx, entry); err != nil {
		r.log.Error().Err(err).Str("status", string(entry.Status)).Msg("failed to write reply log")
	}
}

func (s *Service) redact(text string) string {
	if s.redactor == nil {
		return text
	}
	return s.redactor.String(text)
}

// preview returns the first n characters of text.
func preview(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
