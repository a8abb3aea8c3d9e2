// Package carescript drafts a customer care plan for a conversation from the local Chatwoot mirror.
package carescript

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/janhq/autoreply-api/internal/domain/inference"
	"github.com/janhq/autoreply-api/internal/domain/prompt"
	"github.com/janhq/autoreply-api/internal/domain/settings"
	"github.com/janhq/autoreply-api/internal/domain/transcript"
	"github.com/janhq/autoreply-api/internal/utils/platformerrors"
)

// PromptName is the ai_training_prompts row driving this feature.
const PromptName = "care_script_suggestion"

// Tokens recognised in the care script prompt.
const (
	TokenCurrentDate         = "{{current_date}}"
	TokenContactName         = "{{contact_name}}"
	TokenConversationHistory = "{{conversation_history}}"
)

const (
	MsgMissingConversationID = "Yêu cầu thiếu ID cuộc trò chuyện."
	MsgInferenceConfigAbsent = "Không tìm thấy cấu hình AI."
	MsgPromptDisabled        = "Tính năng gợi ý kịch bản chăm sóc đang bị tắt. Bạn có thể bật lại trong trang Huấn luyện Chatbot."
	MsgPromptEmpty           = "Nội dung huấn luyện cho tính năng này chưa được thiết lập."
	MsgNoMessages            = "Không tìm thấy tin nhắn cho cuộc trò chuyện này."
	msgPromptLoadPrefix      = "Không thể tải prompt huấn luyện: "
	msgInvalidJSON           = "AI response is not valid JSON"
	defaultContactName       = "Khách hàng"
	dateLayout               = "2/1/2006"
)

// TrainingPrompt is an operator-authored prompt row.
type TrainingPrompt struct {
	Name   string
	Text   string
	Active bool
}

// PromptStore reads training prompts by name.
type PromptStore interface {
	GetTrainingPrompt(ctx context.Context, name string) (*TrainingPrompt, error)
}

// ConversationMirror reads the locally synchronised copy of Chatwoot conversations.
type ConversationMirror interface {
	ListMessages(ctx context.Context, conversationID string) ([]transcript.Message, error)
	ContactName(ctx context.Context, conversationID string) (string, error)
}

// Suggester drafts care scripts.
type Suggester interface {
	Suggest(ctx context.Context, conversationID string) (json.RawMessage, error)
}

// Service implements Suggester.
type Service struct {
	settings  settings.Repository
	prompts   PromptStore
	mirror    ConversationMirror
	inference inference.Client
	model     string
	loc       *time.Location
	now       func() time.Time
	log       zerolog.Logger
}

// NewService creates a care script service.
func NewService(repo settings.Repository, prompts PromptStore, mirror ConversationMirror, client inference.Client, model string, loc *time.Location, log zerolog.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		settings:  repo,
		prompts:   prompts,
		mirror:    mirror,
		inference: client,
		model:     model,
		loc:       loc,
		now:       time.Now,
		log:       log.With().Str("component", "carescript").Logger(),
	}
}

// Suggest returns the JSON document produced by the model for the conversation.
func (s *Service) Suggest(ctx context.Context, conversationID string) (json.RawMessage, error) {
	conversationID = strings.TrimSpace(conversationID)
	if conversationID == "" {
		return nil, fail(ctx, platformerrors.ErrorTypeValidation, MsgMissingConversationID, nil)
	}

	creds, err := s.settings.GetInferenceSettings(ctx)
	if err != nil || creds == nil {
		return nil, fail(ctx, platformerrors.ErrorTypeNotFound, MsgInferenceConfigAbsent, err)
	}

	tp, err := s.prompts.GetTrainingPrompt(ctx, PromptName)
	if err != nil {
		return nil, fail(ctx, platformerrors.ErrorTypeDatabaseError, msgPromptLoadPrefix+err.Error(), err)
	}
	if !tp.Active {
		return nil, fail(ctx, platformerrors.ErrorTypeInternal, MsgPromptDisabled, nil)
	}
	if tp.Text == "" {
		return nil, fail(ctx, platformerrors.ErrorTypeInternal, MsgPromptEmpty, nil)
	}

	messages, err := s.mirror.ListMessages(ctx, conversationID)
	if err != nil {
		return nil, fail(ctx, platformerrors.ErrorTypeDatabaseError, err.Error(), err)
	}
	history, err := transcript.Format(messages, s.loc)
	if err != nil {
		return nil, fail(ctx, platformerrors.ErrorTypeNotFound, MsgNoMessages, err)
	}

	contact, err := s.mirror.ContactName(ctx, conversationID)
	if err != nil {
		return nil, fail(ctx, platformerrors.ErrorTypeDatabaseError, err.Error(), err)
	}
	if contact == "" {
		contact = defaultContactName
	}

	systemPrompt := prompt.Substitute(tp.Text, []prompt.Replacement{
		{Token: TokenCurrentDate, Value: s.now().In(s.loc).Format(dateLayout)},
		{Token: TokenContactName, Value: contact},
		{Token: TokenConversationHistory, Value: history},
	})

	reply, err := s.inference.Complete(ctx, creds, s.model, []inference.Message{
		{Role: inference.RoleSystem, Content: systemPrompt},
	})
	if err != nil {
		var providerErr *inference.ProviderError
		if errors.As(err, &providerErr) {
			return nil, fail(ctx, platformerrors.ErrorTypeExternal, providerErr.Message, err)
		}
		return nil, fail(ctx, platformerrors.ErrorTypeExternal, err.Error(), err)
	}

	suggestion := StripCodeFence(reply)
	if !json.Valid([]byte(suggestion)) {
		s.log.Warn().Int("length", len(reply)).Str("conversation_id", conversationID).Msg("model returned non-JSON care script")
		return nil, fail(ctx, platformerrors.ErrorTypeExternal, msgInvalidJSON, nil)
	}
	return json.RawMessage(suggestion), nil
}

// StripCodeFence removes markdown json fences around a model answer.
func StripCodeFence(content string) string {
	content = strings.ReplaceAll(content, "```json\n", "")
	content = strings.ReplaceAll(content, "```", "")
	return strings.TrimSpace(content)
}

func fail(ctx context.Context, errorType platformerrors.ErrorType, message string, cause error) error {
	return platformerrors.NewError(ctx, platformerrors.LayerDomain, errorType, message, cause)
}
