package autoreply

import (
	"context"
	"time"
)

// Outcome of a run as recorded in the audit trail and metrics.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeError    Outcome = "error"
	OutcomeDisabled Outcome = "disabled"
)

// TypingStatusStore persists the per-conversation "reply in progress" flag.
type TypingStatusStore interface {
	SetTyping(ctx context.Context, conversationID string, typing bool) error
}

// TypingStatusReader reads the typing flag back.
type TypingStatusReader interface {
	IsTyping(ctx context.Context, conversationID string) (bool, error)
}

// AuditEntry is one append-only reply log row.
type AuditEntry struct {
	ConversationID string
	Status         Outcome
	Details        string
	SystemPrompt   *string
	CreatedAt      time.Time
}

// AuditLog appends reply log rows.
type AuditLog interface {
	Append(ctx context.Context, entry AuditEntry) error
}

// AuditReader lists reply log rows for a conversation, oldest first.
type AuditReader interface {
	ListByConversation(ctx context.Context, conversationID string) ([]AuditEntry, error)
}

// Observer receives run telemetry. Implementations must not block.
type Observer interface {
	RunStarted(ctx context.Context, conversationID string) context.Context
	StageChanged(ctx context.Context, from, to Stage)
	StageCompleted(ctx context.Context, stage Stage, elapsed time.Duration)
	RetrievalFailed(ctx context.Context, err error)
	ErrorNoteDelivered(ctx context.Context, delivered bool)
	RunFinished(ctx context.Context, outcome Outcome, err error)
}

// NoopObserver discards all telemetry.
type NoopObserver struct{}

func (NoopObserver) RunStarted(ctx context.Context, _ string) context.Context { return ctx }
func (NoopObserver) StageChanged(context.Context, Stage, Stage) {}
func (NoopObserver) StageCompleted(context.Context, Stage, time.Duration) {}
func (NoopObserver) RetrievalFailed(context.Context, error) {}
func (NoopObserver) ErrorNoteDelivered(context.Context, bool) {}
func (NoopObserver) RunFinished(context.Context, Outcome, error) {}
