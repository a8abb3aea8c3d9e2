package handlers

import (
	"github.com/rs/zerolog"

	"github.com/janhq/autoreply-api/internal/domain/autoreply"
	"github.com/janhq/autoreply-api/internal/domain/carescript"
	"github.com/janhq/autoreply-api/internal/domain/retrieval"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	AutoReply  *AutoReplyHandler
	Search     *SearchHandler
	CareScript *CareScriptHandler
	Status     *StatusHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(
	processor autoreply.Processor,
	searcher retrieval.Searcher,
	suggester carescript.Suggester,
	typing autoreply.TypingStatusReader,
	audit autoreply.AuditReader,
	log zerolog.Logger,
) *Provider {
	return &Provider{
		AutoReply:  NewAutoReplyHandler(processor, log),
		Search:     NewSearchHandler(searcher, log),
		CareScript: NewCareScriptHandler(suggester, log),
		Status:     NewStatusHandler(typing, audit, log),
	}
}
