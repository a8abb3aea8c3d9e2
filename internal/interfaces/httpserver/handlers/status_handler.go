package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/janhq/autoreply-api/internal/domain/autoreply"
	"github.com/janhq/autoreply-api/internal/interfaces/httpserver/responses"
)

// StatusHandler exposes the typing flag and reply log of a conversation.
type StatusHandler struct {
	typing autoreply.TypingStatusReader
	audit  autoreply.AuditReader
	log    zerolog.Logger
}

// NewStatusHandler constructs the handler.
func NewStatusHandler(typing autoreply.TypingStatusReader, audit autoreply.AuditReader, log zerolog.Logger) *StatusHandler {
	return &StatusHandler{
		typing: typing,
		audit:  audit,
		log:    log.With().Str("handler", "status").Logger(),
	}
}

type typingStatusResponse struct {
	ConversationID string `json:"conversationId"`
	IsTyping       bool   `json:"isTyping"`
}

type replyLogResponse struct {
	Status       string    `json:"status"`
	Details      string    `json:"details"`
	SystemPrompt *string   `json:"systemPrompt,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type replyLogListResponse struct {
	Data []replyLogResponse `json:"data"`
}

// TypingStatus handles GET /functions/v1/typing-status/:conversationId
// @Summary Get the typing flag of a conversation
// @Tags Status
// @Produce json
// @Param conversationId path string true "Conversation ID"
// @Success 200 {object} typingStatusResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /functions/v1/typing-status/{conversationId} [get]
func (h *StatusHandler) TypingStatus(c *gin.Context) {
	conversationID := c.Param("conversationId")

	typing, err := h.typing.IsTyping(c.Request.Context(), conversationID)
	if err != nil {
		responses.HandleError(c, err, "failed to read typing status")
		return
	}
	c.JSON(http.StatusOK, typingStatusResponse{ConversationID: conversationID, IsTyping: typing})
}

// ReplyLogs handles GET /functions/v1/reply-logs/:conversationId
// @Summary List reply log rows of a conversation
// @Tags Status
// @Produce json
// @Param conversationId path string true "Conversation ID"
// @Success 200 {object} replyLogListResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /functions/v1/reply-logs/{conversationId} [get]
func (h *StatusHandler) ReplyLogs(c *gin.Context) {
	entries, err := h.audit.ListByConversation(c.Request.Context(), c.Param("conversationId"))
	if err != nil {
		responses.HandleError(c, err, "failed to list reply logs")
		return
	}

	out := replyLogListResponse{Data: make([]replyLogResponse, 0, len(entries))}
	for _, e := range entries {
		out.Data = append(out.Data, replyLogResponse{
			Status:       string(e.Status),
			Details:      e.Details,
			SystemPrompt: e.SystemPrompt,
			CreatedAt:    e.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}
