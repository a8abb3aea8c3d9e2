package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/janhq/autoreply-api/internal/domain/autoreply"
	"github.com/janhq/autoreply-api/internal/interfaces/httpserver/dto"
	"github.com/janhq/autoreply-api/internal/interfaces/httpserver/responses"
)

// AutoReplyHandler triggers the reply pipeline.
type AutoReplyHandler struct {
	processor autoreply.Processor
	log       zerolog.Logger
}

// NewAutoReplyHandler constructs the handler.
func NewAutoReplyHandler(processor autoreply.Processor, log zerolog.Logger) *AutoReplyHandler {
	return &AutoReplyHandler{
		processor: processor,
		log:       log.With().Str("handler", "autoreply").Logger(),
	}
}

// Trigger handles POST /functions/v1/auto-reply-worker
// @Summary Run the auto-reply pipeline for a conversation
// @Description Loads settings and history, generates a reply and posts it to the conversation.
// @Tags AutoReply
// @Accept json
// @Produce json
// @Param request body dto.ConversationRequest true "Conversation to answer"
// @Success 200 {object} responses.MessageResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /functions/v1/auto-reply-worker [post]
func (h *AutoReplyHandler) Trigger(c *gin.Context) {
	var req dto.ConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleErrorWithStatus(c, http.StatusBadRequest, err, "Invalid JSON body")
		return
	}

	// Runs continue after the client disconnects.
	ctx := context.WithoutCancel(c.Request.Context())
	result, err := h.processor.Process(ctx, req.ConversationID.String())
	if err != nil {
		var stageErr *autoreply.StageError
		if errors.As(err, &stageErr) && stageErr.Kind == autoreply.KindMissingInput {
			responses.HandleErrorWithStatus(c, http.StatusBadRequest, err, stageErr.Message)
			return
		}
		h.log.Error().Err(err).Str("conversation_id", req.ConversationID.String()).Msg("auto-reply run failed")
		responses.HandleErrorWithStatus(c, http.StatusInternalServerError, err, err.Error())
		return
	}

	c.JSON(http.StatusOK, responses.MessageResponse{Message: result.Message})
}
