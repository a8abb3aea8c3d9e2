package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/janhq/autoreply-api/internal/domain/carescript"
	"github.com/janhq/autoreply-api/internal/interfaces/httpserver/dto"
	"github.com/janhq/autoreply-api/internal/interfaces/httpserver/responses"
)

// CareScriptHandler returns model-generated customer care suggestions.
type CareScriptHandler struct {
	suggester carescript.Suggester
	log       zerolog.Logger
}

// NewCareScriptHandler constructs the handler.
func NewCareScriptHandler(suggester carescript.Suggester, log zerolog.Logger) *CareScriptHandler {
	return &CareScriptHandler{
		suggester: suggester,
		log:       log.With().Str("handler", "carescript").Logger(),
	}
}

// Suggest handles POST /functions/v1/suggest-care-script
// @Summary Suggest a care script for a conversation
// @Description Renders the care-script training prompt over the conversation and returns the model's JSON.
// @Tags CareScript
// @Accept json
// @Produce json
// @Param request body dto.ConversationRequest true "Conversation to analyse"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /functions/v1/suggest-care-script [post]
func (h *CareScriptHandler) Suggest(c *gin.Context) {
	var req dto.ConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleErrorWithStatus(c, http.StatusBadRequest, err, "Invalid JSON body")
		return
	}

	raw, err := h.suggester.Suggest(c.Request.Context(), req.ConversationID.String())
	if err != nil {
		h.log.Warn().Err(err).Str("conversation_id", req.ConversationID.String()).Msg("care script suggestion failed")
		responses.HandleError(c, err, "care script suggestion failed")
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}
