package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/janhq/autoreply-api/internal/domain/retrieval"
	"github.com/janhq/autoreply-api/internal/interfaces/httpserver/dto"
	"github.com/janhq/autoreply-api/internal/interfaces/httpserver/responses"
)

// SearchHandler exposes semantic document search.
type SearchHandler struct {
	searcher retrieval.Searcher
	log      zerolog.Logger
}

// NewSearchHandler constructs the handler.
func NewSearchHandler(searcher retrieval.Searcher, log zerolog.Logger) *SearchHandler {
	return &SearchHandler{
		searcher: searcher,
		log:      log.With().Str("handler", "search").Logger(),
	}
}

// SearchDocuments handles POST /functions/v1/search-documents
// @Summary Search knowledge-base documents
// @Description Embeds the query and returns documents ranked by similarity.
// @Tags Retrieval
// @Accept json
// @Produce json
// @Param request body dto.SearchDocumentsRequest true "Search query"
// @Success 200 {array} retrieval.Document
// @Failure 400 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /functions/v1/search-documents [post]
func (h *SearchHandler) SearchDocuments(c *gin.Context) {
	var req dto.SearchDocumentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleErrorWithStatus(c, http.StatusBadRequest, err, "Invalid JSON body")
		return
	}

	docs, err := h.searcher.Search(c.Request.Context(), req.Query)
	if err != nil {
		h.log.Warn().Err(err).Msg("document search failed")
		responses.HandleError(c, err, "document search failed")
		return
	}
	if docs == nil {
		docs = []retrieval.Document{}
	}
	c.JSON(http.StatusOK, docs)
}
