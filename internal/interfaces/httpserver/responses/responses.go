package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/janhq/autoreply-api/internal/utils/platformerrors"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body of trigger endpoints on success.
type MessageResponse struct {
	Message string `json:"message"`
}

// HandleError writes err as {error}. Validation failures map to 400, everything else to 500.
func HandleError(c *gin.Context, err error, fallback string) {
	_ = c.Error(err)

	var pe *platformerrors.PlatformError
	if errors.As(err, &pe) {
		status := http.StatusInternalServerError
		if pe.Type == platformerrors.ErrorTypeValidation {
			status = http.StatusBadRequest
		}
		message := pe.Message
		if message == "" {
			message = fallback
		}
		c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
		return
	}

	message := fallback
	if err != nil {
		message = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: message})
}

// HandleErrorWithStatus writes message with an explicit status.
func HandleErrorWithStatus(c *gin.Context, status int, err error, message string) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}
