package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/janhq/autoreply-api/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	handlers *handlers.Provider
}

// NewRoutes builds the v1 route registrar.
func NewRoutes(handlerProvider *handlers.Provider) *Routes {
	return &Routes{
		handlers: handlerProvider,
	}
}

// Register attaches all v1 routes under the /functions/v1 prefix.
func (r *Routes) Register(engine *gin.Engine) {
	group := engine.Group("/functions/v1")
	registerFunctionRoutes(group, r.handlers)
	registerStatusRoutes(group, r.handlers.Status)
}
