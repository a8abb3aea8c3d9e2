package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/janhq/autoreply-api/internal/interfaces/httpserver/handlers"
)

func registerFunctionRoutes(router gin.IRoutes, h *handlers.Provider) {
	router.POST("/auto-reply-worker", h.AutoReply.Trigger)
	router.POST("/search-documents", h.Search.SearchDocuments)
	router.POST("/suggest-care-script", h.CareScript.Suggest)
}

func registerStatusRoutes(router gin.IRoutes, handler *handlers.StatusHandler) {
	router.GET("/typing-status/:conversationId", handler.TypingStatus)
	router.GET("/reply-logs/:conversationId", handler.ReplyLogs)
}
