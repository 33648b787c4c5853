package handlers

import (
	"net/http"

	"lingua_webapp/internal/logger"
	"lingua_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

// respondError maps a service error onto the HTTP error contract: validation
// and not-found errors keep their specific message (callers need the reason);
// anything else becomes a generic 500 so internals never leak.
func respondError(c *gin.Context, err error) {
	switch {
	case service.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case service.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
