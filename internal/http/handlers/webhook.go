package handlers

import (
	"net/http"

	"lingua_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

// IdentityWebhook receives identity-provider lifecycle events from the relay.
// The relay verified the signature; this endpoint only dispatches. Handlers
// are idempotent, so redelivery is safe.
func (h *Handler) IdentityWebhook(c *gin.Context) {
	var ev service.WebhookEvent
	if err := c.BindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if ev.Type == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "event type is required"})
		return
	}

	if err := h.Webhooks.Dispatch(c.Request.Context(), &ev); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
