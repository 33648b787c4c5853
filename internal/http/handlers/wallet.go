package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AdjustRequest struct {
	Action string `json:"action"`
	Amount int64  `json:"amount"`
}

// AdjustGems applies an all-or-nothing gem delta. Exceeding the gem ceiling
// or decrementing past zero is rejected with a 400, never clamped.
func (h *Handler) AdjustGems(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req AdjustRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	res, err := h.Wallet.AdjustGems(c.Request.Context(), userID, req.Action, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": res})
}

// AdjustHearts applies a heart delta, clamped into [0,5]. Unlike gems this
// never fails for an out-of-range result. The response reuses the gems field
// names; existing clients parse those exact keys.
func (h *Handler) AdjustHearts(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req AdjustRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	res, err := h.Wallet.AdjustHearts(c.Request.Context(), userID, req.Action, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": res})
}

// WalletHistory returns the user's recent currency events, newest first.
func (h *Handler) WalletHistory(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	events, err := h.Wallet.GetEvents(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get wallet history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}
