package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetLeaderboard returns the ranked projection. Query params: limit (default
// 50, capped), filter (week|month|allTime, default allTime), search.
func (h *Handler) GetLeaderboard(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > h.LeaderboardMaxLimit {
		limit = h.LeaderboardMaxLimit
	}

	res, err := h.Leaderboard.Build(c.Request.Context(), limit, c.Query("filter"), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"leaderboard": res.Entries,
		"total":       res.Total,
		"filter":      res.Filter,
	})
}
