package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Me returns the authenticated user's cached identity and wallet.
func (h *Handler) Me(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	user, err := h.UserRepo.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         user.ID,
		"clerk_id":   user.ClerkID,
		"username":   user.Username,
		"name":       user.Name,
		"country":    user.Country,
		"role":       user.Role,
		"xp":         user.Xp,
		"gems":       user.Gems,
		"gel":        user.Gel,
		"hearts":     user.Hearts,
		"streak":     user.Streak,
		"created_at": user.CreatedAt,
	})
}
