package handlers

import (
	"net/http"

	"lingua_webapp/internal/domain"
	"lingua_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthRequest struct {
	IdentityToken string `json:"identity_token"`
}

// Auth exchanges a verified identity-provider assertion for a service
// session token. The assertion's subject is trusted without re-verification;
// the cached profile row is refreshed on every exchange.
func (h *Handler) Auth(c *gin.Context) {
	var req AuthRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if req.IdentityToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "identity_token is required"})
		return
	}

	claims, err := service.ParseIdentityAssertion(req.IdentityToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid identity token"})
		return
	}

	ctx := c.Request.Context()
	user := &domain.UserAccount{
		ClerkID:  claims.ClerkID,
		Username: claims.Username,
		Name:     claims.Name,
		Country:  claims.Country,
		Role:     claims.Role,
	}
	if err := h.UserRepo.Upsert(ctx, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sync user"})
		return
	}

	token, err := service.GenerateSession(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	h.Audit.LogLogin(ctx, user.ID, c.ClientIP(), c.Request.UserAgent())

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"clerk_id": user.ClerkID,
			"username": user.Username,
			"name":     user.Name,
			"country":  user.Country,
			"role":     user.Role,
		},
	})
}
