package handlers

import (
	"net/http"
	"strconv"
	"time"

	"lingua_webapp/internal/domain"

	"github.com/gin-gonic/gin"
)

// DeleteUser removes a user and everything hanging off the row: progress
// ledgers, currency events. Audit logs are kept for forensics.
func (h *Handler) DeleteUser(c *gin.Context) {
	adminID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	targetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	ctx := c.Request.Context()
	target, err := h.UserRepo.GetByID(ctx, targetID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	// Admin accounts are removed by operators directly, never over the API.
	if target.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin accounts cannot be deleted"})
		return
	}

	deleted, err := h.UserRepo.Delete(ctx, targetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete user"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	h.Audit.LogAdminAction(ctx, adminID, domain.AuditActionAdminDeleteUser, targetID, nil)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type ShopItemRequest struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Price         int64      `json:"price"`
	Type          string     `json:"type"`
	Featured      bool       `json:"featured"`
	IsLimitedTime bool       `json:"is_limited_time"`
	StartDate     *time.Time `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
	Tags          []string   `json:"tags"`
}

func validItemType(t string) bool {
	switch t {
	case domain.ItemTypeCurrency, domain.ItemTypeConsumable, domain.ItemTypePermanent,
		domain.ItemTypeSubscription, domain.ItemTypeBundle:
		return true
	}
	return false
}

// UpsertShopItem creates or updates a shop item.
func (h *Handler) UpsertShopItem(c *gin.Context) {
	adminID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req ShopItemRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if req.Name == "" || req.Price < 0 || !validItemType(req.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, non-negative price and a valid type are required"})
		return
	}
	if req.IsLimitedTime && (req.StartDate == nil || req.EndDate == nil || !req.EndDate.After(*req.StartDate)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limited-time items need a valid start_date/end_date window"})
		return
	}

	item := &domain.ShopItem{
		ID:            req.ID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Type:          req.Type,
		Featured:      req.Featured,
		IsLimitedTime: req.IsLimitedTime,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Tags:          req.Tags,
	}

	ctx := c.Request.Context()
	if err := h.Shop.UpsertItem(ctx, item); err != nil {
		respondError(c, err)
		return
	}

	h.Audit.LogAdminAction(ctx, adminID, domain.AuditActionAdminShopUpsert, 0, map[string]interface{}{
		"item_id": item.ID,
	})
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// AuditLogs returns recent audit entries, optionally scoped to one user.
func (h *Handler) AuditLogs(c *gin.Context) {
	limit := 100
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}

	ctx := c.Request.Context()
	if v := c.Query("user_id"); v != "" {
		userID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}
		logs, err := h.Audit.GetUserAuditLogs(ctx, userID, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get audit logs"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"logs": logs})
		return
	}

	logs, err := h.Audit.GetRecentLogs(ctx, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get audit logs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}
