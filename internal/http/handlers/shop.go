package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListShopItems returns every item with its current discount. Discounts are
// computed per request, so two reads of the same item may differ without any
// write in between.
func (h *Handler) ListShopItems(c *gin.Context) {
	items, err := h.Shop.ListItems(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list shop items"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetShopItem returns one priced item.
func (h *Handler) GetShopItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	item, err := h.Shop.GetItem(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// CheckoutConfig echoes the enabled payment providers and their public keys.
// Routing to the gateway itself happens client-side.
func (h *Handler) CheckoutConfig(c *gin.Context) {
	providers, err := h.Shop.CheckoutConfig(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get checkout config"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"providers": providers})
}
