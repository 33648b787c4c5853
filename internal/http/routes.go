package http

import (
	"time"

	"lingua_webapp/internal/config"
	"lingua_webapp/internal/http/handlers"
	"lingua_webapp/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string) {
	h := handlers.NewHandler(db, handlers.HandlerConfig{
		LeaderboardMaxLimit:    cfg.LeaderboardMaxLimit,
		LeaderboardConcurrency: cfg.LeaderboardConcurrency,
	})
	healthHandler := handlers.NewHealthHandler(db, version)

	apiRateWindow := time.Duration(cfg.APIRateWindow) * time.Second
	webhookRateWindow := time.Duration(cfg.WebhookRateWindow) * time.Second

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	// API v1 routes
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(cfg.APIRateLimit, apiRateWindow))
	registerAPIRoutes(v1, h, apiRateWindow)

	// Identity provider webhooks. The relay retries on non-2xx, so these get
	// their own in-memory limiter instead of the shared Redis window.
	webhooks := r.Group("/webhooks")
	webhooks.Use(middleware.SimpleRateLimit(cfg.WebhookRateLimit, webhookRateWindow))
	webhooks.POST("/identity", h.IdentityWebhook)
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler, apiRateWindow time.Duration) {
	// Auth: exchange an identity-provider assertion for a session token
	api.POST("/auth", middleware.RedisRateLimit(10, apiRateWindow), h.Auth)

	// User profile
	api.GET("/me", middleware.JWT(), h.Me)

	// Catalog
	api.GET("/languages", h.Languages)

	// Progress
	api.POST("/progress/enroll", middleware.JWT(), h.Enroll)
	api.POST("/lessons/:id/exercises/complete", middleware.JWT(), h.CompleteExercises)
	api.GET("/units/:id/status", middleware.JWT(), h.UnitStatus)
	api.GET("/me/progress/:id", middleware.JWT(), h.MyProgress)

	// Wallet mutation limiter (per user, not per IP)
	walletRL := middleware.UserRateLimit(30, time.Minute)

	// Wallet
	api.POST("/wallet/gems", middleware.JWT(), walletRL, h.AdjustGems)
	api.POST("/wallet/hearts", middleware.JWT(), walletRL, h.AdjustHearts)
	api.GET("/wallet/history", middleware.JWT(), h.WalletHistory)

	// Leaderboard
	api.GET("/leaderboard", h.GetLeaderboard)

	// Shop
	api.GET("/shop/items", h.ListShopItems)
	api.GET("/shop/items/:id", h.GetShopItem)
	api.GET("/shop/checkout/config", middleware.JWT(), h.CheckoutConfig)

	// Admin
	admin := api.Group("/admin")
	admin.Use(middleware.JWT(), middleware.RequireAdmin())
	{
		admin.DELETE("/users/:id", h.DeleteUser)
		admin.POST("/shop/items", h.UpsertShopItem)
		admin.GET("/audit", h.AuditLogs)
	}
}
