package handlers

import (
	"lingua_webapp/internal/repository"
	"lingua_webapp/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB *pgxpool.Pool

	UserRepo    *repository.UserRepository
	CatalogRepo *repository.CatalogRepository

	Wallet      *service.WalletService
	Progress    *service.ProgressService
	Leaderboard *service.LeaderboardService
	Shop        *service.ShopService
	Webhooks    *service.WebhookService
	Audit       *service.AuditService

	LeaderboardMaxLimit int
}

// HandlerConfig holds tunables threaded in from the main config.
type HandlerConfig struct {
	LeaderboardMaxLimit    int
	LeaderboardConcurrency int
}

func NewHandler(db *pgxpool.Pool, cfg HandlerConfig) *Handler {
	if cfg.LeaderboardMaxLimit <= 0 {
		cfg.LeaderboardMaxLimit = 100
	}
	return &Handler{
		DB:                  db,
		UserRepo:            repository.NewUserRepository(db),
		CatalogRepo:         repository.NewCatalogRepository(db),
		Wallet:              service.NewWalletService(db),
		Progress:            service.NewProgressService(db),
		Leaderboard:         service.NewLeaderboardService(db, cfg.LeaderboardConcurrency),
		Shop:                service.NewShopService(db),
		Webhooks:            service.NewWebhookService(db),
		Audit:               service.NewAuditService(db),
		LeaderboardMaxLimit: cfg.LeaderboardMaxLimit,
	}
}

// getUserID reads the authenticated user id set by the JWT middleware.
func getUserID(c interface{ Get(string) (any, bool) }) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
