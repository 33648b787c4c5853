package service

import (
	"context"

	"lingua_webapp/internal/domain"
	"lingua_webapp/internal/logger"
	"lingua_webapp/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditService handles audit logging. Failures are logged, never propagated:
// audit must not break the request that triggered it.
type AuditService struct {
	repo *repository.AuditRepository
}

func NewAuditService(db *pgxpool.Pool) *AuditService {
	return &AuditService{
		repo: repository.NewAuditRepository(db),
	}
}

// Log creates a new audit log entry
func (s *AuditService) Log(ctx context.Context, userID int64, action, category string, details map[string]interface{}) {
	log := &domain.AuditLog{
		UserID:   userID,
		Action:   action,
		Category: category,
		Details:  details,
	}

	if err := s.repo.Create(ctx, log); err != nil {
		logger.Error("failed to create audit log", "error", err, "action", action, "user_id", userID)
	}
}

// LogWithRequest creates an audit log with request info (IP, User-Agent)
func (s *AuditService) LogWithRequest(ctx context.Context, userID int64, action, category, ip, userAgent string, details map[string]interface{}) {
	log := &domain.AuditLog{
		UserID:    userID,
		Action:    action,
		Category:  category,
		Details:   details,
		IP:        ip,
		UserAgent: userAgent,
	}

	if err := s.repo.Create(ctx, log); err != nil {
		logger.Error("failed to create audit log", "error", err, "action", action, "user_id", userID)
	}
}

// LogLogin logs a user login
func (s *AuditService) LogLogin(ctx context.Context, userID int64, ip, userAgent string) {
	s.LogWithRequest(ctx, userID, domain.AuditActionLogin, domain.AuditCategoryAuth, ip, userAgent, nil)
}

// LogLogout logs a user logout
func (s *AuditService) LogLogout(ctx context.Context, userID int64) {
	s.Log(ctx, userID, domain.AuditActionLogout, domain.AuditCategoryAuth, nil)
}

// balanceAction classifies a signed balance change.
func balanceAction(change int64) string {
	if change < 0 {
		return domain.AuditActionBalanceDebit
	}
	return domain.AuditActionBalanceCredit
}

// LogBalanceChange logs a wallet mutation
func (s *AuditService) LogBalanceChange(ctx context.Context, userID int64, currency string, change int64, details map[string]interface{}) {
	action := balanceAction(change)

	if details == nil {
		details = make(map[string]interface{})
	}
	details["currency"] = currency
	details["change"] = change

	s.Log(ctx, userID, action, domain.AuditCategoryBalance, details)
}

// LogProgress logs a progress milestone (lesson/chapter/course completion)
func (s *AuditService) LogProgress(ctx context.Context, userID int64, action string, details map[string]interface{}) {
	s.Log(ctx, userID, action, domain.AuditCategoryProgress, details)
}

// LogAdminAction logs an admin action against a target user
func (s *AuditService) LogAdminAction(ctx context.Context, adminID int64, action string, targetUserID int64, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	details["admin_id"] = adminID
	details["target_user_id"] = targetUserID

	s.Log(ctx, targetUserID, action, domain.AuditCategoryAdmin, details)
}

// GetUserAuditLogs returns audit logs for a user
func (s *AuditService) GetUserAuditLogs(ctx context.Context, userID int64, limit int) ([]*domain.AuditLog, error) {
	return s.repo.GetByUserID(ctx, userID, limit)
}

// GetRecentLogs returns recent audit logs
func (s *AuditService) GetRecentLogs(ctx context.Context, limit int) ([]*domain.AuditLog, error) {
	return s.repo.GetRecent(ctx, limit)
}
