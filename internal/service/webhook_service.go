package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"lingua_webapp/internal/domain"
	"lingua_webapp/internal/logger"
	"lingua_webapp/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Identity-provider lifecycle event types.
const (
	EventUserCreated    = "user.created"
	EventSessionCreated = "session.created"
	EventSessionRemoved = "session.removed"
)

// WebhookEvent is a verified identity-provider event as delivered by the
// relay. Signature verification happened upstream; the payload is trusted.
type WebhookEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// WebhookService routes identity-provider events through an explicit dispatch
// table. Unhandled event types are logged and acknowledged, never silently
// dropped in a conditional chain.
type WebhookService struct {
	users *repository.UserRepository
	audit *AuditService

	handlers map[string]func(ctx context.Context, ev *WebhookEvent) error
	now      func() time.Time
}

func NewWebhookService(db *pgxpool.Pool) *WebhookService {
	s := &WebhookService{
		users: repository.NewUserRepository(db),
		audit: NewAuditService(db),
		now:   time.Now,
	}
	s.handlers = map[string]func(ctx context.Context, ev *WebhookEvent) error{
		EventUserCreated:    s.handleUserCreated,
		EventSessionCreated: s.handleSessionCreated,
		EventSessionRemoved: s.handleSessionRemoved,
	}
	return s
}

// Dispatch routes one event to its handler.
func (s *WebhookService) Dispatch(ctx context.Context, ev *WebhookEvent) error {
	h, ok := s.handlers[ev.Type]
	if !ok {
		logger.Warn("unhandled webhook event type", "type", ev.Type)
		return nil
	}
	return h(ctx, ev)
}

type userEventData struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Country  string `json:"country"`
	Role     string `json:"role"`
}

// handleUserCreated syncs the identity-provider user into the local cache.
// Upsert on clerk_id makes redelivery harmless.
func (s *WebhookService) handleUserCreated(ctx context.Context, ev *WebhookEvent) error {
	var data userEventData
	if err := json.Unmarshal(ev.Data, &data); err != nil {
		return err
	}
	if data.ID == "" {
		return errors.New("user event missing id")
	}

	u := &domain.UserAccount{
		ClerkID:  data.ID,
		Username: data.Username,
		Name:     data.Name,
		Country:  data.Country,
		Role:     data.Role,
	}
	if err := s.users.Upsert(ctx, u); err != nil {
		return err
	}

	s.audit.Log(ctx, u.ID, domain.AuditActionUserSynced, domain.AuditCategoryWebhook, map[string]interface{}{
		"clerk_id": u.ClerkID,
	})
	return nil
}

type sessionEventData struct {
	UserID string `json:"user_id"`
}

// handleSessionCreated records a login and advances the daily streak.
func (s *WebhookService) handleSessionCreated(ctx context.Context, ev *WebhookEvent) error {
	var data sessionEventData
	if err := json.Unmarshal(ev.Data, &data); err != nil {
		return err
	}

	u, err := s.users.GetByClerkID(ctx, data.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}

	now := s.now()
	streak := nextStreak(u.LastLoginAt, now, u.Streak)
	if err := s.users.RecordLogin(ctx, u.ID, now, streak); err != nil {
		return err
	}

	s.audit.LogLogin(ctx, u.ID, "", "")
	return nil
}

// handleSessionRemoved records a logout.
func (s *WebhookService) handleSessionRemoved(ctx context.Context, ev *WebhookEvent) error {
	var data sessionEventData
	if err := json.Unmarshal(ev.Data, &data); err != nil {
		return err
	}

	u, err := s.users.GetByClerkID(ctx, data.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}

	s.audit.LogLogout(ctx, u.ID)
	return nil
}

// nextStreak computes the login streak: unchanged for a second login on the
// same calendar day, incremented when the last login was yesterday, reset to
// 1 otherwise. Days are compared in UTC.
func nextStreak(lastLogin *time.Time, now time.Time, current int64) int64 {
	if lastLogin == nil {
		return 1
	}

	last := lastLogin.UTC().Truncate(24 * time.Hour)
	today := now.UTC().Truncate(24 * time.Hour)

	switch today.Sub(last) {
	case 0:
		if current < 1 {
			return 1
		}
		return current
	case 24 * time.Hour:
		return current + 1
	default:
		return 1
	}
}
