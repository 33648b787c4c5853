package service

import (
	"context"
	"errors"

	"lingua_webapp/internal/domain"
	"lingua_webapp/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WalletService mutates the base currency wallet. Every successful mutation
// is a single atomic conditional update plus one currency event in the same
// database transaction, so two concurrent decrements cannot both pass the
// zero floor.
//
// Policy asymmetry, kept on purpose: gems reject out-of-range results with a
// validation error; hearts clamp silently into [0, MaxHearts] and never fail
// for range. Do not unify the two.
type WalletService struct {
	db     *pgxpool.Pool
	users  *repository.UserRepository
	events *repository.CurrencyEventRepository
	audit  *AuditService
}

func NewWalletService(db *pgxpool.Pool) *WalletService {
	return &WalletService{
		db:     db,
		users:  repository.NewUserRepository(db),
		events: repository.NewCurrencyEventRepository(db),
		audit:  NewAuditService(db),
	}
}

// AdjustResult reports a wallet mutation. The field names say gems but the
// same shape is reused for hearts; existing clients parse these exact keys.
type AdjustResult struct {
	PreviousGems  int64  `json:"previousGems"`
	NewGems       int64  `json:"newGems"`
	AmountChanged int64  `json:"amountChanged"`
	Action        string `json:"action"`
}

func signedDelta(action string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	switch action {
	case domain.ActionInc:
		return amount, nil
	case domain.ActionDec:
		return -amount, nil
	default:
		return 0, ErrInvalidAction
	}
}

// AdjustGems applies an all-or-nothing gem delta. Decrements below zero fail
// with ErrInsufficientGems; increments past MaxGems fail with ErrGemLimit.
func (s *WalletService) AdjustGems(ctx context.Context, userID int64, action string, amount int64) (*AdjustResult, error) {
	delta, err := signedDelta(action, amount)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	newBalance, err := s.users.AdjustGemsTx(ctx, tx, userID, delta)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The conditional update matched no row: either the user is
			// missing or the delta violates a bound. Tell them apart.
			exists, exErr := s.users.Exists(ctx, userID)
			return nil, classifyGemRejection(exists, exErr, delta)
		}
		return nil, err
	}

	ev := &domain.CurrencyEvent{
		UserID:       userID,
		Currency:     domain.CurrencyGems,
		Action:       action,
		Amount:       amount,
		BalanceAfter: newBalance,
	}
	if err := s.events.CreateWithTx(ctx, tx, ev); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.audit.LogBalanceChange(ctx, userID, domain.CurrencyGems, delta, nil)

	return &AdjustResult{
		PreviousGems:  newBalance - delta,
		NewGems:       newBalance,
		AmountChanged: amount,
		Action:        action,
	}, nil
}

// classifyGemRejection explains a conditional update that matched no row.
// When the existence check itself failed the storage error propagates as-is;
// reporting it as a wallet rejection would turn an outage into a 400.
func classifyGemRejection(exists bool, exErr error, delta int64) error {
	if exErr != nil {
		return exErr
	}
	if !exists {
		return ErrUserNotFound
	}
	if delta < 0 {
		return ErrInsufficientGems
	}
	return ErrGemLimit
}

// clampHearts applies a signed delta and clamps into [0, MaxHearts].
func clampHearts(current, delta int64) int64 {
	h := current + delta
	if h < 0 {
		return 0
	}
	if h > domain.MaxHearts {
		return domain.MaxHearts
	}
	return h
}

// AdjustHearts applies a heart delta, clamping the result into
// [0, MaxHearts]. Out-of-range results are clamped, never rejected.
func (s *WalletService) AdjustHearts(ctx context.Context, userID int64, action string, amount int64) (*AdjustResult, error) {
	delta, err := signedDelta(action, amount)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Row lock so concurrent adjustments serialize on the wallet row.
	current, err := s.users.GetHeartsForUpdate(ctx, tx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	next := clampHearts(current, delta)
	if err := s.users.SetHeartsTx(ctx, tx, userID, next); err != nil {
		return nil, err
	}

	ev := &domain.CurrencyEvent{
		UserID:       userID,
		Currency:     domain.CurrencyHearts,
		Action:       action,
		Amount:       amount,
		BalanceAfter: next,
	}
	if err := s.events.CreateWithTx(ctx, tx, ev); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	// The clamped change, not the requested one: a no-op clamp audits as a
	// zero-change credit.
	s.audit.LogBalanceChange(ctx, userID, domain.CurrencyHearts, next-current, nil)

	return &AdjustResult{
		PreviousGems:  current,
		NewGems:       next,
		AmountChanged: amount,
		Action:        action,
	}, nil
}

// GetEvents returns the user's recent wallet mutation history.
func (s *WalletService) GetEvents(ctx context.Context, userID int64, limit int) ([]*domain.CurrencyEvent, error) {
	return s.events.GetByUserID(ctx, userID, limit)
}
