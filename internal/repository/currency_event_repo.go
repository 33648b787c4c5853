package repository

import (
	"context"
	"encoding/json"

	"lingua_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CurrencyEventRepository persists the append-only wallet mutation log.
type CurrencyEventRepository struct {
	db *pgxpool.Pool
}

func NewCurrencyEventRepository(db *pgxpool.Pool) *CurrencyEventRepository {
	return &CurrencyEventRepository{db: db}
}

// CreateWithTx inserts an event within the same transaction as the balance
// change it records.
func (r *CurrencyEventRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, ev *domain.CurrencyEvent) error {
	metaJSON, err := json.Marshal(ev.Meta)
	if err != nil {
		metaJSON = []byte("{}")
	}

	return tx.QueryRow(ctx,
		`INSERT INTO currency_events (user_id, currency, action, amount, balance_after, meta)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		ev.UserID, ev.Currency, ev.Action, ev.Amount, ev.BalanceAfter, metaJSON,
	).Scan(&ev.ID, &ev.CreatedAt)
}

// GetByUserID returns recent events for a user, newest first.
func (r *CurrencyEventRepository) GetByUserID(ctx context.Context, userID int64, limit int) ([]*domain.CurrencyEvent, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, currency, action, amount, balance_after, meta, created_at
		 FROM currency_events
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.CurrencyEvent
	for rows.Next() {
		var (
			ev       domain.CurrencyEvent
			metaJSON []byte
		)
		if err := rows.Scan(&ev.ID, &ev.UserID, &ev.Currency, &ev.Action, &ev.Amount, &ev.BalanceAfter, &metaJSON, &ev.CreatedAt); err != nil {
			return nil, err
		}
		if len(metaJSON) > 0 {
			_ = json.Unmarshal(metaJSON, &ev.Meta)
		}
		res = append(res, &ev)
	}
	return res, rows.Err()
}
