package repository

import (
	"context"

	"lingua_webapp/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PaymentSettingsRepository reads external payment provider configuration.
// This service only echoes it in checkout responses.
type PaymentSettingsRepository struct {
	db *pgxpool.Pool
}

func NewPaymentSettingsRepository(db *pgxpool.Pool) *PaymentSettingsRepository {
	return &PaymentSettingsRepository{db: db}
}

func (r *PaymentSettingsRepository) ListEnabled(ctx context.Context) ([]*domain.PaymentProviderConfig, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, provider, enabled, public_key, updated_at
		 FROM payment_providers
		 WHERE enabled = true
		 ORDER BY provider`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.PaymentProviderConfig
	for rows.Next() {
		var p domain.PaymentProviderConfig
		if err := rows.Scan(&p.ID, &p.Provider, &p.Enabled, &p.PublicKey, &p.UpdatedAt); err != nil {
			return nil, err
		}
		res = append(res, &p)
	}
	return res, rows.Err()
}
