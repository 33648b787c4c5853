package domain

import "time"

// PaymentProviderConfig is external checkout configuration. This service only
// echoes it when composing shop/checkout responses; it never talks to a
// payment gateway directly.
type PaymentProviderConfig struct {
	ID        int64     `db:"id" json:"id"`
	Provider  string    `db:"provider" json:"provider"`
	Enabled   bool      `db:"enabled" json:"enabled"`
	PublicKey string    `db:"public_key" json:"public_key"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
