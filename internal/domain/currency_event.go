package domain

import "time"

// Currency names for CurrencyEvent records.
const (
	CurrencyGems   = "gems"
	CurrencyHearts = "hearts"
	CurrencyXp     = "xp"
)

// Wallet mutation actions.
const (
	ActionInc = "inc"
	ActionDec = "dec"
)

// CurrencyEvent is one entry of the append-only wallet mutation log. Every
// successful gem/heart adjustment writes exactly one event inside the same
// database transaction as the balance change.
type CurrencyEvent struct {
	ID           int64                  `db:"id" json:"id"`
	UserID       int64                  `db:"user_id" json:"user_id"`
	Currency     string                 `db:"currency" json:"currency"`
	Action       string                 `db:"action" json:"action"`
	Amount       int64                  `db:"amount" json:"amount"`
	BalanceAfter int64                  `db:"balance_after" json:"balance_after"`
	Meta         map[string]interface{} `db:"meta" json:"meta,omitempty"`
	CreatedAt    time.Time              `db:"created_at" json:"created_at"`
}
