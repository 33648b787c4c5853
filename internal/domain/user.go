package domain

import "time"

// Role values mirror the identity provider's role claim.
const (
	RoleAdmin = "admin"
	RoleFree  = "free"
	RolePaid  = "paid"
)

// Wallet limits. Hearts are clamped into [0, MaxHearts] silently; gems above
// MaxGems are rejected, not clamped. The asymmetry is intentional and existing
// clients depend on it.
const (
	MaxHearts = 5
	MaxGems   = 999999
)

// UserAccount is the locally cached copy of an identity-provider user plus the
// base currency wallet. Leaderboard totals add these balances to the sums over
// all of the user's per-language progress records.
type UserAccount struct {
	ID          int64      `db:"id" json:"id"`
	ClerkID     string     `db:"clerk_id" json:"clerk_id"`
	Username    string     `db:"username" json:"username"`
	Name        string     `db:"name" json:"name"`
	Country     string     `db:"country" json:"country"`
	Role        string     `db:"role" json:"role"`
	Xp          int64      `db:"xp" json:"xp"`
	Gems        int64      `db:"gems" json:"gems"`
	Gel         int64      `db:"gel" json:"gel"`
	Hearts      int64      `db:"hearts" json:"hearts"`
	Streak      int64      `db:"streak" json:"streak"`
	LastLoginAt *time.Time `db:"last_login_at" json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

func (u *UserAccount) IsAdmin() bool {
	return u.Role == RoleAdmin
}
