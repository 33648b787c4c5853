package repository

import (
	"context"
	"time"

	"lingua_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, clerk_id, username, name, country, role, xp, gems, gel, hearts, streak, last_login_at, created_at`

func scanUser(row pgx.Row) (*domain.UserAccount, error) {
	var u domain.UserAccount
	if err := row.Scan(
		&u.ID,
		&u.ClerkID,
		&u.Username,
		&u.Name,
		&u.Country,
		&u.Role,
		&u.Xp,
		&u.Gems,
		&u.Gel,
		&u.Hearts,
		&u.Streak,
		&u.LastLoginAt,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.UserAccount, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByClerkID(ctx context.Context, clerkID string) (*domain.UserAccount, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE clerk_id = $1`, clerkID)
	return scanUser(row)
}

// Upsert creates or refreshes the cached identity row. The wallet columns are
// untouched on conflict, so re-delivered user.created webhooks are harmless.
func (r *UserRepository) Upsert(ctx context.Context, u *domain.UserAccount) error {
	if u.Role == "" {
		u.Role = domain.RoleFree
	}
	return r.db.QueryRow(ctx,
		`INSERT INTO users (clerk_id, username, name, country, role)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (clerk_id) DO UPDATE
		 SET username = EXCLUDED.username,
		     name = EXCLUDED.name,
		     country = EXCLUDED.country,
		     role = EXCLUDED.role
		 RETURNING `+userColumns,
		u.ClerkID, u.Username, u.Name, u.Country, u.Role,
	).Scan(
		&u.ID, &u.ClerkID, &u.Username, &u.Name, &u.Country, &u.Role,
		&u.Xp, &u.Gems, &u.Gel, &u.Hearts, &u.Streak, &u.LastLoginAt, &u.CreatedAt,
	)
}

// ListCreatedSince returns users whose account was created at or after the
// cutoff, newest first. The leaderboard applies the rest of its pipeline on
// top of this set.
func (r *UserRepository) ListCreatedSince(ctx context.Context, since time.Time) ([]*domain.UserAccount, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE created_at >= $1 ORDER BY created_at DESC`,
		since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.UserAccount
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, u)
	}
	return res, rows.Err()
}

// AdjustGemsTx applies a signed gem delta as a single conditional update.
// The WHERE clause enforces both the zero floor and the gem ceiling, so a
// violating delta matches no row and the balance is left untouched.
func (r *UserRepository) AdjustGemsTx(ctx context.Context, tx pgx.Tx, userID, delta int64) (int64, error) {
	var newBalance int64
	err := tx.QueryRow(ctx,
		`UPDATE users SET gems = gems + $1
		 WHERE id = $2 AND gems + $1 >= 0 AND gems + $1 <= $3
		 RETURNING gems`,
		delta, userID, int64(domain.MaxGems),
	).Scan(&newBalance)
	return newBalance, err
}

// GetHeartsForUpdate locks the wallet row and returns the current hearts.
func (r *UserRepository) GetHeartsForUpdate(ctx context.Context, tx pgx.Tx, userID int64) (int64, error) {
	var hearts int64
	err := tx.QueryRow(ctx, `SELECT hearts FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&hearts)
	return hearts, err
}

func (r *UserRepository) SetHeartsTx(ctx context.Context, tx pgx.Tx, userID, hearts int64) error {
	_, err := tx.Exec(ctx, `UPDATE users SET hearts = $1 WHERE id = $2`, hearts, userID)
	return err
}

func (r *UserRepository) Exists(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists)
	return exists, err
}

// RecordLogin stamps last_login_at and stores the recomputed streak.
func (r *UserRepository) RecordLogin(ctx context.Context, userID int64, at time.Time, streak int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET last_login_at = $1, streak = $2 WHERE id = $3`,
		at, streak, userID,
	)
	return err
}

// Delete removes the user. Progress ledgers, currency events and the cascade
// behind them go with the row via foreign keys; audit logs are kept.
func (r *UserRepository) Delete(ctx context.Context, userID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
