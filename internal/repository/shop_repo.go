package repository

import (
	"context"

	"lingua_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ShopRepository struct {
	db *pgxpool.Pool
}

func NewShopRepository(db *pgxpool.Pool) *ShopRepository {
	return &ShopRepository{db: db}
}

const shopColumns = `id, name, description, price, item_type, featured, is_limited_time, start_date, end_date, tags, created_at`

func scanShopItem(row pgx.Row) (*domain.ShopItem, error) {
	var it domain.ShopItem
	if err := row.Scan(
		&it.ID, &it.Name, &it.Description, &it.Price, &it.Type,
		&it.Featured, &it.IsLimitedTime, &it.StartDate, &it.EndDate,
		&it.Tags, &it.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *ShopRepository) List(ctx context.Context) ([]*domain.ShopItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+shopColumns+` FROM shop_items ORDER BY featured DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.ShopItem
	for rows.Next() {
		it, err := scanShopItem(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, it)
	}
	return res, rows.Err()
}

func (r *ShopRepository) GetByID(ctx context.Context, id int64) (*domain.ShopItem, error) {
	row := r.db.QueryRow(ctx, `SELECT `+shopColumns+` FROM shop_items WHERE id = $1`, id)
	return scanShopItem(row)
}

// Upsert creates or updates a shop item (admin surface).
func (r *ShopRepository) Upsert(ctx context.Context, it *domain.ShopItem) error {
	if it.Tags == nil {
		it.Tags = []string{}
	}
	if it.ID == 0 {
		return r.db.QueryRow(ctx,
			`INSERT INTO shop_items (name, description, price, item_type, featured, is_limited_time, start_date, end_date, tags)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 RETURNING id, created_at`,
			it.Name, it.Description, it.Price, it.Type, it.Featured,
			it.IsLimitedTime, it.StartDate, it.EndDate, it.Tags,
		).Scan(&it.ID, &it.CreatedAt)
	}

	return r.db.QueryRow(ctx,
		`UPDATE shop_items
		 SET name = $1, description = $2, price = $3, item_type = $4, featured = $5,
		     is_limited_time = $6, start_date = $7, end_date = $8, tags = $9
		 WHERE id = $10
		 RETURNING created_at`,
		it.Name, it.Description, it.Price, it.Type, it.Featured,
		it.IsLimitedTime, it.StartDate, it.EndDate, it.Tags, it.ID,
	).Scan(&it.CreatedAt)
}
