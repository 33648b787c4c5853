package service

import (
	"context"
	"errors"
	"time"

	"lingua_webapp/internal/domain"
	"lingua_webapp/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Discount percentages per rule, first match wins.
const (
	discountSaleTag          = 20
	discountFeaturedCurrency = 15
	discountLimitedEndgame   = 30
	discountLimitedLate      = 20
	discountLimitedDefault   = 10
	discountBundle           = 25
)

// ShopService projects priced shop views. The clock is injected so discount
// math is deterministic under test.
type ShopService struct {
	items    *repository.ShopRepository
	payments *repository.PaymentSettingsRepository
	now      func() time.Time
}

func NewShopService(db *pgxpool.Pool) *ShopService {
	return &ShopService{
		items:    repository.NewShopRepository(db),
		payments: repository.NewPaymentSettingsRepository(db),
		now:      time.Now,
	}
}

// Discount computes the item's discount percent at the given instant. The
// policy is priority-ordered, not cumulative: the sale tag beats everything,
// then featured currency items, then the limited-time tiers (steeper as the
// window runs out), then bundles.
func Discount(item *domain.ShopItem, now time.Time) int {
	if item.HasTag("sale") {
		return discountSaleTag
	}
	if item.Featured && item.Type == domain.ItemTypeCurrency {
		return discountFeaturedCurrency
	}
	if item.IsLimitedTime && item.StartDate != nil && item.EndDate != nil &&
		!now.Before(*item.StartDate) && !now.After(*item.EndDate) {
		window := item.EndDate.Sub(*item.StartDate)
		remaining := item.EndDate.Sub(now)
		if window > 0 {
			frac := float64(remaining) / float64(window)
			switch {
			case frac < 0.25:
				return discountLimitedEndgame
			case frac < 0.50:
				return discountLimitedLate
			default:
				return discountLimitedDefault
			}
		}
	}
	if item.Type == domain.ItemTypeBundle {
		return discountBundle
	}
	return 0
}

func priceWithDiscount(price int64, discount int) int64 {
	return price - price*int64(discount)/100
}

func (s *ShopService) priced(item *domain.ShopItem, now time.Time) domain.PricedShopItem {
	d := Discount(item, now)
	return domain.PricedShopItem{
		ShopItem:   *item,
		Discount:   d,
		FinalPrice: priceWithDiscount(item.Price, d),
	}
}

// ListItems returns every item with its current discount applied.
func (s *ShopService) ListItems(ctx context.Context) ([]domain.PricedShopItem, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	res := make([]domain.PricedShopItem, 0, len(items))
	for _, it := range items {
		res = append(res, s.priced(it, now))
	}
	return res, nil
}

// GetItem returns one priced item.
func (s *ShopService) GetItem(ctx context.Context, id int64) (*domain.PricedShopItem, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	p := s.priced(item, s.now())
	return &p, nil
}

// UpsertItem creates or updates a shop item (admin surface).
func (s *ShopService) UpsertItem(ctx context.Context, item *domain.ShopItem) error {
	err := s.items.Upsert(ctx, item)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrItemNotFound
	}
	return err
}

// CheckoutConfig echoes the enabled payment provider configuration. This
// service never talks to a payment gateway.
func (s *ShopService) CheckoutConfig(ctx context.Context) ([]*domain.PaymentProviderConfig, error) {
	return s.payments.ListEnabled(ctx)
}
