package service

import (
	"testing"
	"time"

	"lingua_webapp/internal/domain"
)

func TestDiscount(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(100 * time.Hour)

	limited := func(typ string) *domain.ShopItem {
		return &domain.ShopItem{
			Type:          typ,
			IsLimitedTime: true,
			StartDate:     &start,
			EndDate:       &end,
		}
	}

	tests := []struct {
		name string
		item *domain.ShopItem
		now  time.Time
		want int
	}{
		{
			name: "sale tag wins",
			item: &domain.ShopItem{Type: domain.ItemTypePermanent, Tags: []string{"sale"}},
			now:  start,
			want: 20,
		},
		{
			name: "sale tag beats featured currency",
			item: &domain.ShopItem{Type: domain.ItemTypeCurrency, Featured: true, Tags: []string{"sale"}},
			now:  start,
			want: 20,
		},
		{
			name: "featured currency",
			item: &domain.ShopItem{Type: domain.ItemTypeCurrency, Featured: true},
			now:  start,
			want: 15,
		},
		{
			name: "featured non-currency gets nothing",
			item: &domain.ShopItem{Type: domain.ItemTypePermanent, Featured: true},
			now:  start,
			want: 0,
		},
		{
			// 90% of the window remaining
			name: "limited early window",
			item: limited(domain.ItemTypeConsumable),
			now:  start.Add(10 * time.Hour),
			want: 10,
		},
		{
			// 40% remaining
			name: "limited past half",
			item: limited(domain.ItemTypeConsumable),
			now:  start.Add(60 * time.Hour),
			want: 20,
		},
		{
			// 20% remaining
			name: "limited endgame",
			item: limited(domain.ItemTypeConsumable),
			now:  start.Add(80 * time.Hour),
			want: 30,
		},
		{
			name: "limited window expired",
			item: limited(domain.ItemTypeConsumable),
			now:  end.Add(time.Hour),
			want: 0,
		},
		{
			name: "limited window not started",
			item: limited(domain.ItemTypeConsumable),
			now:  start.Add(-time.Hour),
			want: 0,
		},
		{
			// an in-window limited bundle takes the limited tier
			name: "limited beats bundle",
			item: limited(domain.ItemTypeBundle),
			now:  start.Add(10 * time.Hour),
			want: 10,
		},
		{
			// outside the window it falls through to the bundle rate
			name: "expired limited bundle",
			item: limited(domain.ItemTypeBundle),
			now:  end.Add(time.Hour),
			want: 25,
		},
		{
			name: "bundle",
			item: &domain.ShopItem{Type: domain.ItemTypeBundle},
			now:  start,
			want: 25,
		},
		{
			name: "plain item",
			item: &domain.ShopItem{Type: domain.ItemTypeConsumable},
			now:  start,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Discount(tt.item, tt.now); got != tt.want {
				t.Errorf("Discount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPriceWithDiscount(t *testing.T) {
	tests := []struct {
		price    int64
		discount int
		want     int64
	}{
		{1000, 0, 1000},
		{1000, 20, 800},
		{1000, 15, 850},
		{999, 30, 700}, // rounds in the buyer's favor
		{1, 30, 1},
		{0, 25, 0},
	}
	for _, tt := range tests {
		if got := priceWithDiscount(tt.price, tt.discount); got != tt.want {
			t.Errorf("priceWithDiscount(%d, %d) = %d, want %d", tt.price, tt.discount, got, tt.want)
		}
	}
}
