package domain

import "time"

// ShopItemType values.
const (
	ItemTypeCurrency     = "currency"
	ItemTypeConsumable   = "consumable"
	ItemTypePermanent    = "permanent"
	ItemTypeSubscription = "subscription"
	ItemTypeBundle       = "bundle"
)

// ShopItem is a read-mostly priced item. Discounts are derived per request
// from tags, type and the limited-time window; they are never persisted.
type ShopItem struct {
	ID            int64      `db:"id" json:"id"`
	Name          string     `db:"name" json:"name"`
	Description   string     `db:"description" json:"description"`
	Price         int64      `db:"price" json:"price"`
	Type          string     `db:"item_type" json:"type"`
	Featured      bool       `db:"featured" json:"featured"`
	IsLimitedTime bool       `db:"is_limited_time" json:"is_limited_time"`
	StartDate     *time.Time `db:"start_date" json:"start_date,omitempty"`
	EndDate       *time.Time `db:"end_date" json:"end_date,omitempty"`
	Tags          []string   `db:"tags" json:"tags"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

func (i *ShopItem) HasTag(tag string) bool {
	for _, t := range i.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// PricedShopItem is the shop projection: an item with its current discount
// applied. FinalPrice = Price - Price*Discount/100, rounded down.
type PricedShopItem struct {
	ShopItem
	Discount   int   `json:"discount"`
	FinalPrice int64 `json:"final_price"`
}
