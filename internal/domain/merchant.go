package domain

import "time"

// Merchant is a static NPC trading entity. Read-mostly after creation;
// per-user stock lives in InventoryEntry rows, not here.
type Merchant struct {
	ID              int       `json:"merchant_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Location        string    `json:"location"`
	Specialization  string    `json:"specialization"`
	ImageURL        string    `json:"image_url"`
	DefaultDiscount float64   `json:"default_discount"` // 0..1 fraction
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// UnlimitedStock is the sentinel quantity for entries that are never depleted.
const UnlimitedStock = -1

// InventoryEntry is one merchant's offer of one item to one user.
// Identity is the (merchant, item, user) triple; quantity UnlimitedStock
// means purchases never decrement it.
type InventoryEntry struct {
	EntryID     int       `json:"entry_id"`
	MerchantID  int       `json:"merchant_id"`
	ItemID      ItemRef   `json:"item_id"`
	UserID      string    `json:"user_id"`
	ItemType    string    `json:"item_type"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Rarity      Rarity    `json:"rarity"`
	Price       int       `json:"price"` // base price, pre-discount
	Quantity    int       `json:"quantity"`
	MaxQuantity int       `json:"max_quantity"`
	RestockTime time.Time `json:"restock_time"`
}

// Unlimited reports whether the entry uses the unlimited-stock sentinel.
func (e InventoryEntry) Unlimited() bool {
	return e.Quantity == UnlimitedStock
}

// RestockDue reports whether the entry is eligible for restock at now.
func (e InventoryEntry) RestockDue(now time.Time) bool {
	return !now.Before(e.RestockTime)
}

// MerchantView is the formatted merchant returned by the catalog accessor:
// base fields plus the applied discount, the viewer's reputation (nil when
// no relationship exists) and the viewer's inventory listing.
type MerchantView struct {
	Merchant
	Discount   float64     `json:"discount"`
	Reputation *int        `json:"reputation"`
	Inventory  []EntryView `json:"inventory"`
}

// EntryView is an inventory item as presented to a viewer, with the
// discounted price alongside the base price.
type EntryView struct {
	ItemID      ItemRef `json:"item_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ItemType    string  `json:"item_type"`
	Rarity      Rarity  `json:"rarity"`
	BasePrice   int     `json:"base_price"`
	Price       int     `json:"price"` // discounted unit price
	Discount    float64 `json:"discount"`
	Quantity    int     `json:"quantity"`
}
