package domain

import "time"

// Profile is a user's character profile: display name plus the currency
// wallet the trading engine debits and credits.
type Profile struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Wallet    Wallet    `json:"wallet"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InventoryItem is an item owned by a user in the player inventory store.
type InventoryItem struct {
	ItemID      ItemRef `json:"item_id"`
	Name        string  `json:"name"`
	ItemType    string  `json:"item_type"`
	Rarity      Rarity  `json:"rarity"`
	Quantity    int     `json:"quantity"`
	Equipped    bool    `json:"equipped"`
	Description string  `json:"description"`
}
