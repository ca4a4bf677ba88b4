package domain

// Currency names one of the four independent wallet buckets.
type Currency string

const (
	CurrencyCopper       Currency = "copper"
	CurrencySilver       Currency = "silver"
	CurrencyGold         Currency = "gold"
	CurrencySpiritStones Currency = "spirit_stones"
)

// CurrencyForRarity maps an item's rarity to the currency its trades settle
// in: legendary items cost spirit stones, epic gold, rare silver, everything
// else copper.
func CurrencyForRarity(r Rarity) Currency {
	switch r {
	case RarityLegendary:
		return CurrencySpiritStones
	case RarityEpic:
		return CurrencyGold
	case RarityRare:
		return CurrencySilver
	default:
		return CurrencyCopper
	}
}

// Wallet holds a user's currency balances. Balances never go negative; the
// ledger enforces that with database checks and the engine verifies before
// debiting.
type Wallet struct {
	UserID       string `json:"user_id"`
	Copper       int    `json:"copper"`
	Silver       int    `json:"silver"`
	Gold         int    `json:"gold"`
	SpiritStones int    `json:"spirit_stones"`
}

// Balance returns the amount held in the given bucket.
func (w Wallet) Balance(c Currency) int {
	switch c {
	case CurrencyCopper:
		return w.Copper
	case CurrencySilver:
		return w.Silver
	case CurrencyGold:
		return w.Gold
	case CurrencySpiritStones:
		return w.SpiritStones
	default:
		return 0
	}
}
