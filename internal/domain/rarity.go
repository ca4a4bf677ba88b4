package domain

import "strings"

// Rarity is the quality tier of an item. It decides which currency a trade
// settles in.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// NormalizeRarity lowercases and validates a rarity string, defaulting to
// common for unknown values so historical rows with odd casing still trade.
func NormalizeRarity(s string) Rarity {
	switch Rarity(strings.ToLower(s)) {
	case RarityUncommon:
		return RarityUncommon
	case RarityRare:
		return RarityRare
	case RarityEpic:
		return RarityEpic
	case RarityLegendary:
		return RarityLegendary
	default:
		return RarityCommon
	}
}
