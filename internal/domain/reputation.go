package domain

// Reputation bounds. Levels are always clamped into [ReputationMin,
// ReputationMax] before persisting.
const (
	ReputationMin = 0
	ReputationMax = 100

	// ReputationDiscountThreshold is the level at which a merchant starts
	// extending reputation pricing.
	ReputationDiscountThreshold = 50
)

// Reputation is a (merchant, user) affinity score driving discount
// eligibility. Created on the first delta, never deleted.
type Reputation struct {
	MerchantID int    `json:"merchant_id"`
	UserID     string `json:"user_id"`
	Level      int    `json:"level"`
}

// ClampReputation bounds a level into the valid range.
func ClampReputation(level int) int {
	if level < ReputationMin {
		return ReputationMin
	}
	if level > ReputationMax {
		return ReputationMax
	}
	return level
}
