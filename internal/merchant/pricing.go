package merchant

import (
	"math"

	"github.com/wanderinggate/merchant-service/internal/domain"
)

// ReputationDiscount returns the discount earned by a reputation level, in
// whole percentage points. Levels below 50 earn nothing; from 50 on the
// discount is level/10, so the maximum at level 100 is 10%.
func ReputationDiscount(level int) int {
	level = domain.ClampReputation(level)
	if level < domain.ReputationDiscountThreshold {
		return 0
	}
	return level / 10
}

// AppliedDiscount picks the better of the merchant's default discount and
// the reputation discount for this user. Returned as a fraction in [0, 1).
func AppliedDiscount(defaultDiscount float64, level int) float64 {
	rep := float64(ReputationDiscount(level)) / 100
	if rep > defaultDiscount {
		return rep
	}
	return defaultDiscount
}

// FinalPrice is the total a buyer pays: basePrice * (1 - discount) *
// quantity, rounded down. The discount is converted to basis points and the
// rest is integer math, so floating point drift cannot move a price across
// a whole-copper boundary.
func FinalPrice(basePrice int, discount float64, quantity int) int {
	bps := int(math.Round(discount * 10000))
	return basePrice * quantity * (10000 - bps) / 10000
}

// DiscountedUnitPrice is FinalPrice for a single unit, used when rendering
// catalog views.
func DiscountedUnitPrice(basePrice int, discount float64) int {
	return FinalPrice(basePrice, discount, 1)
}

// SellPrice is what a merchant pays for goods: SellPriceRatio of the base
// price, rounded down on the total. Reputation never changes the sell side.
// Same basis-point trick as FinalPrice so the ratio stays integer-exact.
func SellPrice(basePrice, quantity int) int {
	bps := int(math.Round(domain.SellPriceRatio * 10000))
	return basePrice * quantity * bps / 10000
}

// TradeReputationDelta converts a trade's total value into reputation
// gained: one point per 100 currency units, truncated. Small trades earn
// nothing.
func TradeReputationDelta(finalPrice int) int {
	return finalPrice / 100
}
