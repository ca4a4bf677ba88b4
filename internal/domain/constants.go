package domain

import "time"

// Trade limits and restock behavior.
const (
	// MaxTransactionQuantity bounds a single buy or sell request.
	MaxTransactionQuantity = 1000

	// DefaultMaxQuantity is the restock target for entries with no
	// max_quantity recorded.
	DefaultMaxQuantity = 10

	// RestockInterval is how far restock_time advances on each restock.
	RestockInterval = 24 * time.Hour

	// SellPriceRatio is the fraction of the listed price paid out when a
	// user sells an item back. Reputation never changes it.
	SellPriceRatio = 0.5
)

// QuantityAction is an administrative stock adjustment mode.
type QuantityAction string

const (
	ActionSet      QuantityAction = "set"
	ActionAdd      QuantityAction = "add"
	ActionSubtract QuantityAction = "subtract"
)

// Valid reports whether the action is one of set/add/subtract.
func (a QuantityAction) Valid() bool {
	switch a {
	case ActionSet, ActionAdd, ActionSubtract:
		return true
	}
	return false
}
