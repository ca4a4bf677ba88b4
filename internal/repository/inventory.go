package repository

import (
	"context"

	"github.com/wanderinggate/merchant-service/internal/domain"
)

// Inventory defines the persistence interface for the player inventory
// store. It is deliberately transaction-agnostic: the trading engine treats
// these mutations as best-effort side calls (see the engine's Warnings).
type Inventory interface {
	GetItems(ctx context.Context, userID string) ([]domain.InventoryItem, error)
	GetItem(ctx context.Context, userID string, itemID domain.ItemRef) (*domain.InventoryItem, error)

	// UpsertItem adds quantity to an existing row or inserts a new one.
	UpsertItem(ctx context.Context, userID string, item domain.InventoryItem) error

	// RemoveQuantity decrements a row, deleting it at zero. Returns
	// domain.ErrNotOwned when the user holds fewer than quantity.
	RemoveQuantity(ctx context.Context, userID string, itemID domain.ItemRef, quantity int) error
}
