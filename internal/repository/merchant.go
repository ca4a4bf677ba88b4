package repository

import (
	"context"
	"time"

	"github.com/wanderinggate/merchant-service/internal/domain"
)

// Merchant defines the persistence interface for the merchant catalog and
// per-user merchant inventory.
type Merchant interface {
	GetMerchants(ctx context.Context) ([]domain.Merchant, error)
	GetMerchantByID(ctx context.Context, id int) (*domain.Merchant, error)
	GetMerchantsByType(ctx context.Context, specialization string) ([]domain.Merchant, error)
	GetMerchantsByLocation(ctx context.Context, location string) ([]domain.Merchant, error)
	CreateMerchant(ctx context.Context, m *domain.Merchant) error
	UpdateMerchant(ctx context.Context, m domain.Merchant) error

	// GetInventoryEntries returns a merchant's per-user inventory. An empty
	// userID yields no entries; inventory is materialized per user.
	GetInventoryEntries(ctx context.Context, merchantID int, userID string) ([]domain.InventoryEntry, error)
	GetEntry(ctx context.Context, merchantID int, itemID domain.ItemRef, userID string) (*domain.InventoryEntry, error)
	CreateEntry(ctx context.Context, e *domain.InventoryEntry) error
	SetEntryQuantity(ctx context.Context, entryID, quantity int) error

	// RestockEntry resets one entry's quantity and restock time. Restock is
	// idempotent per row and deliberately not transactional across rows.
	RestockEntry(ctx context.Context, entryID, quantity int, restockTime time.Time) error

	BeginTrade(ctx context.Context) (TradeTx, error)
}

// TradeTx is the transaction handle for a buy or sell. Every read feeding a
// write decision (stock, balance, reputation) happens through it so
// concurrent buyers of the last unit cannot both succeed.
type TradeTx interface {
	Tx

	GetMerchant(ctx context.Context, id int) (*domain.Merchant, error)

	// GetEntryForUpdate row-locks the (merchant, item, user) entry.
	GetEntryForUpdate(ctx context.Context, merchantID int, itemID domain.ItemRef, userID string) (*domain.InventoryEntry, error)

	// FindEntryByItemForUpdate locates any merchant's per-user entry for the
	// item, row-locked. Sell-side uses it: sales are credited to whichever
	// merchant already offers the item to this user.
	FindEntryByItemForUpdate(ctx context.Context, itemID domain.ItemRef, userID string) (*domain.InventoryEntry, error)

	SetEntryQuantity(ctx context.Context, entryID, quantity int) error
	DeleteEntry(ctx context.Context, entryID int) error

	// GetReputation reads the (merchant, user) reputation level inside the
	// transaction; nil when no relationship exists yet.
	GetReputation(ctx context.Context, merchantID int, userID string) (*domain.Reputation, error)

	// GetWalletForUpdate row-locks the user's currency balances.
	GetWalletForUpdate(ctx context.Context, userID string) (*domain.Wallet, error)

	// AdjustCurrency applies a signed delta to one currency bucket.
	AdjustCurrency(ctx context.Context, userID string, c domain.Currency, delta int) error

	// ApplyReputationDelta adds a clamped delta to the (merchant, user)
	// reputation row, creating it on first contact. Implementations contain
	// the statement in a savepoint: a failure is reported to the caller but
	// never poisons the enclosing trade transaction.
	ApplyReputationDelta(ctx context.Context, merchantID int, userID string, delta int) (int, error)
}
