package merchant

import (
	"context"
	"fmt"
	"time"

	"github.com/wanderinggate/merchant-service/internal/domain"
	"github.com/wanderinggate/merchant-service/internal/repository"
)

// InventoryStore is the player-inventory collaborator. Trades credit and
// debit it outside the merchant transaction; failures there surface as
// warnings, not rollbacks.
type InventoryStore interface {
	AddItem(ctx context.Context, userID string, item domain.InventoryItem) error
	RemoveItem(ctx context.Context, userID string, itemID domain.ItemRef, quantity int) error
	GetQuantity(ctx context.Context, userID string, itemID domain.ItemRef) (int, error)
}

// Service defines merchant catalog and trading operations
type Service interface {
	GetAllMerchants(ctx context.Context, userID string) ([]domain.MerchantView, error)
	GetMerchantByID(ctx context.Context, merchantID int, userID string) (*domain.MerchantView, error)
	GetMerchantsByType(ctx context.Context, merchantType, userID string) ([]domain.MerchantView, error)
	GetMerchantsByLocation(ctx context.Context, location, userID string) ([]domain.MerchantView, error)
	GetMerchantInventory(ctx context.Context, merchantID int, userID string) ([]domain.EntryView, error)

	CreateMerchant(ctx context.Context, m *domain.Merchant) error
	UpdateMerchant(ctx context.Context, m domain.Merchant) error

	BuyItem(ctx context.Context, merchantID int, itemID domain.ItemRef, userID string, quantity int) (*TradeResult, error)
	SellItem(ctx context.Context, merchantID int, itemData map[string]any, userID string, quantity int) (*TradeResult, error)
	RestockMerchant(ctx context.Context, merchantID int, userID string) (*RestockResult, error)
	UpdateItemQuantity(ctx context.Context, merchantID int, itemID, userID string, quantity int, action domain.QuantityAction) (*QuantityResult, error)
}

// TradeResult reports a completed buy or sell. Warnings carry best-effort
// steps that failed after the trade itself committed.
type TradeResult struct {
	Entry           *domain.InventoryEntry `json:"entry,omitempty"`
	ItemID          domain.ItemRef         `json:"item_id"`
	ItemName        string                 `json:"item_name"`
	Quantity        int                    `json:"quantity"`
	UnitPrice       int                    `json:"unit_price"`
	TotalPrice      int                    `json:"total_price"`
	Currency        domain.Currency        `json:"currency"`
	Discount        float64                `json:"discount"`
	ReputationLevel *int                   `json:"reputation_level,omitempty"`
	Warnings        []string               `json:"warnings,omitempty"`
}

// RestockResult reports which entries came back in stock.
type RestockResult struct {
	MerchantID int  `json:"merchant_id"`
	Restocked  int  `json:"restocked"`
	Checked    int  `json:"checked"`
	Performed  bool `json:"performed"`
}

// QuantityResult reports an administrative stock adjustment along with the
// merchant's full per-user inventory after the change.
type QuantityResult struct {
	Entry      *domain.InventoryEntry  `json:"entry"`
	Fabricated bool                    `json:"fabricated"`
	Inventory  []domain.InventoryEntry `json:"inventory"`
}

type service struct {
	repo     repository.Merchant
	profiles repository.Profile
	inv      InventoryStore
	cache    *Cache
	now      func() time.Time
}

// NewService creates a new merchant service
func NewService(repo repository.Merchant, profiles repository.Profile, inv InventoryStore, cache *Cache) Service {
	return &service{
		repo:     repo,
		profiles: profiles,
		inv:      inv,
		cache:    cache,
		now:      time.Now,
	}
}

// CreateMerchant validates and persists a new merchant.
func (s *service) CreateMerchant(ctx context.Context, m *domain.Merchant) error {
	if m.Name == "" {
		return fmt.Errorf("merchant name is required: %w", domain.ErrInvalidInput)
	}
	if m.DefaultDiscount < 0 || m.DefaultDiscount >= 1 {
		return fmt.Errorf("default discount must be in [0, 1): %w", domain.ErrInvalidInput)
	}
	return s.repo.CreateMerchant(ctx, m)
}

// UpdateMerchant persists merchant profile changes and drops the stale
// cached view.
func (s *service) UpdateMerchant(ctx context.Context, m domain.Merchant) error {
	if m.DefaultDiscount < 0 || m.DefaultDiscount >= 1 {
		return fmt.Errorf("default discount must be in [0, 1): %w", domain.ErrInvalidInput)
	}
	if err := s.repo.UpdateMerchant(ctx, m); err != nil {
		return err
	}
	s.cache.Invalidate(m.ID)
	return nil
}

func validateTradeQuantity(quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive: %w", domain.ErrInvalidInput)
	}
	if quantity > domain.MaxTransactionQuantity {
		return fmt.Errorf("quantity exceeds limit of %d: %w", domain.MaxTransactionQuantity, domain.ErrInvalidInput)
	}
	return nil
}
