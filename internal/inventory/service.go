package inventory

import (
	"context"
	"fmt"

	"github.com/wanderinggate/merchant-service/internal/domain"
	"github.com/wanderinggate/merchant-service/internal/logger"
	"github.com/wanderinggate/merchant-service/internal/repository"
)

// Service defines player inventory operations
type Service interface {
	GetItems(ctx context.Context, userID string) ([]domain.InventoryItem, error)
	GetItem(ctx context.Context, userID string, itemID domain.ItemRef) (*domain.InventoryItem, error)
	AddItem(ctx context.Context, userID string, item domain.InventoryItem) error
	RemoveItem(ctx context.Context, userID string, itemID domain.ItemRef, quantity int) error

	// GetQuantity returns the owned quantity, zero when the item is absent.
	GetQuantity(ctx context.Context, userID string, itemID domain.ItemRef) (int, error)
}

type service struct {
	repo repository.Inventory
}

// NewService creates a new inventory service
func NewService(repo repository.Inventory) Service {
	return &service{repo: repo}
}

func (s *service) GetItems(ctx context.Context, userID string) ([]domain.InventoryItem, error) {
	if userID == "" {
		return nil, domain.ErrUserRequired
	}
	return s.repo.GetItems(ctx, userID)
}

func (s *service) GetItem(ctx context.Context, userID string, itemID domain.ItemRef) (*domain.InventoryItem, error) {
	if userID == "" {
		return nil, domain.ErrUserRequired
	}
	return s.repo.GetItem(ctx, userID, itemID)
}

func (s *service) AddItem(ctx context.Context, userID string, item domain.InventoryItem) error {
	if userID == "" {
		return domain.ErrUserRequired
	}
	if item.ItemID == "" {
		return fmt.Errorf("item identifier is required: %w", domain.ErrInvalidInput)
	}
	if item.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive: %w", domain.ErrInvalidInput)
	}

	if err := s.repo.UpsertItem(ctx, userID, item); err != nil {
		return err
	}
	logger.FromContext(ctx).Debug("inventory credited",
		"userID", userID, "itemID", item.ItemID, "quantity", item.Quantity)
	return nil
}

func (s *service) RemoveItem(ctx context.Context, userID string, itemID domain.ItemRef, quantity int) error {
	if userID == "" {
		return domain.ErrUserRequired
	}
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive: %w", domain.ErrInvalidInput)
	}
	return s.repo.RemoveQuantity(ctx, userID, itemID, quantity)
}

func (s *service) GetQuantity(ctx context.Context, userID string, itemID domain.ItemRef) (int, error) {
	item, err := s.GetItem(ctx, userID, itemID)
	if err != nil {
		return 0, err
	}
	if item == nil {
		return 0, nil
	}
	return item.Quantity, nil
}
