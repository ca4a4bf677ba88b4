package merchant

import (
	"context"
	"fmt"

	"github.com/wanderinggate/merchant-service/internal/domain"
	"github.com/wanderinggate/merchant-service/internal/logger"
)

// UpdateItemQuantity is the administrative stock adjustment. The item may be
// addressed by its canonical identifier or by a legacy display name; legacy
// names are reconciled through the classification table and, when no row
// exists under either identifier, a placeholder row is materialized so the
// adjustment has something to land on.
func (s *service) UpdateItemQuantity(ctx context.Context, merchantID int, itemID, userID string, quantity int, action domain.QuantityAction) (*QuantityResult, error) {
	log := logger.FromContext(ctx)
	log.Info("UpdateItemQuantity called", "merchantID", merchantID, "itemID", itemID,
		"userID", userID, "quantity", quantity, "action", action)

	if userID == "" {
		return nil, domain.ErrUserRequired
	}
	if !action.Valid() {
		return nil, fmt.Errorf("action %q: %w", action, domain.ErrInvalidAction)
	}
	if quantity < 0 && !(action == domain.ActionSet && quantity == domain.UnlimitedStock) {
		return nil, fmt.Errorf("quantity must be non-negative: %w", domain.ErrInvalidInput)
	}

	m, err := s.repo.GetMerchantByID(ctx, merchantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load merchant %d: %w", merchantID, err)
	}
	if m == nil {
		return nil, fmt.Errorf("merchant %d: %w", merchantID, domain.ErrMerchantNotFound)
	}

	ref, ok := domain.NormalizeItemRef(itemID)
	if !ok {
		return nil, fmt.Errorf("item identifier is required: %w", domain.ErrInvalidInput)
	}

	result := &QuantityResult{}
	entry, err := s.repo.GetEntry(ctx, merchantID, ref, userID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		// Legacy identifier path: map the raw value to a canonical id and
		// retry before materializing anything.
		legacyRef, itemType := domain.ClassifyLegacyItem(itemID, s.now())
		if legacyRef != ref {
			entry, err = s.repo.GetEntry(ctx, merchantID, legacyRef, userID)
			if err != nil {
				return nil, err
			}
		}
		if entry == nil {
			entry = &domain.InventoryEntry{
				MerchantID:  merchantID,
				ItemID:      legacyRef,
				UserID:      userID,
				ItemType:    itemType,
				Name:        itemID,
				Rarity:      domain.RarityCommon,
				Price:       fabricatedPrice,
				Quantity:    0,
				MaxQuantity: domain.DefaultMaxQuantity,
				RestockTime: s.now().Add(domain.RestockInterval),
			}
			if err := s.repo.CreateEntry(ctx, entry); err != nil {
				return nil, fmt.Errorf("failed to materialize inventory entry: %w", err)
			}
			result.Fabricated = true
			log.Warn("materialized inventory entry for unknown item",
				"merchantID", merchantID, "rawItemID", itemID, "itemID", legacyRef)
		}
	}

	newQuantity, err := applyQuantityAction(entry.Quantity, quantity, action)
	if err != nil {
		return nil, err
	}
	if newQuantity != entry.Quantity {
		if err := s.repo.SetEntryQuantity(ctx, entry.EntryID, newQuantity); err != nil {
			return nil, err
		}
		entry.Quantity = newQuantity
		s.cache.Invalidate(merchantID)
	}
	result.Entry = entry

	inventory, err := s.repo.GetInventoryEntries(ctx, merchantID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load merchant inventory: %w", err)
	}
	result.Inventory = inventory

	log.Info("quantity adjusted", "merchantID", merchantID, "itemID", entry.ItemID,
		"quantity", entry.Quantity, "fabricated", result.Fabricated)
	return result, nil
}

// applyQuantityAction computes the new stock level. Unlimited entries only
// respond to set; add and subtract on the sentinel are rejected rather than
// silently corrupting it.
func applyQuantityAction(current, quantity int, action domain.QuantityAction) (int, error) {
	if current == domain.UnlimitedStock && action != domain.ActionSet {
		return 0, fmt.Errorf("cannot %s on unlimited stock: %w", action, domain.ErrInvalidAction)
	}
	switch action {
	case domain.ActionSet:
		return quantity, nil
	case domain.ActionAdd:
		return current + quantity, nil
	case domain.ActionSubtract:
		next := current - quantity
		if next < 0 {
			next = 0
		}
		return next, nil
	}
	return 0, fmt.Errorf("action %q: %w", action, domain.ErrInvalidAction)
}
