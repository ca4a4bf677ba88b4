package merchant

import (
	"context"
	"fmt"

	"github.com/wanderinggate/merchant-service/internal/domain"
	"github.com/wanderinggate/merchant-service/internal/logger"
	"github.com/wanderinggate/merchant-service/internal/metrics"
	"github.com/wanderinggate/merchant-service/internal/repository"
)

// BuyItem purchases quantity units of an item from a merchant. Stock check,
// pricing, payment and stock decrement happen in one transaction with the
// entry and wallet rows locked, so two buyers cannot both take the last
// unit. Reputation gain and the inventory credit are best-effort: their
// failures surface as warnings on the result, never as a rolled-back trade.
func (s *service) BuyItem(ctx context.Context, merchantID int, itemID domain.ItemRef, userID string, quantity int) (*TradeResult, error) {
	log := logger.FromContext(ctx)
	log.Info("BuyItem called", "merchantID", merchantID, "itemID", itemID, "userID", userID, "quantity", quantity)

	if userID == "" {
		return nil, domain.ErrUserRequired
	}
	if itemID == "" {
		return nil, fmt.Errorf("item identifier is required: %w", domain.ErrInvalidInput)
	}
	if err := validateTradeQuantity(quantity); err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTrade(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin trade: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	m, err := tx.GetMerchant(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("merchant %d: %w", merchantID, domain.ErrMerchantNotFound)
	}

	entry, err := tx.GetEntryForUpdate(ctx, merchantID, itemID, userID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, fmt.Errorf("item %s at merchant %d: %w", itemID, merchantID, domain.ErrItemNotFound)
	}
	if !entry.Unlimited() && entry.Quantity < quantity {
		return nil, fmt.Errorf("requested %d, %d in stock: %w", quantity, entry.Quantity, domain.ErrInsufficientStock)
	}

	level := 0
	rep, err := tx.GetReputation(ctx, merchantID, userID)
	if err != nil {
		return nil, err
	}
	if rep != nil {
		level = rep.Level
	}

	discount := AppliedDiscount(m.DefaultDiscount, level)
	total := FinalPrice(entry.Price, discount, quantity)
	currency := domain.CurrencyForRarity(entry.Rarity)

	wallet, err := tx.GetWalletForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return nil, fmt.Errorf("no character profile for user %s: %w", userID, domain.ErrInsufficientFunds)
	}
	if wallet.Balance(currency) < total {
		return nil, fmt.Errorf("need %d %s, have %d: %w", total, currency, wallet.Balance(currency), domain.ErrInsufficientFunds)
	}

	if err := tx.AdjustCurrency(ctx, userID, currency, -total); err != nil {
		return nil, err
	}

	if !entry.Unlimited() {
		remaining := entry.Quantity - quantity
		if remaining == 0 {
			if err := tx.DeleteEntry(ctx, entry.EntryID); err != nil {
				return nil, err
			}
		} else {
			if err := tx.SetEntryQuantity(ctx, entry.EntryID, remaining); err != nil {
				return nil, err
			}
		}
		entry.Quantity = remaining
	}

	result := &TradeResult{
		Entry:      entry,
		ItemID:     entry.ItemID,
		ItemName:   entry.Name,
		Quantity:   quantity,
		UnitPrice:  DiscountedUnitPrice(entry.Price, discount),
		TotalPrice: total,
		Currency:   currency,
		Discount:   discount,
	}

	if delta := TradeReputationDelta(total); delta > 0 {
		newLevel, err := tx.ApplyReputationDelta(ctx, merchantID, userID, delta)
		if err != nil {
			log.Warn("reputation update failed", "merchantID", merchantID, "userID", userID, "error", err)
			result.Warnings = append(result.Warnings, WarnReputationNotUpdated)
		} else {
			result.ReputationLevel = &newLevel
			metrics.ReputationGained.Add(float64(delta))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit trade: %w", err)
	}
	s.cache.Invalidate(merchantID)

	// The player inventory is a separate store; a failure here leaves the
	// committed trade standing and is reported as a warning.
	item := domain.InventoryItem{
		ItemID:      entry.ItemID,
		Name:        entry.Name,
		ItemType:    entry.ItemType,
		Rarity:      entry.Rarity,
		Quantity:    quantity,
		Description: entry.Description,
	}
	if err := s.inv.AddItem(ctx, userID, item); err != nil {
		log.Error("inventory credit failed after purchase", "userID", userID, "itemID", entry.ItemID, "error", err)
		result.Warnings = append(result.Warnings, WarnInventoryAddFailed)
	}

	metrics.ItemsBought.WithLabelValues(entry.ItemID.String()).Add(float64(quantity))
	metrics.CurrencySpent.WithLabelValues(string(currency)).Add(float64(total))

	log.Info("purchase complete", "merchantID", merchantID, "itemID", entry.ItemID,
		"quantity", quantity, "total", total, "currency", currency)
	return result, nil
}
