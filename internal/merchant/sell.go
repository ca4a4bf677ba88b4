package merchant

import (
	"context"
	"fmt"

	"github.com/wanderinggate/merchant-service/internal/domain"
	"github.com/wanderinggate/merchant-service/internal/logger"
	"github.com/wanderinggate/merchant-service/internal/metrics"
	"github.com/wanderinggate/merchant-service/internal/repository"
)

// sellOffer is the caller-supplied description of the item being sold,
// decoded from the loosely-typed itemData payload.
type sellOffer struct {
	Ref    domain.ItemRef
	Name   string
	Price  int
	Rarity domain.Rarity
}

// parseSellOffer extracts the identifier, display name, base price and
// rarity from an itemData payload. Identifier and a positive price are
// required; rarity defaults to common.
func parseSellOffer(itemData map[string]any) (sellOffer, error) {
	var o sellOffer

	ref, ok := domain.ItemRefFromPayload(itemData)
	if !ok {
		return o, fmt.Errorf("item identifier is required: %w", domain.ErrInvalidInput)
	}
	o.Ref = ref

	for _, key := range []string{"name", "itemName", "item_name"} {
		if v, ok := itemData[key].(string); ok && v != "" {
			o.Name = v
			break
		}
	}
	if o.Name == "" {
		o.Name = ref.String()
	}

	for _, key := range []string{"price", "basePrice", "base_price"} {
		switch v := itemData[key].(type) {
		case float64:
			o.Price = int(v)
		case int:
			o.Price = v
		}
		if o.Price > 0 {
			break
		}
	}
	if o.Price <= 0 {
		return o, fmt.Errorf("item price is required: %w", domain.ErrInvalidInput)
	}

	rarity, _ := itemData["rarity"].(string)
	o.Rarity = domain.NormalizeRarity(rarity)
	return o, nil
}

// SellItem sells quantity units of an owned item to a merchant for half the
// base price, reputation-independent. The item is matched against merchant
// stock by item identifier across all merchants; when a row matches, its
// stock is replenished and that merchant receives the reputation gain.
// When nothing matches the sale still pays out, with a warning, and the
// addressed merchant takes the reputation.
func (s *service) SellItem(ctx context.Context, merchantID int, itemData map[string]any, userID string, quantity int) (*TradeResult, error) {
	log := logger.FromContext(ctx)
	log.Info("SellItem called", "merchantID", merchantID, "userID", userID, "quantity", quantity)

	if userID == "" {
		return nil, domain.ErrUserRequired
	}
	if err := validateTradeQuantity(quantity); err != nil {
		return nil, err
	}

	offer, err := parseSellOffer(itemData)
	if err != nil {
		return nil, err
	}

	owned, err := s.inv.GetQuantity(ctx, userID, offer.Ref)
	if err != nil {
		return nil, err
	}
	if owned < quantity {
		return nil, fmt.Errorf("selling %d, own %d of %s: %w", quantity, owned, offer.Ref, domain.ErrNotOwned)
	}

	total := SellPrice(offer.Price, quantity)
	currency := domain.CurrencyForRarity(offer.Rarity)

	// Debit the player inventory first; a failure here aborts the sale
	// before any merchant-side mutation.
	if err := s.inv.RemoveItem(ctx, userID, offer.Ref, quantity); err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTrade(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin trade: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	result := &TradeResult{
		ItemID:     offer.Ref,
		ItemName:   offer.Name,
		Quantity:   quantity,
		UnitPrice:  SellPrice(offer.Price, 1),
		TotalPrice: total,
		Currency:   currency,
	}

	repMerchant := merchantID
	entry, err := tx.FindEntryByItemForUpdate(ctx, offer.Ref, userID)
	if err != nil {
		return nil, err
	}
	if entry != nil {
		repMerchant = entry.MerchantID
		if !entry.Unlimited() {
			if err := tx.SetEntryQuantity(ctx, entry.EntryID, entry.Quantity+quantity); err != nil {
				return nil, err
			}
			entry.Quantity += quantity
		}
		result.Entry = entry
	} else {
		log.Warn("no merchant stock row matched sold item", "itemID", offer.Ref, "userID", userID)
		result.Warnings = append(result.Warnings, WarnNoMerchantStock)
	}

	wallet, err := tx.GetWalletForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return nil, fmt.Errorf("no character profile for user %s: %w", userID, domain.ErrInvalidInput)
	}
	if err := tx.AdjustCurrency(ctx, userID, currency, total); err != nil {
		return nil, err
	}

	if delta := TradeReputationDelta(total); delta > 0 {
		newLevel, err := tx.ApplyReputationDelta(ctx, repMerchant, userID, delta)
		if err != nil {
			log.Warn("reputation update failed", "merchantID", repMerchant, "userID", userID, "error", err)
			result.Warnings = append(result.Warnings, WarnReputationNotUpdated)
		} else {
			result.ReputationLevel = &newLevel
			metrics.ReputationGained.Add(float64(delta))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit trade: %w", err)
	}
	s.cache.Invalidate(repMerchant)

	metrics.ItemsSold.WithLabelValues(offer.Ref.String()).Add(float64(quantity))
	metrics.CurrencyEarned.WithLabelValues(string(currency)).Add(float64(total))

	log.Info("sale complete", "merchantID", repMerchant, "itemID", offer.Ref,
		"quantity", quantity, "total", total, "currency", currency)
	return result, nil
}
