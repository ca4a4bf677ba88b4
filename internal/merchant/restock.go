package merchant

import (
	"context"
	"fmt"

	"github.com/wanderinggate/merchant-service/internal/domain"
	"github.com/wanderinggate/merchant-service/internal/logger"
	"github.com/wanderinggate/merchant-service/internal/metrics"
)

// RestockMerchant refills every due entry in a merchant's per-user
// inventory: quantity back to max_quantity and restock_time advanced by one
// interval. Entries whose restock_time is still in the future are left
// alone, which makes repeated calls idempotent within an interval.
// Unlimited entries never deplete and are skipped.
func (s *service) RestockMerchant(ctx context.Context, merchantID int, userID string) (*RestockResult, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		return nil, domain.ErrUserRequired
	}

	m, err := s.repo.GetMerchantByID(ctx, merchantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load merchant %d: %w", merchantID, err)
	}
	if m == nil {
		return nil, fmt.Errorf("merchant %d: %w", merchantID, domain.ErrMerchantNotFound)
	}

	entries, err := s.repo.GetInventoryEntries(ctx, merchantID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load merchant inventory: %w", err)
	}

	now := s.now()
	result := &RestockResult{MerchantID: merchantID, Checked: len(entries)}
	for _, e := range entries {
		if e.Unlimited() || !e.RestockDue(now) {
			continue
		}

		target := e.MaxQuantity
		if target <= 0 {
			target = domain.DefaultMaxQuantity
		}
		if err := s.repo.RestockEntry(ctx, e.EntryID, target, e.RestockTime.Add(domain.RestockInterval)); err != nil {
			log.Warn("restock failed for entry", "entryID", e.EntryID, "itemID", e.ItemID, "error", err)
			continue
		}
		result.Restocked++
	}

	if result.Restocked > 0 {
		result.Performed = true
		s.cache.Invalidate(merchantID)
		metrics.EntriesRestocked.WithLabelValues(m.Name).Add(float64(result.Restocked))
	}

	log.Info("restock complete", "merchantID", merchantID,
		"checked", result.Checked, "restocked", result.Restocked)
	return result, nil
}
