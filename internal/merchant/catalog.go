package merchant

import (
	"context"
	"fmt"

	"github.com/wanderinggate/merchant-service/internal/domain"
	"github.com/wanderinggate/merchant-service/internal/logger"
	"github.com/wanderinggate/merchant-service/internal/metrics"
)

// GetAllMerchants returns the catalog formatted for the viewer. With a
// userID the views carry reputation discounts and that user's inventory;
// without one they are the generic views, cached, and a read failure falls
// back to the last cached snapshot rather than erroring.
func (s *service) GetAllMerchants(ctx context.Context, userID string) ([]domain.MerchantView, error) {
	log := logger.FromContext(ctx)

	merchants, err := s.repo.GetMerchants(ctx)
	if err != nil {
		if userID == "" {
			if views, ok := s.cache.All(); ok {
				log.Warn("serving merchant catalog from stale cache", "error", err)
				metrics.DegradedResponses.Inc()
				return views, nil
			}
		}
		return nil, fmt.Errorf("failed to load merchants: %w", err)
	}

	views, err := s.buildViews(ctx, merchants, userID)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		s.cache.PutAll(views)
	}
	return views, nil
}

// GetMerchantByID returns one merchant's view. Anonymous lookups are served
// from cache when possible.
func (s *service) GetMerchantByID(ctx context.Context, merchantID int, userID string) (*domain.MerchantView, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		if view, ok := s.cache.Get(merchantID); ok {
			metrics.CacheHits.Inc()
			return &view, nil
		}
		metrics.CacheMisses.Inc()
	}

	m, err := s.repo.GetMerchantByID(ctx, merchantID)
	if err != nil {
		if userID == "" {
			if view, ok := s.cache.Get(merchantID); ok {
				log.Warn("serving merchant from stale cache", "merchantID", merchantID, "error", err)
				metrics.DegradedResponses.Inc()
				return &view, nil
			}
		}
		return nil, fmt.Errorf("failed to load merchant %d: %w", merchantID, err)
	}
	if m == nil {
		return nil, fmt.Errorf("merchant %d: %w", merchantID, domain.ErrMerchantNotFound)
	}

	views, err := s.buildViews(ctx, []domain.Merchant{*m}, userID)
	if err != nil {
		return nil, err
	}
	view := views[0]
	if userID == "" {
		s.cache.Put(view)
	}
	return &view, nil
}

// GetMerchantsByType returns views for merchants with a given specialization.
func (s *service) GetMerchantsByType(ctx context.Context, merchantType, userID string) ([]domain.MerchantView, error) {
	merchants, err := s.repo.GetMerchantsByType(ctx, merchantType)
	if err != nil {
		return nil, fmt.Errorf("failed to load merchants by type: %w", err)
	}
	return s.buildViews(ctx, merchants, userID)
}

// GetMerchantsByLocation returns views for merchants in a given location.
func (s *service) GetMerchantsByLocation(ctx context.Context, location, userID string) ([]domain.MerchantView, error) {
	merchants, err := s.repo.GetMerchantsByLocation(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to load merchants by location: %w", err)
	}
	return s.buildViews(ctx, merchants, userID)
}

// GetMerchantInventory returns the viewer's priced inventory listing for
// one merchant. Inventory is materialized per user, so a userID is required.
func (s *service) GetMerchantInventory(ctx context.Context, merchantID int, userID string) ([]domain.EntryView, error) {
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

	level := s.reputationLevel(ctx, merchantID, userID)
	discount := AppliedDiscount(m.DefaultDiscount, valueOrZero(level))
	return formatEntries(entries, discount), nil
}

// buildViews formats merchants for a viewer: reputation lookup once, then
// per-merchant inventory and discount. Reputation read failures degrade to
// the default discount instead of failing the catalog.
func (s *service) buildViews(ctx context.Context, merchants []domain.Merchant, userID string) ([]domain.MerchantView, error) {
	log := logger.FromContext(ctx)

	repLevels := map[int]int{}
	if userID != "" {
		reps, err := s.profiles.GetReputations(ctx, userID)
		if err != nil {
			log.Warn("reputation lookup failed, using default discounts", "userID", userID, "error", err)
		}
		for _, r := range reps {
			repLevels[r.MerchantID] = r.Level
		}
	}

	views := make([]domain.MerchantView, 0, len(merchants))
	for _, m := range merchants {
		var rep *int
		if level, ok := repLevels[m.ID]; ok {
			l := level
			rep = &l
		}
		discount := AppliedDiscount(m.DefaultDiscount, valueOrZero(rep))

		entries, err := s.repo.GetInventoryEntries(ctx, m.ID, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load inventory for merchant %d: %w", m.ID, err)
		}

		views = append(views, domain.MerchantView{
			Merchant:   m,
			Discount:   discount,
			Reputation: rep,
			Inventory:  formatEntries(entries, discount),
		})
	}
	return views, nil
}

// reputationLevel reads one (merchant, user) level, nil when absent or on a
// read failure.
func (s *service) reputationLevel(ctx context.Context, merchantID int, userID string) *int {
	rep, err := s.profiles.GetReputation(ctx, merchantID, userID)
	if err != nil {
		logger.FromContext(ctx).Warn("reputation lookup failed, using default discount",
			"merchantID", merchantID, "userID", userID, "error", err)
		return nil
	}
	if rep == nil {
		return nil
	}
	return &rep.Level
}

func formatEntries(entries []domain.InventoryEntry, discount float64) []domain.EntryView {
	views := make([]domain.EntryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, domain.EntryView{
			ItemID:      e.ItemID,
			Name:        e.Name,
			Description: e.Description,
			ItemType:    e.ItemType,
			Rarity:      e.Rarity,
			BasePrice:   e.Price,
			Price:       DiscountedUnitPrice(e.Price, discount),
			Discount:    discount,
			Quantity:    e.Quantity,
		})
	}
	return views
}

func valueOrZero(level *int) int {
	if level == nil {
		return 0
	}
	return *level
}
