package repository

import (
	"context"

	"github.com/wanderinggate/merchant-service/internal/domain"
)

// Profile defines the persistence interface for character profiles: the
// currency ledger plus per-merchant reputation rows.
type Profile interface {
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	CreateProfile(ctx context.Context, p *domain.Profile) error

	// AdjustCurrency applies a signed delta outside any trade transaction.
	// Trade-path mutations go through TradeTx instead.
	AdjustCurrency(ctx context.Context, userID string, c domain.Currency, delta int) error

	GetReputation(ctx context.Context, merchantID int, userID string) (*domain.Reputation, error)
	GetReputations(ctx context.Context, userID string) ([]domain.Reputation, error)
}
