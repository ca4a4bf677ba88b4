package profile

import (
	"context"
	"fmt"

	"github.com/wanderinggate/merchant-service/internal/domain"
	"github.com/wanderinggate/merchant-service/internal/logger"
	"github.com/wanderinggate/merchant-service/internal/repository"
)

// Service defines character profile operations: the currency ledger and
// per-merchant reputation reads.
type Service interface {
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	CreateProfile(ctx context.Context, p *domain.Profile) error
	AdjustCurrency(ctx context.Context, userID string, c domain.Currency, delta int) error
	GetReputations(ctx context.Context, userID string) ([]domain.Reputation, error)
}

type service struct {
	repo repository.Profile
}

// NewService creates a new profile service
func NewService(repo repository.Profile) Service {
	return &service{repo: repo}
}

func (s *service) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	if userID == "" {
		return nil, domain.ErrUserRequired
	}
	return s.repo.GetProfile(ctx, userID)
}

func (s *service) CreateProfile(ctx context.Context, p *domain.Profile) error {
	if p.UserID == "" {
		return domain.ErrUserRequired
	}
	if p.Name == "" {
		return fmt.Errorf("profile name is required: %w", domain.ErrInvalidInput)
	}
	if err := s.repo.CreateProfile(ctx, p); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("profile created", "userID", p.UserID, "name", p.Name)
	return nil
}

func (s *service) AdjustCurrency(ctx context.Context, userID string, c domain.Currency, delta int) error {
	if userID == "" {
		return domain.ErrUserRequired
	}
	return s.repo.AdjustCurrency(ctx, userID, c, delta)
}

func (s *service) GetReputations(ctx context.Context, userID string) ([]domain.Reputation, error) {
	if userID == "" {
		return nil, domain.ErrUserRequired
	}
	return s.repo.GetReputations(ctx, userID)
}
