package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wanderinggate/merchant-service/internal/domain"
)

// ProfileRepository implements the character profile repository for PostgreSQL
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetProfile retrieves a user's character profile. Returns nil when missing.
func (r *ProfileRepository) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	uid, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	p := domain.Profile{UserID: userID, Wallet: domain.Wallet{UserID: userID}}
	err = r.db.QueryRow(ctx,
		`SELECT name, copper, silver, gold, spirit_stones, created_at, updated_at
		 FROM character_profiles WHERE user_id = $1`, uid).
		Scan(&p.Name, &p.Wallet.Copper, &p.Wallet.Silver, &p.Wallet.Gold,
			&p.Wallet.SpiritStones, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

// CreateProfile inserts a new character profile
func (r *ProfileRepository) CreateProfile(ctx context.Context, p *domain.Profile) error {
	uid, err := parseUserUUID(p.UserID)
	if err != nil {
		return err
	}

	err = r.db.QueryRow(ctx,
		`INSERT INTO character_profiles (user_id, name, copper, silver, gold, spirit_stones)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at`,
		uid, p.Name, p.Wallet.Copper, p.Wallet.Silver, p.Wallet.Gold, p.Wallet.SpiritStones).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}
	return nil
}

// AdjustCurrency applies a signed delta to one currency bucket outside any
// trade transaction.
func (r *ProfileRepository) AdjustCurrency(ctx context.Context, userID string, c domain.Currency, delta int) error {
	uid, err := parseUserUUID(userID)
	if err != nil {
		return err
	}
	col, err := currencyColumn(c)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(
		`UPDATE character_profiles SET %s = %s + $2, updated_at = NOW() WHERE user_id = $1`, col, col)
	tag, err := r.db.Exec(ctx, query, uid, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust %s balance: %w", col, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInsufficientFunds
	}
	return nil
}

// GetReputation retrieves one (merchant, user) reputation row. Returns nil
// when no relationship exists yet.
func (r *ProfileRepository) GetReputation(ctx context.Context, merchantID int, userID string) (*domain.Reputation, error) {
	uid, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	rep := domain.Reputation{MerchantID: merchantID, UserID: userID}
	err = r.db.QueryRow(ctx,
		`SELECT level FROM merchant_reputation WHERE merchant_id = $1 AND user_id = $2`,
		merchantID, uid).Scan(&rep.Level)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get reputation: %w", err)
	}
	return &rep, nil
}

// GetReputations retrieves all of a user's merchant relationships
func (r *ProfileRepository) GetReputations(ctx context.Context, userID string) ([]domain.Reputation, error) {
	uid, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT merchant_id, level FROM merchant_reputation WHERE user_id = $1`, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to query reputations: %w", err)
	}
	defer rows.Close()

	var reps []domain.Reputation
	for rows.Next() {
		rep := domain.Reputation{UserID: userID}
		if err := rows.Scan(&rep.MerchantID, &rep.Level); err != nil {
			return nil, fmt.Errorf("failed to scan reputation: %w", err)
		}
		reps = append(reps, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reputations: %w", err)
	}
	return reps, nil
}
