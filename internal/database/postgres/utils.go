package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/wanderinggate/merchant-service/internal/domain"
	"github.com/wanderinggate/merchant-service/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}

// parseUserUUID parses a user ID string to uuid.UUID with consistent error message.
// Use this instead of repeating uuid.Parse + error wrapping throughout the codebase.
// A malformed id is a validation failure, not a storage failure, so the error
// carries domain.ErrInvalidInput for the handler layer to map to a 4xx.
func parseUserUUID(userID string) (uuid.UUID, error) {
	u, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user id %q: %w", userID, domain.ErrInvalidInput)
	}
	return u, nil
}

// currencyColumn maps a currency bucket to its character_profiles column.
// Currency values never come from user input unmapped, but keeping this a
// closed switch means no formatted identifiers reach SQL.
func currencyColumn(c domain.Currency) (string, error) {
	switch c {
	case domain.CurrencyCopper:
		return "copper", nil
	case domain.CurrencySilver:
		return "silver", nil
	case domain.CurrencyGold:
		return "gold", nil
	case domain.CurrencySpiritStones:
		return "spirit_stones", nil
	default:
		return "", fmt.Errorf("unknown currency %q", c)
	}
}
