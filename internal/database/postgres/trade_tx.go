package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/wanderinggate/merchant-service/internal/domain"
)

// TradeTx implements repository.TradeTx on a pgx transaction. All reads that
// feed a trade's write decisions go through here with row locks, which is
// what keeps two concurrent buyers of the last unit from both succeeding.
type TradeTx struct {
	tx pgx.Tx
}

// Commit commits the transaction
func (t *TradeTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *TradeTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// GetMerchant reads the merchant row inside the transaction
func (t *TradeTx) GetMerchant(ctx context.Context, id int) (*domain.Merchant, error) {
	m, err := scanMerchant(t.tx.QueryRow(ctx,
		`SELECT `+merchantColumns+` FROM merchants WHERE merchant_id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get merchant: %w", err)
	}
	return m, nil
}

// GetEntryForUpdate row-locks and returns the (merchant, item, user) entry
func (t *TradeTx) GetEntryForUpdate(ctx context.Context, merchantID int, itemID domain.ItemRef, userID string) (*domain.InventoryEntry, error) {
	uid, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	e, err := scanEntry(t.tx.QueryRow(ctx,
		`SELECT `+entryColumns+` FROM merchant_inventory
		 WHERE merchant_id = $1 AND item_id = $2 AND user_id = $3
		 FOR UPDATE`,
		merchantID, itemID.String(), uid))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to lock inventory entry: %w", err)
	}
	return e, nil
}

// FindEntryByItemForUpdate locates any merchant's entry for this user and
// item, row-locked. Oldest entry wins so repeated sells hit the same row.
func (t *TradeTx) FindEntryByItemForUpdate(ctx context.Context, itemID domain.ItemRef, userID string) (*domain.InventoryEntry, error) {
	uid, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	e, err := scanEntry(t.tx.QueryRow(ctx,
		`SELECT `+entryColumns+` FROM merchant_inventory
		 WHERE item_id = $1 AND user_id = $2
		 ORDER BY entry_id
		 LIMIT 1
		 FOR UPDATE`,
		itemID.String(), uid))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find inventory entry: %w", err)
	}
	return e, nil
}

// SetEntryQuantity sets a locked entry's quantity
func (t *TradeTx) SetEntryQuantity(ctx context.Context, entryID, quantity int) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE merchant_inventory SET quantity = $2 WHERE entry_id = $1`, entryID, quantity)
	if err != nil {
		return fmt.Errorf("failed to update entry quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// DeleteEntry removes an exhausted entry
func (t *TradeTx) DeleteEntry(ctx context.Context, entryID int) error {
	_, err := t.tx.Exec(ctx, `DELETE FROM merchant_inventory WHERE entry_id = $1`, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete inventory entry: %w", err)
	}
	return nil
}

// GetReputation reads the reputation level for pricing. No lock is taken;
// reputation writes are clamped upserts and a stale read only shifts the
// discount by at most one tier.
func (t *TradeTx) GetReputation(ctx context.Context, merchantID int, userID string) (*domain.Reputation, error) {
	uid, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	r := domain.Reputation{MerchantID: merchantID, UserID: userID}
	err = t.tx.QueryRow(ctx,
		`SELECT level FROM merchant_reputation WHERE merchant_id = $1 AND user_id = $2`,
		merchantID, uid).Scan(&r.Level)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get reputation: %w", err)
	}
	return &r, nil
}

// GetWalletForUpdate row-locks and returns the user's currency balances.
// Returns nil when the user has no character profile.
func (t *TradeTx) GetWalletForUpdate(ctx context.Context, userID string) (*domain.Wallet, error) {
	uid, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	w := domain.Wallet{UserID: userID}
	err = t.tx.QueryRow(ctx,
		`SELECT copper, silver, gold, spirit_stones FROM character_profiles WHERE user_id = $1 FOR UPDATE`,
		uid).Scan(&w.Copper, &w.Silver, &w.Gold, &w.SpiritStones)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}
	return &w, nil
}

// AdjustCurrency applies a signed delta to one currency bucket. The
// non-negative CHECK on the column is the last line of defense; callers
// verify the balance first.
func (t *TradeTx) AdjustCurrency(ctx context.Context, userID string, c domain.Currency, delta int) error {
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
	tag, err := t.tx.Exec(ctx, query, uid, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust %s balance: %w", col, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInsufficientFunds
	}
	return nil
}

// ApplyReputationDelta upserts the (merchant, user) reputation row with a
// clamped delta and returns the new level. The statement runs inside a
// savepoint so a failure here reports back to the caller without aborting
// the enclosing trade transaction.
func (t *TradeTx) ApplyReputationDelta(ctx context.Context, merchantID int, userID string, delta int) (int, error) {
	uid, err := parseUserUUID(userID)
	if err != nil {
		return 0, err
	}

	// Nested Begin creates a savepoint on the outer transaction.
	inner, err := t.tx.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to create savepoint: %w", err)
	}

	var level int
	err = inner.QueryRow(ctx,
		`INSERT INTO merchant_reputation (merchant_id, user_id, level)
		 VALUES ($1, $2, LEAST(100, GREATEST(0, $3)))
		 ON CONFLICT (merchant_id, user_id) DO UPDATE
		 SET level = LEAST(100, GREATEST(0, merchant_reputation.level + $3))
		 RETURNING level`,
		merchantID, uid, delta).Scan(&level)
	if err != nil {
		SafeRollback(ctx, inner)
		return 0, fmt.Errorf("failed to apply reputation delta: %w", err)
	}

	if err := inner.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to release savepoint: %w", err)
	}
	return level, nil
}
