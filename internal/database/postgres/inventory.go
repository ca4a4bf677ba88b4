package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wanderinggate/merchant-service/internal/domain"
)

// InventoryRepository implements the player inventory repository for
// PostgreSQL. Deliberately runs outside trade transactions; see the
// engine's handling of committed-with-warnings results.
type InventoryRepository struct {
	db *pgxpool.Pool
}

// NewInventoryRepository creates a new InventoryRepository
func NewInventoryRepository(db *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{db: db}
}

const itemColumns = `item_id, name, item_type, rarity, quantity, equipped, description`

func scanItem(row pgx.Row) (*domain.InventoryItem, error) {
	var it domain.InventoryItem
	var rarity string
	err := row.Scan(&it.ItemID, &it.Name, &it.ItemType, &rarity, &it.Quantity, &it.Equipped, &it.Description)
	if err != nil {
		return nil, err
	}
	it.Rarity = domain.NormalizeRarity(rarity)
	return &it, nil
}

// GetItems retrieves all items a user owns
func (r *InventoryRepository) GetItems(ctx context.Context, userID string) ([]domain.InventoryItem, error) {
	uid, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+itemColumns+` FROM player_inventory WHERE user_id = $1 ORDER BY name`, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer rows.Close()

	var items []domain.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		items = append(items, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inventory: %w", err)
	}
	return items, nil
}

// GetItem retrieves one owned item. Returns nil when the user doesn't own it.
func (r *InventoryRepository) GetItem(ctx context.Context, userID string, itemID domain.ItemRef) (*domain.InventoryItem, error) {
	uid, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	it, err := scanItem(r.db.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM player_inventory WHERE user_id = $1 AND item_id = $2`,
		uid, itemID.String()))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}
	return it, nil
}

// UpsertItem adds quantity to an existing row or inserts a new one
func (r *InventoryRepository) UpsertItem(ctx context.Context, userID string, item domain.InventoryItem) error {
	uid, err := parseUserUUID(userID)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO player_inventory (user_id, item_id, name, item_type, rarity, quantity, equipped, description)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (user_id, item_id) DO UPDATE
		 SET quantity = player_inventory.quantity + EXCLUDED.quantity`,
		uid, item.ItemID.String(), item.Name, item.ItemType, string(item.Rarity),
		item.Quantity, item.Equipped, item.Description)
	if err != nil {
		return fmt.Errorf("failed to upsert inventory item: %w", err)
	}
	return nil
}

// RemoveQuantity decrements an owned item, deleting the row at zero.
// Returns domain.ErrNotOwned when the user holds fewer than quantity.
func (r *InventoryRepository) RemoveQuantity(ctx context.Context, userID string, itemID domain.ItemRef, quantity int) error {
	uid, err := parseUserUUID(userID)
	if err != nil {
		return err
	}

	var remaining int
	err = r.db.QueryRow(ctx,
		`UPDATE player_inventory SET quantity = quantity - $3
		 WHERE user_id = $1 AND item_id = $2 AND quantity >= $3
		 RETURNING quantity`,
		uid, itemID.String(), quantity).Scan(&remaining)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.ErrNotOwned
		}
		return fmt.Errorf("failed to remove inventory quantity: %w", err)
	}

	if remaining == 0 {
		if _, err := r.db.Exec(ctx,
			`DELETE FROM player_inventory WHERE user_id = $1 AND item_id = $2 AND quantity = 0`,
			uid, itemID.String()); err != nil {
			return fmt.Errorf("failed to clear empty inventory row: %w", err)
		}
	}
	return nil
}
