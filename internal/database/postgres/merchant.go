package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wanderinggate/merchant-service/internal/domain"
	"github.com/wanderinggate/merchant-service/internal/repository"
)

// MerchantRepository implements the merchant repository for PostgreSQL
type MerchantRepository struct {
	db *pgxpool.Pool
}

// NewMerchantRepository creates a new MerchantRepository
func NewMerchantRepository(db *pgxpool.Pool) *MerchantRepository {
	return &MerchantRepository{db: db}
}

const merchantColumns = `merchant_id, name, description, location, specialization, image_url, default_discount, created_at, updated_at`

func scanMerchant(row pgx.Row) (*domain.Merchant, error) {
	var m domain.Merchant
	err := row.Scan(&m.ID, &m.Name, &m.Description, &m.Location, &m.Specialization,
		&m.ImageURL, &m.DefaultDiscount, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MerchantRepository) queryMerchants(ctx context.Context, query string, args ...any) ([]domain.Merchant, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query merchants: %w", err)
	}
	defer rows.Close()

	var merchants []domain.Merchant
	for rows.Next() {
		m, err := scanMerchant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan merchant: %w", err)
		}
		merchants = append(merchants, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating merchants: %w", err)
	}
	return merchants, nil
}

// GetMerchants retrieves all merchants
func (r *MerchantRepository) GetMerchants(ctx context.Context) ([]domain.Merchant, error) {
	return r.queryMerchants(ctx, `SELECT `+merchantColumns+` FROM merchants ORDER BY merchant_id`)
}

// GetMerchantByID retrieves a merchant by id. Returns nil when not found.
func (r *MerchantRepository) GetMerchantByID(ctx context.Context, id int) (*domain.Merchant, error) {
	m, err := scanMerchant(r.db.QueryRow(ctx,
		`SELECT `+merchantColumns+` FROM merchants WHERE merchant_id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get merchant: %w", err)
	}
	return m, nil
}

// GetMerchantsByType retrieves merchants with the given specialization
func (r *MerchantRepository) GetMerchantsByType(ctx context.Context, specialization string) ([]domain.Merchant, error) {
	return r.queryMerchants(ctx,
		`SELECT `+merchantColumns+` FROM merchants WHERE specialization = $1 ORDER BY merchant_id`, specialization)
}

// GetMerchantsByLocation retrieves merchants at the given location
func (r *MerchantRepository) GetMerchantsByLocation(ctx context.Context, location string) ([]domain.Merchant, error) {
	return r.queryMerchants(ctx,
		`SELECT `+merchantColumns+` FROM merchants WHERE location = $1 ORDER BY merchant_id`, location)
}

// CreateMerchant inserts a new merchant and fills in the generated fields
func (r *MerchantRepository) CreateMerchant(ctx context.Context, m *domain.Merchant) error {
	query := `
		INSERT INTO merchants (name, description, location, specialization, image_url, default_discount)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING merchant_id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, m.Name, m.Description, m.Location, m.Specialization,
		m.ImageURL, m.DefaultDiscount).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert merchant: %w", err)
	}
	return nil
}

// UpdateMerchant updates an existing merchant's mutable fields
func (r *MerchantRepository) UpdateMerchant(ctx context.Context, m domain.Merchant) error {
	query := `
		UPDATE merchants
		SET name = $1, description = $2, location = $3, specialization = $4,
		    image_url = $5, default_discount = $6, updated_at = NOW()
		WHERE merchant_id = $7
	`
	tag, err := r.db.Exec(ctx, query, m.Name, m.Description, m.Location, m.Specialization,
		m.ImageURL, m.DefaultDiscount, m.ID)
	if err != nil {
		return fmt.Errorf("failed to update merchant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMerchantNotFound
	}
	return nil
}

const entryColumns = `entry_id, merchant_id, item_id, user_id, item_type, name, description, rarity, price, quantity, max_quantity, restock_time`

func scanEntry(row pgx.Row) (*domain.InventoryEntry, error) {
	var e domain.InventoryEntry
	var rarity string
	err := row.Scan(&e.EntryID, &e.MerchantID, &e.ItemID, &e.UserID, &e.ItemType,
		&e.Name, &e.Description, &rarity, &e.Price, &e.Quantity, &e.MaxQuantity, &e.RestockTime)
	if err != nil {
		return nil, err
	}
	e.Rarity = domain.NormalizeRarity(rarity)
	return &e, nil
}

// GetInventoryEntries retrieves a merchant's inventory as offered to one user.
// Inventory is materialized per user; without a user there is nothing to list.
func (r *MerchantRepository) GetInventoryEntries(ctx context.Context, merchantID int, userID string) ([]domain.InventoryEntry, error) {
	if userID == "" {
		return nil, nil
	}
	uid, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+entryColumns+` FROM merchant_inventory WHERE merchant_id = $1 AND user_id = $2 ORDER BY name`,
		merchantID, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to query merchant inventory: %w", err)
	}
	defer rows.Close()

	var entries []domain.InventoryEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory entry: %w", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inventory entries: %w", err)
	}
	return entries, nil
}

// GetEntry retrieves one (merchant, item, user) entry. Returns nil when missing.
func (r *MerchantRepository) GetEntry(ctx context.Context, merchantID int, itemID domain.ItemRef, userID string) (*domain.InventoryEntry, error) {
	uid, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	e, err := scanEntry(r.db.QueryRow(ctx,
		`SELECT `+entryColumns+` FROM merchant_inventory WHERE merchant_id = $1 AND item_id = $2 AND user_id = $3`,
		merchantID, itemID.String(), uid))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get inventory entry: %w", err)
	}
	return e, nil
}

// CreateEntry inserts a new per-user inventory entry
func (r *MerchantRepository) CreateEntry(ctx context.Context, e *domain.InventoryEntry) error {
	uid, err := parseUserUUID(e.UserID)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO merchant_inventory (merchant_id, item_id, user_id, item_type, name, description, rarity, price, quantity, max_quantity, restock_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING entry_id
	`
	err = r.db.QueryRow(ctx, query, e.MerchantID, e.ItemID.String(), uid, e.ItemType, e.Name,
		e.Description, string(e.Rarity), e.Price, e.Quantity, e.MaxQuantity, e.RestockTime).Scan(&e.EntryID)
	if err != nil {
		return fmt.Errorf("failed to insert inventory entry: %w", err)
	}
	return nil
}

// SetEntryQuantity sets an entry's quantity outside any trade transaction
func (r *MerchantRepository) SetEntryQuantity(ctx context.Context, entryID, quantity int) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE merchant_inventory SET quantity = $2 WHERE entry_id = $1`, entryID, quantity)
	if err != nil {
		return fmt.Errorf("failed to update entry quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// RestockEntry resets one entry's stock and schedules the next restock
func (r *MerchantRepository) RestockEntry(ctx context.Context, entryID, quantity int, restockTime time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE merchant_inventory SET quantity = $2, restock_time = $3 WHERE entry_id = $1`,
		entryID, quantity, restockTime)
	if err != nil {
		return fmt.Errorf("failed to restock entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// BeginTrade starts a new trade transaction
func (r *MerchantRepository) BeginTrade(ctx context.Context) (repository.TradeTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &TradeTx{tx: tx}, nil
}
