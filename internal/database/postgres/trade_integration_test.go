package postgres

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/wanderinggate/merchant-service/internal/database"
	"github.com/wanderinggate/merchant-service/internal/domain"
	"github.com/wanderinggate/merchant-service/internal/inventory"
	"github.com/wanderinggate/merchant-service/internal/merchant"
)

// TestConcurrentBuyLastUnit_Integration verifies the row-locking inside the
// trade transaction: when many goroutines race for the last unit of stock,
// exactly one purchase succeeds and the rest fail with insufficient stock.
// It exercises the real repositories against a containerized Postgres.
func TestConcurrentBuyLastUnit_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	var pgContainer *postgres.PostgresContainer
	var err error

	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Skipf("Skipping integration test due to panic (likely Docker issue): %v", r)
			}
		}()
		pgContainer, err = postgres.Run(ctx,
			"postgres:15-alpine",
			postgres.WithDatabase("testdb"),
			postgres.WithUsername("testuser"),
			postgres.WithPassword("testpass"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second)),
		)
	}()
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	if pgContainer == nil {
		return
	}
	defer func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}()

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := database.NewPool(connStr, 25, 5*time.Minute, 30*time.Minute)
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, connStr); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}

	merchantRepo := NewMerchantRepository(pool)
	inventoryRepo := NewInventoryRepository(pool)
	profileRepo := NewProfileRepository(pool)

	inventoryService := inventory.NewService(inventoryRepo)
	svc := merchant.NewService(merchantRepo, profileRepo, inventoryService,
		merchant.NewCache(16, time.Minute))

	userID := uuid.NewString()
	if err := profileRepo.CreateProfile(ctx, &domain.Profile{
		UserID: userID,
		Name:   "Racing Cultivator",
		Wallet: domain.Wallet{UserID: userID, Silver: 1000},
	}); err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}

	// Merchant 1 is seeded by the migrations (Elder Bai, no default discount).
	const merchantID = 1
	const itemID = domain.ItemRef("herb_spirit")

	entry := &domain.InventoryEntry{
		MerchantID:  merchantID,
		ItemID:      itemID,
		UserID:      userID,
		ItemType:    "material",
		Name:        "Spirit Herb",
		Rarity:      domain.RarityRare,
		Price:       100,
		Quantity:    1,
		MaxQuantity: 10,
		RestockTime: time.Now().Add(24 * time.Hour),
	}
	if err := merchantRepo.CreateEntry(ctx, entry); err != nil {
		t.Fatalf("failed to create inventory entry: %v", err)
	}

	const buyers = 10
	var wg sync.WaitGroup
	wg.Add(buyers)
	results := make(chan error, buyers)

	for i := 0; i < buyers; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.BuyItem(ctx, merchantID, itemID, userID, 1)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, outOfStock int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrInsufficientStock):
			outOfStock++
		default:
			t.Errorf("unexpected buy error: %v", err)
		}
	}

	if succeeded != 1 {
		t.Errorf("expected exactly 1 successful purchase, got %d", succeeded)
	}
	if outOfStock != buyers-1 {
		t.Errorf("expected %d out-of-stock failures, got %d", buyers-1, outOfStock)
	}

	// The last unit was sold, so the entry row must be gone.
	remaining, err := merchantRepo.GetEntry(ctx, merchantID, itemID, userID)
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if remaining != nil {
		t.Errorf("expected entry to be deleted after last unit sold, got quantity %d", remaining.Quantity)
	}

	// Exactly one unit was paid for: 100 silver at reputation 0 (no discount).
	profile, err := profileRepo.GetProfile(ctx, userID)
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if profile.Wallet.Silver != 900 {
		t.Errorf("expected 900 silver after one purchase, got %d", profile.Wallet.Silver)
	}

	// The purchase of 100 silver grants one reputation point.
	rep, err := profileRepo.GetReputation(ctx, merchantID, userID)
	if err != nil {
		t.Fatalf("GetReputation failed: %v", err)
	}
	if rep == nil || rep.Level != 1 {
		t.Errorf("expected reputation level 1, got %+v", rep)
	}

	// Exactly one unit landed in the player inventory.
	qty, err := inventoryService.GetQuantity(ctx, userID, itemID)
	if err != nil {
		t.Fatalf("GetQuantity failed: %v", err)
	}
	if qty != 1 {
		t.Errorf("expected 1 owned unit, got %d", qty)
	}
}
