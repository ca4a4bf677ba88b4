package merchant

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/wanderinggate/merchant-service/internal/domain"
	"github.com/wanderinggate/merchant-service/internal/repository"
)

// MockRepository implements repository.Merchant for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetMerchants(ctx context.Context) ([]domain.Merchant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Merchant), args.Error(1)
}

func (m *MockRepository) GetMerchantByID(ctx context.Context, id int) (*domain.Merchant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Merchant), args.Error(1)
}

func (m *MockRepository) GetMerchantsByType(ctx context.Context, specialization string) ([]domain.Merchant, error) {
	args := m.Called(ctx, specialization)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Merchant), args.Error(1)
}

func (m *MockRepository) GetMerchantsByLocation(ctx context.Context, location string) ([]domain.Merchant, error) {
	args := m.Called(ctx, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Merchant), args.Error(1)
}

func (m *MockRepository) CreateMerchant(ctx context.Context, merchant *domain.Merchant) error {
	args := m.Called(ctx, merchant)
	return args.Error(0)
}

func (m *MockRepository) UpdateMerchant(ctx context.Context, merchant domain.Merchant) error {
	args := m.Called(ctx, merchant)
	return args.Error(0)
}

func (m *MockRepository) GetInventoryEntries(ctx context.Context, merchantID int, userID string) ([]domain.InventoryEntry, error) {
	args := m.Called(ctx, merchantID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryEntry), args.Error(1)
}

func (m *MockRepository) GetEntry(ctx context.Context, merchantID int, itemID domain.ItemRef, userID string) (*domain.InventoryEntry, error) {
	args := m.Called(ctx, merchantID, itemID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryEntry), args.Error(1)
}

func (m *MockRepository) CreateEntry(ctx context.Context, e *domain.InventoryEntry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockRepository) SetEntryQuantity(ctx context.Context, entryID, quantity int) error {
	args := m.Called(ctx, entryID, quantity)
	return args.Error(0)
}

func (m *MockRepository) RestockEntry(ctx context.Context, entryID, quantity int, restockTime time.Time) error {
	args := m.Called(ctx, entryID, quantity, restockTime)
	return args.Error(0)
}

func (m *MockRepository) BeginTrade(ctx context.Context) (repository.TradeTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.TradeTx), args.Error(1)
}

// MockTradeTx implements repository.TradeTx for testing
type MockTradeTx struct {
	mock.Mock
}

func (m *MockTradeTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTradeTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTradeTx) GetMerchant(ctx context.Context, id int) (*domain.Merchant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Merchant), args.Error(1)
}

func (m *MockTradeTx) GetEntryForUpdate(ctx context.Context, merchantID int, itemID domain.ItemRef, userID string) (*domain.InventoryEntry, error) {
	args := m.Called(ctx, merchantID, itemID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryEntry), args.Error(1)
}

func (m *MockTradeTx) FindEntryByItemForUpdate(ctx context.Context, itemID domain.ItemRef, userID string) (*domain.InventoryEntry, error) {
	args := m.Called(ctx, itemID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryEntry), args.Error(1)
}

func (m *MockTradeTx) SetEntryQuantity(ctx context.Context, entryID, quantity int) error {
	args := m.Called(ctx, entryID, quantity)
	return args.Error(0)
}

func (m *MockTradeTx) DeleteEntry(ctx context.Context, entryID int) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

func (m *MockTradeTx) GetReputation(ctx context.Context, merchantID int, userID string) (*domain.Reputation, error) {
	args := m.Called(ctx, merchantID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reputation), args.Error(1)
}

func (m *MockTradeTx) GetWalletForUpdate(ctx context.Context, userID string) (*domain.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockTradeTx) AdjustCurrency(ctx context.Context, userID string, c domain.Currency, delta int) error {
	args := m.Called(ctx, userID, c, delta)
	return args.Error(0)
}

func (m *MockTradeTx) ApplyReputationDelta(ctx context.Context, merchantID int, userID string, delta int) (int, error) {
	args := m.Called(ctx, merchantID, userID, delta)
	return args.Int(0), args.Error(1)
}

// MockProfileRepository implements repository.Profile for testing
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) CreateProfile(ctx context.Context, p *domain.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProfileRepository) AdjustCurrency(ctx context.Context, userID string, c domain.Currency, delta int) error {
	args := m.Called(ctx, userID, c, delta)
	return args.Error(0)
}

func (m *MockProfileRepository) GetReputation(ctx context.Context, merchantID int, userID string) (*domain.Reputation, error) {
	args := m.Called(ctx, merchantID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reputation), args.Error(1)
}

func (m *MockProfileRepository) GetReputations(ctx context.Context, userID string) ([]domain.Reputation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reputation), args.Error(1)
}

// MockInventoryStore implements InventoryStore for testing
type MockInventoryStore struct {
	mock.Mock
}

func (m *MockInventoryStore) AddItem(ctx context.Context, userID string, item domain.InventoryItem) error {
	args := m.Called(ctx, userID, item)
	return args.Error(0)
}

func (m *MockInventoryStore) RemoveItem(ctx context.Context, userID string, itemID domain.ItemRef, quantity int) error {
	args := m.Called(ctx, userID, itemID, quantity)
	return args.Error(0)
}

func (m *MockInventoryStore) GetQuantity(ctx context.Context, userID string, itemID domain.ItemRef) (int, error) {
	args := m.Called(ctx, userID, itemID)
	return args.Int(0), args.Error(1)
}

// Test fixtures

const testUserID = "9f1c2a34-1111-4222-8333-444455556666"

func testMerchant() *domain.Merchant {
	return &domain.Merchant{
		ID:             1,
		Name:           "Elder Bai",
		Location:       "Azure Cloud City",
		Specialization: "herbalist",
	}
}

func testEntry() *domain.InventoryEntry {
	return &domain.InventoryEntry{
		EntryID:     10,
		MerchantID:  1,
		ItemID:      "herb_spirit",
		UserID:      testUserID,
		ItemType:    "material",
		Name:        "Spirit Herb",
		Rarity:      domain.RarityRare,
		Price:       100,
		Quantity:    3,
		MaxQuantity: 10,
	}
}

func testWallet(silver int) *domain.Wallet {
	return &domain.Wallet{UserID: testUserID, Silver: silver}
}

func newTestService(repo *MockRepository, profiles *MockProfileRepository, inv *MockInventoryStore) *service {
	return &service{
		repo:     repo,
		profiles: profiles,
		inv:      inv,
		cache:    NewCache(16, time.Minute),
		now:      time.Now,
	}
}
