package merchant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wanderinggate/merchant-service/internal/domain"
)

func sellPayload() map[string]any {
	return map[string]any{
		"item_id": "pill_qi_gathering",
		"name":    "Qi Gathering Pill",
		"price":   float64(200), // JSON numbers decode as float64
		"rarity":  "epic",
	}
}

func TestParseSellOffer(t *testing.T) {
	offer, err := parseSellOffer(sellPayload())
	require.NoError(t, err)
	assert.Equal(t, domain.ItemRef("pill_qi_gathering"), offer.Ref)
	assert.Equal(t, "Qi Gathering Pill", offer.Name)
	assert.Equal(t, 200, offer.Price)
	assert.Equal(t, domain.RarityEpic, offer.Rarity)

	// Alternate key spellings.
	offer, err = parseSellOffer(map[string]any{"itemId": "x", "basePrice": 50})
	require.NoError(t, err)
	assert.Equal(t, domain.ItemRef("x"), offer.Ref)
	assert.Equal(t, 50, offer.Price)
	assert.Equal(t, domain.RarityCommon, offer.Rarity)
	assert.Equal(t, "x", offer.Name)

	// Missing identifier and missing price both reject.
	_, err = parseSellOffer(map[string]any{"price": float64(10)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = parseSellOffer(map[string]any{"item_id": "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSellItem_MatchedMerchantRestocksAndTakesReputation(t *testing.T) {
	repo := new(MockRepository)
	inv := new(MockInventoryStore)
	tx := new(MockTradeTx)
	svc := newTestService(repo, new(MockProfileRepository), inv)

	// The matched entry belongs to merchant 7, not the addressed merchant 1.
	matched := &domain.InventoryEntry{
		EntryID: 42, MerchantID: 7, ItemID: "pill_qi_gathering", UserID: testUserID,
		Rarity: domain.RarityEpic, Price: 200, Quantity: 2,
	}

	inv.On("GetQuantity", mock.Anything, testUserID, domain.ItemRef("pill_qi_gathering")).Return(3, nil)
	inv.On("RemoveItem", mock.Anything, testUserID, domain.ItemRef("pill_qi_gathering"), 3).Return(nil)
	repo.On("BeginTrade", mock.Anything).Return(tx, nil)
	tx.On("FindEntryByItemForUpdate", mock.Anything, domain.ItemRef("pill_qi_gathering"), testUserID).Return(matched, nil)
	tx.On("SetEntryQuantity", mock.Anything, 42, 5).Return(nil)
	tx.On("GetWalletForUpdate", mock.Anything, testUserID).Return(&domain.Wallet{UserID: testUserID}, nil)
	tx.On("AdjustCurrency", mock.Anything, testUserID, domain.CurrencyGold, 300).Return(nil)
	tx.On("ApplyReputationDelta", mock.Anything, 7, testUserID, 3).Return(3, nil)
	tx.On("Commit", mock.Anything).Return(nil)
	tx.On("Rollback", mock.Anything).Return(nil).Maybe()

	result, err := svc.SellItem(context.Background(), 1, sellPayload(), testUserID, 3)

	require.NoError(t, err)
	assert.Equal(t, 300, result.TotalPrice) // floor(200 * 0.5) * 3
	assert.Equal(t, domain.CurrencyGold, result.Currency)
	assert.Equal(t, 5, result.Entry.Quantity)
	require.NotNil(t, result.ReputationLevel)
	assert.Equal(t, 3, *result.ReputationLevel)
	assert.Empty(t, result.Warnings)
	tx.AssertExpectations(t)
}

func TestSellItem_NoMatchStillPaysWithWarning(t *testing.T) {
	repo := new(MockRepository)
	inv := new(MockInventoryStore)
	tx := new(MockTradeTx)
	svc := newTestService(repo, new(MockProfileRepository), inv)

	inv.On("GetQuantity", mock.Anything, testUserID, domain.ItemRef("pill_qi_gathering")).Return(1, nil)
	inv.On("RemoveItem", mock.Anything, testUserID, domain.ItemRef("pill_qi_gathering"), 1).Return(nil)
	repo.On("BeginTrade", mock.Anything).Return(tx, nil)
	tx.On("FindEntryByItemForUpdate", mock.Anything, domain.ItemRef("pill_qi_gathering"), testUserID).Return(nil, nil)
	tx.On("GetWalletForUpdate", mock.Anything, testUserID).Return(&domain.Wallet{UserID: testUserID}, nil)
	tx.On("AdjustCurrency", mock.Anything, testUserID, domain.CurrencyGold, 100).Return(nil)
	// The addressed merchant takes the reputation when nothing matched.
	tx.On("ApplyReputationDelta", mock.Anything, 1, testUserID, 1).Return(1, nil)
	tx.On("Commit", mock.Anything).Return(nil)
	tx.On("Rollback", mock.Anything).Return(nil).Maybe()

	result, err := svc.SellItem(context.Background(), 1, sellPayload(), testUserID, 1)

	require.NoError(t, err)
	assert.Nil(t, result.Entry)
	assert.Contains(t, result.Warnings, WarnNoMerchantStock)
	tx.AssertNotCalled(t, "SetEntryQuantity", mock.Anything, mock.Anything, mock.Anything)
}

func TestSellItem_NotOwnedRejectsBeforeAnyMutation(t *testing.T) {
	repo := new(MockRepository)
	inv := new(MockInventoryStore)
	svc := newTestService(repo, new(MockProfileRepository), inv)

	inv.On("GetQuantity", mock.Anything, testUserID, domain.ItemRef("pill_qi_gathering")).Return(2, nil)

	_, err := svc.SellItem(context.Background(), 1, sellPayload(), testUserID, 3)

	assert.ErrorIs(t, err, domain.ErrNotOwned)
	inv.AssertNotCalled(t, "RemoveItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "BeginTrade", mock.Anything)
}

func TestSellItem_UnlimitedMatchSkipsRestock(t *testing.T) {
	repo := new(MockRepository)
	inv := new(MockInventoryStore)
	tx := new(MockTradeTx)
	svc := newTestService(repo, new(MockProfileRepository), inv)

	matched := &domain.InventoryEntry{
		EntryID: 42, MerchantID: 1, ItemID: "pill_qi_gathering", UserID: testUserID,
		Rarity: domain.RarityEpic, Price: 200, Quantity: domain.UnlimitedStock,
	}

	inv.On("GetQuantity", mock.Anything, testUserID, domain.ItemRef("pill_qi_gathering")).Return(1, nil)
	inv.On("RemoveItem", mock.Anything, testUserID, domain.ItemRef("pill_qi_gathering"), 1).Return(nil)
	repo.On("BeginTrade", mock.Anything).Return(tx, nil)
	tx.On("FindEntryByItemForUpdate", mock.Anything, domain.ItemRef("pill_qi_gathering"), testUserID).Return(matched, nil)
	tx.On("GetWalletForUpdate", mock.Anything, testUserID).Return(&domain.Wallet{UserID: testUserID}, nil)
	tx.On("AdjustCurrency", mock.Anything, testUserID, domain.CurrencyGold, 100).Return(nil)
	tx.On("ApplyReputationDelta", mock.Anything, 1, testUserID, 1).Return(1, nil)
	tx.On("Commit", mock.Anything).Return(nil)
	tx.On("Rollback", mock.Anything).Return(nil).Maybe()

	_, err := svc.SellItem(context.Background(), 1, sellPayload(), testUserID, 1)

	require.NoError(t, err)
	tx.AssertNotCalled(t, "SetEntryQuantity", mock.Anything, mock.Anything, mock.Anything)
}
