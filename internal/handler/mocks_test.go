package handler

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"

	"github.com/wanderinggate/merchant-service/internal/domain"
	"github.com/wanderinggate/merchant-service/internal/merchant"
)

// MockMerchantService implements merchant.Service for testing
type MockMerchantService struct {
	mock.Mock
}

func (m *MockMerchantService) GetAllMerchants(ctx context.Context, userID string) ([]domain.MerchantView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MerchantView), args.Error(1)
}

func (m *MockMerchantService) GetMerchantByID(ctx context.Context, merchantID int, userID string) (*domain.MerchantView, error) {
	args := m.Called(ctx, merchantID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MerchantView), args.Error(1)
}

func (m *MockMerchantService) GetMerchantsByType(ctx context.Context, merchantType, userID string) ([]domain.MerchantView, error) {
	args := m.Called(ctx, merchantType, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MerchantView), args.Error(1)
}

func (m *MockMerchantService) GetMerchantsByLocation(ctx context.Context, location, userID string) ([]domain.MerchantView, error) {
	args := m.Called(ctx, location, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MerchantView), args.Error(1)
}

func (m *MockMerchantService) GetMerchantInventory(ctx context.Context, merchantID int, userID string) ([]domain.EntryView, error) {
	args := m.Called(ctx, merchantID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntryView), args.Error(1)
}

func (m *MockMerchantService) CreateMerchant(ctx context.Context, mc *domain.Merchant) error {
	args := m.Called(ctx, mc)
	return args.Error(0)
}

func (m *MockMerchantService) UpdateMerchant(ctx context.Context, mc domain.Merchant) error {
	args := m.Called(ctx, mc)
	return args.Error(0)
}

func (m *MockMerchantService) BuyItem(ctx context.Context, merchantID int, itemID domain.ItemRef, userID string, quantity int) (*merchant.TradeResult, error) {
	args := m.Called(ctx, merchantID, itemID, userID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*merchant.TradeResult), args.Error(1)
}

func (m *MockMerchantService) SellItem(ctx context.Context, merchantID int, itemData map[string]any, userID string, quantity int) (*merchant.TradeResult, error) {
	args := m.Called(ctx, merchantID, itemData, userID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*merchant.TradeResult), args.Error(1)
}

func (m *MockMerchantService) RestockMerchant(ctx context.Context, merchantID int, userID string) (*merchant.RestockResult, error) {
	args := m.Called(ctx, merchantID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*merchant.RestockResult), args.Error(1)
}

func (m *MockMerchantService) UpdateItemQuantity(ctx context.Context, merchantID int, itemID, userID string, quantity int, action domain.QuantityAction) (*merchant.QuantityResult, error) {
	args := m.Called(ctx, merchantID, itemID, userID, quantity, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*merchant.QuantityResult), args.Error(1)
}

const testUserID = "9f1c2a34-1111-4222-8333-444455556666"

// withMerchantID attaches a chi route context carrying the merchantID path
// parameter, the way the router would.
func withMerchantID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("merchantID", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func doRequest(h http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}
