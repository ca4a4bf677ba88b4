package handler

import (
	"net/http"
	"strings"

	"github.com/wanderinggate/merchant-service/internal/domain"
	"github.com/wanderinggate/merchant-service/internal/logger"
	"github.com/wanderinggate/merchant-service/internal/merchant"
)

// BuyItemRequest is the payload for purchasing from a merchant.
type BuyItemRequest struct {
	UserID   string `json:"userId" validate:"required,uuid4"`
	ItemID   string `json:"itemId" validate:"required,max=100"`
	Quantity int    `json:"quantity" validate:"min=1,max=1000"`
}

// HandleBuyItem purchases items from a merchant's per-user stock.
func HandleBuyItem(svc merchant.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		merchantID, ok := MerchantIDParam(r, w)
		if !ok {
			return
		}

		var req BuyItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Buy item"); err != nil {
			return
		}

		result, err := svc.BuyItem(r.Context(), merchantID, domain.ItemRef(req.ItemID), req.UserID, req.Quantity)
		if err != nil {
			log.Error("Failed to buy item", "merchantID", merchantID, "itemID", req.ItemID, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}

// SellItemRequest is the payload for selling to a merchant. ItemData is kept
// loosely typed; old clients send the identifier under different keys.
type SellItemRequest struct {
	UserID   string         `json:"userId" validate:"required,uuid4"`
	ItemData map[string]any `json:"itemData" validate:"required"`
	Quantity int            `json:"quantity" validate:"min=1,max=1000"`
}

// HandleSellItem sells owned items back to a merchant.
func HandleSellItem(svc merchant.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		merchantID, ok := MerchantIDParam(r, w)
		if !ok {
			return
		}

		var req SellItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Sell item"); err != nil {
			return
		}

		result, err := svc.SellItem(r.Context(), merchantID, req.ItemData, req.UserID, req.Quantity)
		if err != nil {
			log.Error("Failed to sell item", "merchantID", merchantID, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}

// RestockRequest is the payload for triggering a restock pass.
type RestockRequest struct {
	UserID string `json:"userId" validate:"required,uuid4"`
}

// HandleRestockMerchant refills every due entry for the user at a merchant.
func HandleRestockMerchant(svc merchant.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		merchantID, ok := MerchantIDParam(r, w)
		if !ok {
			return
		}

		var req RestockRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Restock merchant"); err != nil {
			return
		}

		result, err := svc.RestockMerchant(r.Context(), merchantID, req.UserID)
		if err != nil {
			log.Error("Failed to restock merchant", "merchantID", merchantID, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}

// UpdateQuantityRequest is the payload for the administrative stock
// adjustment. ItemID accepts canonical ids and legacy display names.
type UpdateQuantityRequest struct {
	UserID   string `json:"userId" validate:"required,uuid4"`
	ItemID   string `json:"itemId" validate:"required,max=100"`
	Quantity int    `json:"quantity" validate:"gte=-1,max=100000"`
	Action   string `json:"action" validate:"required,quantity_action"`
}

// HandleUpdateItemQuantity adjusts one entry's stock level.
func HandleUpdateItemQuantity(svc merchant.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		merchantID, ok := MerchantIDParam(r, w)
		if !ok {
			return
		}

		var req UpdateQuantityRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update item quantity"); err != nil {
			return
		}

		action := domain.QuantityAction(strings.ToLower(req.Action))
		result, err := svc.UpdateItemQuantity(r.Context(), merchantID, req.ItemID, req.UserID, req.Quantity, action)
		if err != nil {
			log.Error("Failed to adjust item quantity", "merchantID", merchantID, "itemID", req.ItemID, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}
