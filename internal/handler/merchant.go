package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wanderinggate/merchant-service/internal/domain"
	"github.com/wanderinggate/merchant-service/internal/logger"
	"github.com/wanderinggate/merchant-service/internal/merchant"
)

// HandleGetMerchants returns the merchant catalog. The optional userId query
// parameter personalizes discounts and inventory.
func HandleGetMerchants(svc merchant.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		userID := r.URL.Query().Get("userId")

		views, err := svc.GetAllMerchants(r.Context(), userID)
		if err != nil {
			log.Error("Failed to get merchants", "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, views)
	}
}

// HandleGetMerchantByID returns one merchant's view.
func HandleGetMerchantByID(svc merchant.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		merchantID, ok := MerchantIDParam(r, w)
		if !ok {
			return
		}
		userID := r.URL.Query().Get("userId")

		view, err := svc.GetMerchantByID(r.Context(), merchantID, userID)
		if err != nil {
			log.Error("Failed to get merchant", "merchantID", merchantID, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, view)
	}
}

// HandleGetMerchantsByType filters the catalog by specialization.
func HandleGetMerchantsByType(svc merchant.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		merchantType := chi.URLParam(r, "type")
		userID := r.URL.Query().Get("userId")

		views, err := svc.GetMerchantsByType(r.Context(), merchantType, userID)
		if err != nil {
			log.Error("Failed to get merchants by type", "type", merchantType, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, views)
	}
}

// HandleGetMerchantsByLocation filters the catalog by location.
func HandleGetMerchantsByLocation(svc merchant.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		location := chi.URLParam(r, "location")
		userID := r.URL.Query().Get("userId")

		views, err := svc.GetMerchantsByLocation(r.Context(), location, userID)
		if err != nil {
			log.Error("Failed to get merchants by location", "location", location, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, views)
	}
}

// HandleGetMerchantInventory returns the viewer's priced listing for one
// merchant. userId is required; inventory is materialized per user.
func HandleGetMerchantInventory(svc merchant.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		merchantID, ok := MerchantIDParam(r, w)
		if !ok {
			return
		}
		userID, ok := GetQueryParam(r, w, "userId")
		if !ok {
			return
		}

		entries, err := svc.GetMerchantInventory(r.Context(), merchantID, userID)
		if err != nil {
			log.Error("Failed to get merchant inventory", "merchantID", merchantID, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, entries)
	}
}

// CreateMerchantRequest is the payload for registering a merchant.
type CreateMerchantRequest struct {
	Name            string  `json:"name" validate:"required,max=100"`
	Description     string  `json:"description" validate:"max=500"`
	Location        string  `json:"location" validate:"max=100"`
	Specialization  string  `json:"specialization" validate:"max=50"`
	ImageURL        string  `json:"image_url" validate:"omitempty,url"`
	DefaultDiscount float64 `json:"default_discount" validate:"gte=0,lt=1"`
}

// HandleCreateMerchant registers a new merchant.
func HandleCreateMerchant(svc merchant.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CreateMerchantRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create merchant"); err != nil {
			return
		}

		m := domain.Merchant{
			Name:            req.Name,
			Description:     req.Description,
			Location:        req.Location,
			Specialization:  req.Specialization,
			ImageURL:        req.ImageURL,
			DefaultDiscount: req.DefaultDiscount,
		}
		if err := svc.CreateMerchant(r.Context(), &m); err != nil {
			log.Error("Failed to create merchant", "name", req.Name, "error", err)
			respondServiceError(w, err)
			return
		}

		log.Info("Merchant created", "merchantID", m.ID, "name", m.Name)
		respondJSON(w, http.StatusCreated, DataResponse{Message: MsgMerchantCreatedSuccess, Data: m})
	}
}

// UpdateMerchantRequest is the payload for editing a merchant profile.
type UpdateMerchantRequest struct {
	Name            string  `json:"name" validate:"required,max=100"`
	Description     string  `json:"description" validate:"max=500"`
	Location        string  `json:"location" validate:"max=100"`
	Specialization  string  `json:"specialization" validate:"max=50"`
	ImageURL        string  `json:"image_url" validate:"omitempty,url"`
	DefaultDiscount float64 `json:"default_discount" validate:"gte=0,lt=1"`
}

// HandleUpdateMerchant edits an existing merchant.
func HandleUpdateMerchant(svc merchant.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		merchantID, ok := MerchantIDParam(r, w)
		if !ok {
			return
		}

		var req UpdateMerchantRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update merchant"); err != nil {
			return
		}

		m := domain.Merchant{
			ID:              merchantID,
			Name:            req.Name,
			Description:     req.Description,
			Location:        req.Location,
			Specialization:  req.Specialization,
			ImageURL:        req.ImageURL,
			DefaultDiscount: req.DefaultDiscount,
		}
		if err := svc.UpdateMerchant(r.Context(), m); err != nil {
			log.Error("Failed to update merchant", "merchantID", merchantID, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgMerchantUpdatedSuccess})
	}
}
