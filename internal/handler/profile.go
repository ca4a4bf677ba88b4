package handler

import (
	"net/http"

	"github.com/wanderinggate/merchant-service/internal/domain"
	"github.com/wanderinggate/merchant-service/internal/logger"
	"github.com/wanderinggate/merchant-service/internal/profile"
)

// HandleGetProfile returns a user's character profile and balances.
func HandleGetProfile(svc profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID, ok := GetQueryParam(r, w, "userId")
		if !ok {
			return
		}

		p, err := svc.GetProfile(r.Context(), userID)
		if err != nil {
			log.Error("Failed to get profile", "userID", userID, "error", err)
			respondServiceError(w, err)
			return
		}
		if p == nil {
			respondError(w, http.StatusNotFound, ErrMsgGetProfileFailed)
			return
		}

		respondJSON(w, http.StatusOK, p)
	}
}

// CreateProfileRequest is the payload for creating a character profile.
type CreateProfileRequest struct {
	UserID string `json:"userId" validate:"required,uuid4"`
	Name   string `json:"name" validate:"required,max=100,excludesall=\x00\n\r\t"`
}

// HandleCreateProfile creates a character profile with empty balances.
func HandleCreateProfile(svc profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CreateProfileRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create profile"); err != nil {
			return
		}

		p := domain.Profile{UserID: req.UserID, Name: req.Name}
		if err := svc.CreateProfile(r.Context(), &p); err != nil {
			log.Error("Failed to create profile", "userID", req.UserID, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusCreated, DataResponse{Message: MsgProfileCreatedSuccess, Data: p})
	}
}

// HandleGetReputations returns every merchant reputation a user holds.
func HandleGetReputations(svc profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID, ok := GetQueryParam(r, w, "userId")
		if !ok {
			return
		}

		reps, err := svc.GetReputations(r.Context(), userID)
		if err != nil {
			log.Error("Failed to get reputations", "userID", userID, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, reps)
	}
}
