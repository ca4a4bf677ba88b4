package handler

import (
	"net/http"

	"github.com/wanderinggate/merchant-service/internal/inventory"
	"github.com/wanderinggate/merchant-service/internal/logger"
)

// HandleGetInventory returns a user's full item inventory.
func HandleGetInventory(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID, ok := GetQueryParam(r, w, "userId")
		if !ok {
			return
		}

		items, err := svc.GetItems(r.Context(), userID)
		if err != nil {
			log.Error("Failed to get inventory", "userID", userID, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, items)
	}
}
