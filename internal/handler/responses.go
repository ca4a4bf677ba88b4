package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/wanderinggate/merchant-service/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response. ErrorType carries the
// constraint classification for persistence failures and is omitted for
// plain validation errors.
type ErrorResponse struct {
	Error     string `json:"error"`
	ErrorType string `json:"errorType,omitempty"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent; all we can do is log
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError maps a service-layer error to an HTTP error response,
// attaching the errorType classification when the cause is a database
// constraint.
func respondServiceError(w http.ResponseWriter, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	respondJSON(w, status, ErrorResponse{Error: msg, ErrorType: classifyErrorType(err)})
}

// classifyErrorType names the constraint family behind a persistence error.
func classifyErrorType(err error) string {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return ""
	}
	switch pgErr.Code {
	case "23505":
		return "unique_constraint"
	case "23503":
		return "foreign_key_constraint"
	case "23514":
		return "check_constraint"
	default:
		return "database"
	}
}

// User-facing error messages for service errors.
// These messages intentionally do not expose internal error details.
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."

	ErrMsgUserRequiredError      = "A user is required for this action"
	ErrMsgMerchantNotFoundError  = "Merchant not found"
	ErrMsgItemNotFoundError      = "The merchant does not stock that item"
	ErrMsgInsufficientStockError = "The merchant does not have enough in stock"
	ErrMsgNotEnoughCurrencyError = "Not enough currency"
	ErrMsgNotOwnedError          = "You don't have enough of that item"
	ErrMsgInvalidActionError     = "Invalid action. Valid options: set, add, subtract"
	ErrMsgDuplicateError         = "That record already exists"
)

// mapServiceErrorToUserMessage converts service-layer errors into an HTTP
// status and a safe user-facing message.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrUserRequired):
		return http.StatusBadRequest, ErrMsgUserRequiredError
	case errors.Is(err, domain.ErrMerchantNotFound):
		return http.StatusNotFound, ErrMsgMerchantNotFoundError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrInsufficientStock):
		return http.StatusConflict, ErrMsgInsufficientStockError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughCurrencyError
	case errors.Is(err, domain.ErrNotOwned):
		return http.StatusBadRequest, ErrMsgNotOwnedError
	case errors.Is(err, domain.ErrInvalidAction):
		return http.StatusBadRequest, ErrMsgInvalidActionError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	}

	// Postgres constraint violations map to client errors rather than 500s.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return http.StatusConflict, ErrMsgDuplicateError
		case "23503", "23514": // foreign_key_violation, check_violation
			return http.StatusBadRequest, ErrMsgInvalidRequestError
		}
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
