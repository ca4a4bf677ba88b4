package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/wanderinggate/merchant-service/internal/domain"
)

func TestMapServiceErrorToUserMessage(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"user required", domain.ErrUserRequired, http.StatusBadRequest, ErrMsgUserRequiredError},
		{"merchant not found", fmt.Errorf("merchant 9: %w", domain.ErrMerchantNotFound), http.StatusNotFound, ErrMsgMerchantNotFoundError},
		{"item not found", domain.ErrItemNotFound, http.StatusNotFound, ErrMsgItemNotFoundError},
		{"insufficient stock", domain.ErrInsufficientStock, http.StatusConflict, ErrMsgInsufficientStockError},
		{"insufficient funds", domain.ErrInsufficientFunds, http.StatusBadRequest, ErrMsgNotEnoughCurrencyError},
		{"not owned", domain.ErrNotOwned, http.StatusBadRequest, ErrMsgNotOwnedError},
		{"invalid action", domain.ErrInvalidAction, http.StatusBadRequest, ErrMsgInvalidActionError},
		// A malformed userId rejected deep in the repository layer must
		// still read as a validation failure, never a server error.
		{"malformed user id from repository", fmt.Errorf("invalid user id %q: %w", "not-a-uuid", domain.ErrInvalidInput), http.StatusBadRequest, ErrMsgInvalidRequestError},
		{"unclassified error", errors.New("connection reset"), http.StatusInternalServerError, ErrMsgGenericServerError},
		{"nil error", nil, http.StatusInternalServerError, ErrMsgUnknownError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, msg := mapServiceErrorToUserMessage(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.message, msg)
		})
	}
}

func TestMapServiceErrorToUserMessage_ConstraintViolations(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505"}
	status, msg := mapServiceErrorToUserMessage(fmt.Errorf("create merchant: %w", unique))
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, ErrMsgDuplicateError, msg)
	assert.Equal(t, "unique_constraint", classifyErrorType(unique))

	fk := &pgconn.PgError{Code: "23503"}
	status, msg = mapServiceErrorToUserMessage(fk)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, ErrMsgInvalidRequestError, msg)
	assert.Equal(t, "foreign_key_constraint", classifyErrorType(fk))

	assert.Equal(t, "", classifyErrorType(domain.ErrInvalidInput))
}
