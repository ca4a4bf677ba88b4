package domain

import "errors"

// Error message string constants - single source of truth for error messages.
// Use these in assert.Contains() checks when testing error messages.
const (
	ErrMsgUserRequired      = "user id is required"
	ErrMsgMerchantNotFound  = "merchant not found"
	ErrMsgItemNotFound      = "item not found"
	ErrMsgInsufficientStock = "insufficient stock"
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgNotOwned          = "item not in inventory"
	ErrMsgInvalidInput      = "invalid input"
	ErrMsgInvalidAction     = "invalid quantity action"
)

// Common domain errors. Wrap with fmt.Errorf("...: %w", domain.ErrXxx) for
// context; handlers classify with errors.Is.
var (
	ErrUserRequired      = errors.New(ErrMsgUserRequired)
	ErrMerchantNotFound  = errors.New(ErrMsgMerchantNotFound)
	ErrItemNotFound      = errors.New(ErrMsgItemNotFound)
	ErrInsufficientStock = errors.New(ErrMsgInsufficientStock)
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrNotOwned          = errors.New(ErrMsgNotOwned)
	ErrInvalidInput      = errors.New(ErrMsgInvalidInput)
	ErrInvalidAction     = errors.New(ErrMsgInvalidAction)
)
