package handler

// Generic HTTP error messages for client responses.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidMerchantID     = "Invalid merchant ID"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"

	ErrMsgGetMerchantsFailed   = "Failed to get merchants"
	ErrMsgGetInventoryFailed   = "Failed to get inventory"
	ErrMsgGetProfileFailed     = "Failed to get profile"
	ErrMsgCreateMerchantFailed = "Failed to create merchant"
	ErrMsgUpdateMerchantFailed = "Failed to update merchant"
	ErrMsgCreateProfileFailed  = "Failed to create profile"
	ErrMsgBuyItemFailed        = "Failed to buy item"
	ErrMsgSellItemFailed       = "Failed to sell item"
	ErrMsgRestockFailed        = "Failed to restock merchant"
	ErrMsgAdjustQuantityFailed = "Failed to adjust item quantity"
)

// Success messages for API responses
const (
	MsgMerchantCreatedSuccess = "Merchant created successfully"
	MsgMerchantUpdatedSuccess = "Merchant updated successfully"
	MsgProfileCreatedSuccess  = "Profile created successfully"
)
