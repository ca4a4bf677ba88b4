package merchant

const (
	// fabricatedPrice is the base price assigned to inventory rows
	// materialized for legacy item identifiers during admin adjustments.
	fabricatedPrice = 50

	// Warnings surfaced on trade results when a best-effort step failed
	// after the trade itself committed.
	WarnInventoryAddFailed   = "item purchased but could not be added to your inventory"
	WarnNoMerchantStock      = "no merchant currently stocks this item; sold without restocking a shelf"
	WarnReputationNotUpdated = "trade completed but reputation could not be updated"
)
