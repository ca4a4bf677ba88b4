package repository

import (
	"context"
	"strings"

	"github.com/wanderinggate/merchant-service/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error that isn't the
// usual already-closed noise after a successful commit.
func SafeRollback(ctx context.Context, tx Tx) {
	if err := tx.Rollback(ctx); err != nil {
		if strings.Contains(err.Error(), "closed") {
			return
		}
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}
