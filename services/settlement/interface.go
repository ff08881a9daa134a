package settlement

import (
	"context"

	"motoslot/models"
)

// SettlementEngine consumes a bank verification result and drives Payment,
// Booking and Slot to their terminal states for that attempt.
type SettlementEngine interface {
	// Settle finalizes the payment identified by paymentID using the bank
	// transaction reference obtained from the redirect. It is idempotent: a
	// replay returns the stored result without re-applying side effects.
	Settle(ctx context.Context, paymentID, transactionID string) (*models.Payment, error)
}
