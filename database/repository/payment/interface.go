package paymentRepo

import (
	"context"

	"motoslot/models"
)

// PaymentRepository defines data access for payments. A payment is created
// pending by the orchestrator and finalized only through the settlement
// repository's transactions.
type PaymentRepository interface {
	// GetByID retrieves a payment by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Payment, error)
	// Create inserts a new payment record.
	Create(ctx context.Context, payment *models.Payment) error
}
