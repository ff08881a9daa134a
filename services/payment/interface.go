package payment

import (
	"context"

	"motoslot/models"
)

// PaymentOrchestrator creates a payment intent: a pending Payment record plus
// a bank redirect URL, with the target slot locked for the duration of the
// payment flow.
type PaymentOrchestrator interface {
	// CreatePaymentIntent validates the request, locks the booking's slot,
	// obtains a redirect URL from the bank gateway and persists the pending
	// payment. callerID identifies the authenticated caller.
	CreatePaymentIntent(ctx context.Context, callerID string, req models.PaymentIntentRequest) (*models.Payment, error)
}
