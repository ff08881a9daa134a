package booking

import (
	"context"

	"motoslot/models"
)

// ManualBookingService creates directly-confirmed bookings on behalf of an
// admin, bypassing the payment flow entirely. The admin check itself lives in
// the route middleware; the service trusts its caller.
type ManualBookingService interface {
	CreateManualBooking(ctx context.Context, input models.ManualBookingInput) (*models.Booking, error)
}
