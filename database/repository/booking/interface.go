package bookingRepo

import (
	"context"

	"motoslot/models"
)

// BookingRepository defines data access for bookings. State transitions that
// touch the slot at the same time (confirmation, expiry) live in the
// settlement repository so they stay inside one transaction.
type BookingRepository interface {
	// GetByID retrieves a booking by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// Create inserts a new booking record.
	Create(ctx context.Context, booking *models.Booking) error
}
