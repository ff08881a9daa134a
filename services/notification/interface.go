package notification

import (
	"context"
	"time"

	"motoslot/models"
)

// SMSSender delivers a rendered booking confirmation to the SMS provider.
type SMSSender interface {
	SendBookingSMS(ctx context.Context, sms models.BookingSMS) error
}

// ConfirmationDispatcher hands a booking confirmation off for delivery.
// Dispatch is best-effort: callers log failures and move on, a failed
// dispatch never rolls back a committed booking or settlement.
type ConfirmationDispatcher interface {
	DispatchBookingConfirmation(ctx context.Context, sms models.BookingSMS) error
}

// BuildBookingSMS assembles the confirmation payload from a booking and its
// slot.
func BuildBookingSMS(booking *models.Booking, slot *models.Slot) models.BookingSMS {
	location := slot.Location
	if location == "" {
		location = "TBD"
	}
	return models.BookingSMS{
		Phone:          booking.UserPhone,
		BookingRef:     booking.Reference(),
		DateTime:       slot.StartTime.Format(time.RFC3339),
		Location:       location,
		InstructorName: slot.InstructorName,
		ContactPhone:   slot.ContactPhone,
	}
}
