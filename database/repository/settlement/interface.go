package settlementRepo

import (
	"context"
	"time"

	"motoslot/models"
)

// SweepResult summarizes one reconciliation pass.
type SweepResult struct {
	ExpiredBookings int
	ReleasedLocks   int
}

// Total returns the number of records touched by the pass.
func (r SweepResult) Total() int {
	return r.ExpiredBookings + r.ReleasedLocks
}

// SettlementRepository owns every state transition that spans more than one
// collection. Each method commits all of its writes in a single MongoDB
// transaction, or none of them.
type SettlementRepository interface {
	// CommitVerified finalizes a verified payment: Payment -> success,
	// Booking -> confirmed, Slot -> booked, atomically. It commits nothing
	// and returns models.ErrSlotUnavailable when the slot has been
	// legitimately taken by another user in the meantime, or
	// models.ErrAlreadySettled when the booking has already left
	// pending_payment under another payment attempt.
	CommitVerified(ctx context.Context, payment *models.Payment, booking *models.Booking, transactionID string, now time.Time) (*models.Payment, error)
	// CommitFailed finalizes an unverified payment: Payment -> failed,
	// Booking -> expired, and the slot released back to available if (and
	// only if) the booking's user still holds its lock. The booking and slot
	// writes apply only while the booking is still pending_payment; a
	// booking confirmed by another attempt is left untouched.
	CommitFailed(ctx context.Context, payment *models.Payment, booking *models.Booking, errMsg string, now time.Time) (*models.Payment, error)
	// CreateManualBooking inserts a directly-confirmed booking and marks its
	// slot booked in one transaction. The slot must still be lockable by the
	// booking's user.
	CreateManualBooking(ctx context.Context, booking *models.Booking) error
	// ExpireStale performs one reconciliation pass at the given instant:
	// pending bookings past expiresAt become expired with their slots
	// released when CanReclaim allows it, and remaining locked slots past
	// their lock TTL are released. Payments are never touched.
	ExpireStale(ctx context.Context, now time.Time) (SweepResult, error)
}
