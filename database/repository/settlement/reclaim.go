package settlementRepo

import (
	"time"

	"motoslot/models"
)

// CanReclaim decides whether the sweep may release a stale booking's slot
// back to available at the given instant. A slot another user has
// legitimately taken since the stale lock lapsed, either booked under a
// different booking or held with a live lock of their own, stays theirs.
func CanReclaim(s *models.Slot, b *models.Booking, now time.Time) bool {
	switch s.Status {
	case models.SlotStatusAvailable:
		return false
	case models.SlotStatusBooked:
		return s.BookingID == b.ID
	case models.SlotStatusLocked:
		return s.HeldBy(b.UserID) || s.LockExpired(now)
	default:
		return false
	}
}
