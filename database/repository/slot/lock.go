package slotRepo

import (
	"fmt"
	"time"

	"motoslot/models"
)

// CanAcquire decides whether userID may take the lock on the given slot at
// the given instant. Expired locks count as released (lazy expiry), and a
// re-lock by the current holder is allowed.
func CanAcquire(s *models.Slot, userID string, now time.Time) error {
	switch s.Status {
	case models.SlotStatusAvailable:
		return nil
	case models.SlotStatusBooked:
		return models.ErrSlotUnavailable
	case models.SlotStatusLocked:
		if s.LockedBy == userID {
			return nil
		}
		if s.LockExpired(now) {
			return nil
		}
		return models.ErrSlotUnavailable
	default:
		return fmt.Errorf("slot %s has unknown status %q", s.ID, s.Status)
	}
}
