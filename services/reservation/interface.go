package reservation

import (
	"context"
	"time"

	"motoslot/models"
)

// ReservationManager grants exclusive, time-bounded slot locks. It is the
// only service permitted to move a slot out of "available" on behalf of a
// request handler.
type ReservationManager interface {
	// AcquireLock locks slotID for userID until now + ttl. A slot locked by
	// the same user is re-locked with a fresh TTL; an expired lock held by
	// anyone is treated as released.
	AcquireLock(ctx context.Context, slotID, userID string, ttl time.Duration) (*models.Slot, error)
	// Release returns the slot to available if userID still holds its lock;
	// any other occupancy state is left untouched.
	Release(ctx context.Context, slotID, userID string) error
}
