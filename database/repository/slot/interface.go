package slotRepo

import (
	"context"
	"time"

	"motoslot/models"
)

// SlotRepository defines data access for slots. AcquireLock and Release are
// the only operations permitted to move a slot out of or back to "available"
// on behalf of a request handler; settlement and the sweep own the rest.
type SlotRepository interface {
	// GetByID retrieves a slot by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Slot, error)
	// Create inserts a new slot record.
	Create(ctx context.Context, slot *models.Slot) error
	// AcquireLock atomically locks the slot for userID with the given TTL.
	// It succeeds for available slots, same-user re-locks, and slots whose
	// previous lock has expired. It returns models.ErrSlotNotFound or
	// models.ErrSlotUnavailable otherwise.
	AcquireLock(ctx context.Context, slotID, userID string, ttl time.Duration) (*models.Slot, error)
	// Release moves a slot from locked back to available, but only while the
	// lock is still held by expectedUserID. Any other state is a no-op.
	Release(ctx context.Context, slotID, expectedUserID string) error
}
