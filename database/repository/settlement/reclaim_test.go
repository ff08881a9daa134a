package settlementRepo

import (
	"testing"
	"time"

	"motoslot/models"

	"github.com/stretchr/testify/assert"
)

func TestCanReclaim(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(10 * time.Minute)

	booking := &models.Booking{ID: "b1", SlotID: "s1", UserID: "u1"}

	tests := []struct {
		name string
		slot models.Slot
		want bool
	}{
		{
			name: "already available",
			slot: models.Slot{ID: "s1", Status: models.SlotStatusAvailable},
			want: false,
		},
		{
			name: "booked under the stale booking",
			slot: models.Slot{ID: "s1", Status: models.SlotStatusBooked, BookedBy: "u1", BookingID: "b1"},
			want: true,
		},
		{
			name: "booked under a different booking stays booked",
			slot: models.Slot{ID: "s1", Status: models.SlotStatusBooked, BookedBy: "u2", BookingID: "b2"},
			want: false,
		},
		{
			name: "still locked by the stale booking's user",
			slot: models.Slot{ID: "s1", Status: models.SlotStatusLocked, LockedBy: "u1", LockExpiresAt: &future},
			want: true,
		},
		{
			name: "re-locked by another user with a live lock stays locked",
			slot: models.Slot{ID: "s1", Status: models.SlotStatusLocked, LockedBy: "u2", LockExpiresAt: &future},
			want: false,
		},
		{
			name: "locked by another user but expired",
			slot: models.Slot{ID: "s1", Status: models.SlotStatusLocked, LockedBy: "u2", LockExpiresAt: &past},
			want: true,
		},
		{
			name: "unknown status",
			slot: models.Slot{ID: "s1", Status: "vanished"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanReclaim(&tt.slot, booking, now))
		})
	}
}
