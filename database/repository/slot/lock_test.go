package slotRepo

import (
	"testing"
	"time"

	"motoslot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanAcquire(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(10 * time.Minute)

	tests := []struct {
		name    string
		slot    models.Slot
		userID  string
		wantErr error
	}{
		{
			name:   "available slot",
			slot:   models.Slot{ID: "s1", Status: models.SlotStatusAvailable},
			userID: "u1",
		},
		{
			name:    "booked slot",
			slot:    models.Slot{ID: "s1", Status: models.SlotStatusBooked, BookedBy: "u2"},
			userID:  "u1",
			wantErr: models.ErrSlotUnavailable,
		},
		{
			name: "locked by another user with live lock",
			slot: models.Slot{
				ID: "s1", Status: models.SlotStatusLocked,
				LockedBy: "u2", LockExpiresAt: &future,
			},
			userID:  "u1",
			wantErr: models.ErrSlotUnavailable,
		},
		{
			name: "locked by same user with live lock",
			slot: models.Slot{
				ID: "s1", Status: models.SlotStatusLocked,
				LockedBy: "u1", LockExpiresAt: &future,
			},
			userID: "u1",
		},
		{
			name: "locked by another user but expired",
			slot: models.Slot{
				ID: "s1", Status: models.SlotStatusLocked,
				LockedBy: "u2", LockExpiresAt: &past,
			},
			userID: "u1",
		},
		{
			name: "lock expiring exactly now counts as expired",
			slot: models.Slot{
				ID: "s1", Status: models.SlotStatusLocked,
				LockedBy: "u2", LockExpiresAt: &now,
			},
			userID: "u1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanAcquire(&tt.slot, tt.userID, now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCanAcquireUnknownStatus(t *testing.T) {
	s := &models.Slot{ID: "s1", Status: "vanished"}
	err := CanAcquire(s, "u1", time.Now())
	require.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrSlotUnavailable)
}

func TestLockExpired(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Second)

	s := &models.Slot{Status: models.SlotStatusLocked, LockExpiresAt: &past}
	assert.True(t, s.LockExpired(now))

	// A booked slot never reports an expired lock, even with a stale field.
	s.Status = models.SlotStatusBooked
	assert.False(t, s.LockExpired(now))

	s.Status = models.SlotStatusLocked
	s.LockExpiresAt = nil
	assert.False(t, s.LockExpired(now))
}
