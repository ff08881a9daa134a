package reservation

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	slotRepo "motoslot/database/repository/slot"
	"motoslot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memorySlotRepo is an in-memory SlotRepository with the same lock semantics
// as the Mongo implementation: evaluate and write under one lock.
type memorySlotRepo struct {
	mu    sync.Mutex
	slots map[string]*models.Slot
}

func newMemorySlotRepo(slots ...*models.Slot) *memorySlotRepo {
	m := &memorySlotRepo{slots: make(map[string]*models.Slot)}
	for _, s := range slots {
		copied := *s
		m.slots[s.ID] = &copied
	}
	return m
}

func (m *memorySlotRepo) GetByID(ctx context.Context, id string) (*models.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.slots[id]
	if !ok {
		return nil, models.ErrSlotNotFound
	}
	copied := *s
	return &copied, nil
}

func (m *memorySlotRepo) Create(ctx context.Context, slot *models.Slot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *slot
	m.slots[slot.ID] = &copied
	return nil
}

func (m *memorySlotRepo) AcquireLock(ctx context.Context, slotID, userID string, ttl time.Duration) (*models.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.slots[slotID]
	if !ok {
		return nil, models.ErrSlotNotFound
	}
	now := time.Now().UTC()
	if err := slotRepo.CanAcquire(s, userID, now); err != nil {
		return nil, err
	}
	expires := now.Add(ttl)
	s.Status = models.SlotStatusLocked
	s.LockedBy = userID
	s.LockExpiresAt = &expires
	copied := *s
	return &copied, nil
}

func (m *memorySlotRepo) Release(ctx context.Context, slotID, expectedUserID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.slots[slotID]
	if !ok {
		return nil
	}
	if s.Status == models.SlotStatusLocked && s.LockedBy == expectedUserID {
		s.Status = models.SlotStatusAvailable
		s.LockedBy = ""
		s.LockExpiresAt = nil
	}
	return nil
}

func newManager(repo slotRepo.SlotRepository) *DefaultReservationManager {
	return NewReservationManager(repo, zap.NewNop())
}

func TestAcquireLockValidation(t *testing.T) {
	m := newManager(newMemorySlotRepo())

	_, err := m.AcquireLock(context.Background(), "", "u1", time.Minute)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)

	_, err = m.AcquireLock(context.Background(), "s1", "", time.Minute)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)

	_, err = m.AcquireLock(context.Background(), "s1", "u1", 0)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestAcquireLockSuccess(t *testing.T) {
	repo := newMemorySlotRepo(&models.Slot{ID: "s1", Status: models.SlotStatusAvailable})
	m := newManager(repo)

	slot, err := m.AcquireLock(context.Background(), "s1", "u1", 10*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, models.SlotStatusLocked, slot.Status)
	assert.Equal(t, "u1", slot.LockedBy)
	require.NotNil(t, slot.LockExpiresAt)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), *slot.LockExpiresAt, 5*time.Second)
}

func TestAcquireLockSameUserRefreshesTTL(t *testing.T) {
	repo := newMemorySlotRepo(&models.Slot{ID: "s1", Status: models.SlotStatusAvailable})
	m := newManager(repo)

	first, err := m.AcquireLock(context.Background(), "s1", "u1", time.Minute)
	require.NoError(t, err)

	second, err := m.AcquireLock(context.Background(), "s1", "u1", 10*time.Minute)
	require.NoError(t, err)
	assert.True(t, second.LockExpiresAt.After(*first.LockExpiresAt))
}

func TestAcquireLockContested(t *testing.T) {
	repo := newMemorySlotRepo(&models.Slot{ID: "s1", Status: models.SlotStatusAvailable})
	m := newManager(repo)

	_, err := m.AcquireLock(context.Background(), "s1", "u1", 10*time.Minute)
	require.NoError(t, err)

	_, err = m.AcquireLock(context.Background(), "s1", "u2", 10*time.Minute)
	assert.ErrorIs(t, err, models.ErrSlotUnavailable)
}

func TestAcquireLockExpiredLockIsTakeable(t *testing.T) {
	expired := time.Now().Add(-time.Minute)
	repo := newMemorySlotRepo(&models.Slot{
		ID:            "s1",
		Status:        models.SlotStatusLocked,
		LockedBy:      "u1",
		LockExpiresAt: &expired,
	})
	m := newManager(repo)

	slot, err := m.AcquireLock(context.Background(), "s1", "u2", 10*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "u2", slot.LockedBy)
}

func TestAcquireLockNotFound(t *testing.T) {
	m := newManager(newMemorySlotRepo())
	_, err := m.AcquireLock(context.Background(), "missing", "u1", time.Minute)
	assert.ErrorIs(t, err, models.ErrSlotNotFound)
}

// Concurrent acquisition of one available slot must grant exactly one lock.
func TestAcquireLockConcurrent(t *testing.T) {
	repo := newMemorySlotRepo(&models.Slot{ID: "s1", Status: models.SlotStatusAvailable})
	m := newManager(repo)

	const contenders = 32
	var wg sync.WaitGroup
	winners := make(chan string, contenders)
	losers := make(chan error, contenders)

	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			slot, err := m.AcquireLock(context.Background(), "s1", fmt.Sprintf("user-%d", n), 10*time.Minute)
			if err != nil {
				losers <- err
				return
			}
			winners <- slot.LockedBy
		}(i)
	}
	wg.Wait()
	close(winners)
	close(losers)

	assert.Len(t, winners, 1)
	for err := range losers {
		assert.ErrorIs(t, err, models.ErrSlotUnavailable)
	}
}

func TestReleaseOnlyForHolder(t *testing.T) {
	repo := newMemorySlotRepo(&models.Slot{ID: "s1", Status: models.SlotStatusAvailable})
	m := newManager(repo)

	_, err := m.AcquireLock(context.Background(), "s1", "u1", 10*time.Minute)
	require.NoError(t, err)

	// A release by someone else leaves the lock in place.
	require.NoError(t, m.Release(context.Background(), "s1", "u2"))
	slot, err := repo.GetByID(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, models.SlotStatusLocked, slot.Status)

	require.NoError(t, m.Release(context.Background(), "s1", "u1"))
	slot, err = repo.GetByID(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, models.SlotStatusAvailable, slot.Status)
	assert.Empty(t, slot.LockedBy)
	assert.Nil(t, slot.LockExpiresAt)
}
