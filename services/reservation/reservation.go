package reservation

import (
	"context"
	"fmt"
	"time"

	slotRepo "motoslot/database/repository/slot"
	"motoslot/models"

	"go.uber.org/zap"
)

// DefaultReservationManager implements ReservationManager on top of the slot
// repository's transactional lock primitive.
type DefaultReservationManager struct {
	Repo   slotRepo.SlotRepository
	Logger *zap.Logger
}

func NewReservationManager(repo slotRepo.SlotRepository, logger *zap.Logger) *DefaultReservationManager {
	return &DefaultReservationManager{Repo: repo, Logger: logger}
}

func (m *DefaultReservationManager) AcquireLock(ctx context.Context, slotID, userID string, ttl time.Duration) (*models.Slot, error) {
	if slotID == "" || userID == "" {
		return nil, fmt.Errorf("slot and user are required: %w", models.ErrInvalidArgument)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("lock ttl must be positive: %w", models.ErrInvalidArgument)
	}

	slot, err := m.Repo.AcquireLock(ctx, slotID, userID, ttl)
	if err != nil {
		return nil, err
	}

	m.Logger.Info("slot locked",
		zap.String("slotId", slotID),
		zap.String("userId", userID),
		zap.Timep("lockExpiresAt", slot.LockExpiresAt),
	)
	return slot, nil
}

func (m *DefaultReservationManager) Release(ctx context.Context, slotID, userID string) error {
	if err := m.Repo.Release(ctx, slotID, userID); err != nil {
		return err
	}
	m.Logger.Info("slot lock released", zap.String("slotId", slotID), zap.String("userId", userID))
	return nil
}
