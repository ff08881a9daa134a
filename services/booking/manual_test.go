package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	settlementRepo "motoslot/database/repository/settlement"
	"motoslot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSettlementRepo struct {
	created   []*models.Booking
	createErr error
}

func (f *fakeSettlementRepo) CommitVerified(ctx context.Context, p *models.Payment, b *models.Booking, transactionID string, now time.Time) (*models.Payment, error) {
	return nil, errors.New("not used")
}

func (f *fakeSettlementRepo) CommitFailed(ctx context.Context, p *models.Payment, b *models.Booking, errMsg string, now time.Time) (*models.Payment, error) {
	return nil, errors.New("not used")
}

func (f *fakeSettlementRepo) CreateManualBooking(ctx context.Context, b *models.Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, b)
	return nil
}

func (f *fakeSettlementRepo) ExpireStale(ctx context.Context, now time.Time) (settlementRepo.SweepResult, error) {
	return settlementRepo.SweepResult{}, nil
}

type fakeSlotRepo struct {
	slots map[string]*models.Slot
}

func (f *fakeSlotRepo) GetByID(ctx context.Context, id string) (*models.Slot, error) {
	s, ok := f.slots[id]
	if !ok {
		return nil, models.ErrSlotNotFound
	}
	return s, nil
}

func (f *fakeSlotRepo) Create(ctx context.Context, s *models.Slot) error       { return nil }
func (f *fakeSlotRepo) Release(ctx context.Context, slotID, userID string) error { return nil }
func (f *fakeSlotRepo) AcquireLock(ctx context.Context, slotID, userID string, ttl time.Duration) (*models.Slot, error) {
	return nil, errors.New("not used")
}

type fakeDispatcher struct {
	dispatched []models.BookingSMS
}

func (f *fakeDispatcher) DispatchBookingConfirmation(ctx context.Context, sms models.BookingSMS) error {
	f.dispatched = append(f.dispatched, sms)
	return nil
}

func newService(repo *fakeSettlementRepo, dispatcher *fakeDispatcher) *DefaultManualBookingService {
	return &DefaultManualBookingService{
		Repo: repo,
		Slots: &fakeSlotRepo{slots: map[string]*models.Slot{
			"s1": {ID: "s1", StartTime: time.Date(2025, 7, 15, 10, 0, 0, 0, time.UTC), Location: "Didube"},
		}},
		Notification: dispatcher,
		Logger:       zap.NewNop(),
	}
}

func TestCreateManualBooking(t *testing.T) {
	repo := &fakeSettlementRepo{}
	dispatcher := &fakeDispatcher{}
	svc := newService(repo, dispatcher)

	b, err := svc.CreateManualBooking(context.Background(), models.ManualBookingInput{
		SlotID:    "s1",
		UserID:    "u1",
		UserPhone: "+995555123456",
	})
	require.NoError(t, err)

	assert.Equal(t, models.BookingStatusConfirmed, b.Status)
	assert.True(t, b.IsManualBooking)
	assert.NotEmpty(t, b.ID)
	require.NotNil(t, b.ConfirmedAt)
	require.Len(t, repo.created, 1)

	require.Len(t, dispatcher.dispatched, 1)
	assert.Equal(t, "+995555123456", dispatcher.dispatched[0].Phone)
}

func TestCreateManualBookingValidation(t *testing.T) {
	svc := newService(&fakeSettlementRepo{}, &fakeDispatcher{})

	_, err := svc.CreateManualBooking(context.Background(), models.ManualBookingInput{UserID: "u1"})
	assert.ErrorIs(t, err, models.ErrInvalidArgument)

	_, err = svc.CreateManualBooking(context.Background(), models.ManualBookingInput{SlotID: "s1"})
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestCreateManualBookingSlotTaken(t *testing.T) {
	repo := &fakeSettlementRepo{createErr: models.ErrSlotUnavailable}
	dispatcher := &fakeDispatcher{}
	svc := newService(repo, dispatcher)

	_, err := svc.CreateManualBooking(context.Background(), models.ManualBookingInput{
		SlotID: "s1",
		UserID: "u1",
	})
	assert.ErrorIs(t, err, models.ErrSlotUnavailable)
	assert.Empty(t, dispatcher.dispatched)
}

func TestCreateManualBookingWithoutPhoneSkipsSMS(t *testing.T) {
	repo := &fakeSettlementRepo{}
	dispatcher := &fakeDispatcher{}
	svc := newService(repo, dispatcher)

	_, err := svc.CreateManualBooking(context.Background(), models.ManualBookingInput{
		SlotID: "s1",
		UserID: "u1",
	})
	require.NoError(t, err)
	assert.Empty(t, dispatcher.dispatched)
}
