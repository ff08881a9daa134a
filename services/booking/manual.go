package booking

import (
	"context"
	"fmt"
	"time"

	settlementRepo "motoslot/database/repository/settlement"
	slotRepo "motoslot/database/repository/slot"
	"motoslot/models"
	"motoslot/services/notification"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultManualBookingService implements ManualBookingService.
type DefaultManualBookingService struct {
	Repo         settlementRepo.SettlementRepository
	Slots        slotRepo.SlotRepository
	Notification notification.ConfirmationDispatcher
	Logger       *zap.Logger
}

func (s *DefaultManualBookingService) CreateManualBooking(ctx context.Context, input models.ManualBookingInput) (*models.Booking, error) {
	if input.SlotID == "" || input.UserID == "" {
		return nil, fmt.Errorf("slotId and userId are required: %w", models.ErrInvalidArgument)
	}

	now := time.Now().UTC()
	b := &models.Booking{
		ID:              uuid.New().String(),
		SlotID:          input.SlotID,
		UserID:          input.UserID,
		UserPhone:       input.UserPhone,
		Status:          models.BookingStatusConfirmed,
		IsManualBooking: true,
		CreatedAt:       now,
		ConfirmedAt:     &now,
	}

	if err := s.Repo.CreateManualBooking(ctx, b); err != nil {
		return nil, err
	}

	s.Logger.Info("manual booking created",
		zap.String("bookingId", b.ID),
		zap.String("slotId", b.SlotID),
		zap.String("userId", b.UserID),
	)

	s.notify(ctx, b)
	return b, nil
}

// notify sends the confirmation SMS. Failures never fail the booking.
func (s *DefaultManualBookingService) notify(ctx context.Context, b *models.Booking) {
	if b.UserPhone == "" {
		return
	}
	slot, err := s.Slots.GetByID(ctx, b.SlotID)
	if err != nil {
		s.Logger.Warn("could not load slot for confirmation sms", zap.String("slotId", b.SlotID), zap.Error(err))
		return
	}
	sms := notification.BuildBookingSMS(b, slot)
	if err := s.Notification.DispatchBookingConfirmation(ctx, sms); err != nil {
		s.Logger.Warn("confirmation sms dispatch failed", zap.String("bookingId", b.ID), zap.Error(err))
	}
}
