package settlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "motoslot/database/repository/booking"
	paymentRepo "motoslot/database/repository/payment"
	settlementRepo "motoslot/database/repository/settlement"
	slotRepo "motoslot/database/repository/slot"
	"motoslot/models"
	"motoslot/services/gateway"
	"motoslot/services/notification"

	"go.uber.org/zap"
)

// DefaultSettlementEngine implements SettlementEngine. The bank verification
// call happens before (and outside of) the settlement transaction so the
// transaction never waits on the network.
type DefaultSettlementEngine struct {
	Payments     paymentRepo.PaymentRepository
	Bookings     bookingRepo.BookingRepository
	Slots        slotRepo.SlotRepository
	Repo         settlementRepo.SettlementRepository
	Gateways     *gateway.Registry
	Notification notification.ConfirmationDispatcher
	Logger       *zap.Logger
}

func (e *DefaultSettlementEngine) Settle(ctx context.Context, paymentID, transactionID string) (*models.Payment, error) {
	if paymentID == "" {
		return nil, fmt.Errorf("payment id is required: %w", models.ErrInvalidArgument)
	}

	p, err := e.Payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if p.Settled() {
		// Duplicate callback delivery; return the stored result unchanged.
		e.Logger.Info("settle replayed for settled payment",
			zap.String("paymentId", p.ID),
			zap.String("status", p.Status),
		)
		return p, nil
	}

	booking, err := e.Bookings.GetByID(ctx, p.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingStatusPendingPayment {
		// Another payment attempt already drove this booking to a terminal
		// state. A booking transitions out of pending exactly once; this
		// attempt is superseded and must not touch booking or slot.
		e.Logger.Info("settle superseded by an earlier settlement",
			zap.String("paymentId", p.ID),
			zap.String("bookingId", booking.ID),
			zap.String("bookingStatus", booking.Status),
		)
		return p, nil
	}

	gw, err := e.Gateways.For(p.Provider)
	if err != nil {
		return nil, err
	}
	verified, err := gw.Verify(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if !verified {
		return e.commitFailed(ctx, p, booking, "Payment verification failed.", now)
	}

	settled, err := e.Repo.CommitVerified(ctx, p, booking, transactionID, now)
	if errors.Is(err, models.ErrAlreadySettled) {
		// The booking reached a terminal state between the read above and
		// the transaction. Same outcome as the superseded path.
		e.Logger.Warn("verified settlement superseded inside the transaction",
			zap.String("paymentId", p.ID),
			zap.String("bookingId", booking.ID),
		)
		return p, nil
	}
	if errors.Is(err, models.ErrSlotUnavailable) {
		// The lock expired, the sweep reclaimed the slot and someone else
		// took it before this settlement arrived. Payment success is never
		// committed without the slot.
		e.Logger.Warn("verified settlement lost the slot",
			zap.String("paymentId", p.ID),
			zap.String("slotId", booking.SlotID),
		)
		return e.commitFailed(ctx, p, booking, "Slot is no longer available.", now)
	}
	if err != nil {
		return nil, err
	}

	e.Logger.Info("payment settled",
		zap.String("paymentId", settled.ID),
		zap.String("bookingId", booking.ID),
		zap.String("transactionId", transactionID),
	)
	e.notify(ctx, booking)
	return settled, nil
}

func (e *DefaultSettlementEngine) commitFailed(ctx context.Context, p *models.Payment, booking *models.Booking, errMsg string, now time.Time) (*models.Payment, error) {
	settled, err := e.Repo.CommitFailed(ctx, p, booking, errMsg, now)
	if err != nil {
		return nil, err
	}
	e.Logger.Info("payment failed",
		zap.String("paymentId", settled.ID),
		zap.String("bookingId", booking.ID),
		zap.String("reason", errMsg),
	)
	return settled, nil
}

// notify queues the confirmation SMS after the settlement commit. Delivery is
// best-effort and never affects the committed settlement.
func (e *DefaultSettlementEngine) notify(ctx context.Context, booking *models.Booking) {
	if booking.UserPhone == "" {
		return
	}
	slot, err := e.Slots.GetByID(ctx, booking.SlotID)
	if err != nil {
		e.Logger.Warn("could not load slot for confirmation sms", zap.String("slotId", booking.SlotID), zap.Error(err))
		return
	}
	sms := notification.BuildBookingSMS(booking, slot)
	if err := e.Notification.DispatchBookingConfirmation(ctx, sms); err != nil {
		e.Logger.Warn("confirmation sms dispatch failed", zap.String("bookingId", booking.ID), zap.Error(err))
	}
}
