package payment

import (
	"context"
	"fmt"
	"time"

	bookingRepo "motoslot/database/repository/booking"
	paymentRepo "motoslot/database/repository/payment"
	"motoslot/models"
	"motoslot/services/gateway"
	"motoslot/services/reservation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultPaymentOrchestrator implements PaymentOrchestrator.
//
// Step order is load-bearing: the slot lock is taken before the gateway call
// so a redirect URL is never handed out for a slot the user cannot get, and
// the gateway call stays outside any data transaction. If anything after the
// lock fails, the lock is released again (the saga's single compensating
// step) so the slot is never stranded.
type DefaultPaymentOrchestrator struct {
	Bookings    bookingRepo.BookingRepository
	Payments    paymentRepo.PaymentRepository
	Reservation reservation.ReservationManager
	Gateways    *gateway.Registry
	LockTTL     time.Duration
	Logger      *zap.Logger
}

func (o *DefaultPaymentOrchestrator) CreatePaymentIntent(ctx context.Context, callerID string, req models.PaymentIntentRequest) (*models.Payment, error) {
	if req.BookingID == "" || req.UserID == "" || req.Amount <= 0 || req.Provider == "" {
		return nil, fmt.Errorf("bookingId, userId, amount and provider are required: %w", models.ErrInvalidArgument)
	}
	if req.Currency == "" {
		req.Currency = "GEL"
	}

	gw, err := o.Gateways.For(req.Provider)
	if err != nil {
		return nil, err
	}

	booking, err := o.Bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if callerID != req.UserID && callerID != booking.UserID {
		return nil, fmt.Errorf("caller %s may not pay for booking %s: %w", callerID, booking.ID, models.ErrPermissionDenied)
	}

	if _, err := o.Reservation.AcquireLock(ctx, booking.SlotID, req.UserID, o.LockTTL); err != nil {
		return nil, err
	}

	paymentID := uuid.New().String()
	paymentURL, err := gw.CreateSession(ctx, paymentID, req.Amount, req.Currency, req.CallbackURL)
	if err != nil {
		o.compensate(ctx, booking.SlotID, req.UserID)
		return nil, err
	}

	p := &models.Payment{
		ID:         paymentID,
		BookingID:  req.BookingID,
		UserID:     req.UserID,
		Amount:     req.Amount,
		Currency:   req.Currency,
		Provider:   req.Provider,
		Status:     models.PaymentStatusPending,
		PaymentURL: paymentURL,
		CreatedAt:  time.Now().UTC(),
	}
	if err := o.Payments.Create(ctx, p); err != nil {
		o.compensate(ctx, booking.SlotID, req.UserID)
		return nil, err
	}

	o.Logger.Info("payment intent created",
		zap.String("paymentId", p.ID),
		zap.String("bookingId", p.BookingID),
		zap.String("provider", p.Provider),
		zap.Float64("amount", p.Amount),
	)
	return p, nil
}

// compensate releases the slot lock taken earlier in the flow. Failures here
// are logged only; the lock TTL and the sweep still reclaim the slot.
func (o *DefaultPaymentOrchestrator) compensate(ctx context.Context, slotID, userID string) {
	if err := o.Reservation.Release(ctx, slotID, userID); err != nil {
		o.Logger.Error("compensating lock release failed",
			zap.String("slotId", slotID),
			zap.String("userId", userID),
			zap.Error(err),
		)
	}
}
