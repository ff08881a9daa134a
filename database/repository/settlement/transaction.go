package settlementRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"motoslot/database"
	"motoslot/database/repository"
	slotRepo "motoslot/database/repository/slot"
	"motoslot/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoSettlementRepo implements SettlementRepository using MongoDB
// multi-document transactions.
type MongoSettlementRepo struct {
	slots    *mongo.Collection
	bookings *mongo.Collection
	payments *mongo.Collection
}

// NewMongoSettlementRepo creates a new instance of SettlementRepository.
func NewMongoSettlementRepo() SettlementRepository {
	db := database.DB()
	return &MongoSettlementRepo{
		slots:    db.Collection(repository.SlotsCollection),
		bookings: db.Collection(repository.BookingsCollection),
		payments: db.Collection(repository.PaymentsCollection),
	}
}

func (r *MongoSettlementRepo) client() *mongo.Client {
	return r.slots.Database().Client()
}

func (r *MongoSettlementRepo) getSlot(sc mongo.SessionContext, id string) (*models.Slot, error) {
	var slot models.Slot
	if err := r.slots.FindOne(sc, bson.M{"id": id}).Decode(&slot); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("slot %s: %w", id, models.ErrSlotNotFound)
		}
		return nil, fmt.Errorf("failed to fetch slot %s: %w", id, err)
	}
	return &slot, nil
}

func (r *MongoSettlementRepo) getBooking(sc mongo.SessionContext, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := r.bookings.FindOne(sc, bson.M{"id": id}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("booking %s: %w", id, models.ErrBookingNotFound)
		}
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &booking, nil
}

// CommitVerified drives all three records to their success states in one
// transaction. The slot occupancy re-check inside the transaction is the
// tie-break against a racing sweep: if the sweep already reclaimed the slot
// and nobody else took it, settlement re-books it; if another user holds a
// live lock or a booking, nothing is committed and ErrSlotUnavailable is
// returned for the caller to downgrade.
func (r *MongoSettlementRepo) CommitVerified(ctx context.Context, payment *models.Payment, booking *models.Booking, transactionID string, now time.Time) (*models.Payment, error) {
	err := repository.WithTransaction(ctx, r.client(), func(sc mongo.SessionContext) error {
		// Re-read the booking inside the transaction. It transitions out of
		// pending_payment exactly once; a booking already terminal (another
		// payment attempt won) must not be touched again.
		current, err := r.getBooking(sc, booking.ID)
		if err != nil {
			return err
		}
		if current.Status != models.BookingStatusPendingPayment {
			return fmt.Errorf("booking %s is %s: %w", booking.ID, current.Status, models.ErrAlreadySettled)
		}

		slot, err := r.getSlot(sc, booking.SlotID)
		if err != nil {
			return err
		}
		// A lock expired but still held by the paying user does not block a
		// same-user settlement.
		if !(slot.Status == models.SlotStatusBooked && slot.BookingID == booking.ID) {
			if err := slotRepo.CanAcquire(slot, booking.UserID, now); err != nil {
				return err
			}
		}

		if _, err := r.payments.UpdateOne(sc, bson.M{"id": payment.ID}, bson.M{
			"$set": bson.M{
				"status":        models.PaymentStatusSuccess,
				"transactionId": transactionID,
				"completedAt":   now,
			},
		}); err != nil {
			return fmt.Errorf("failed to mark payment %s success: %w", payment.ID, err)
		}

		if _, err := r.bookings.UpdateOne(sc, bson.M{"id": booking.ID}, bson.M{
			"$set": bson.M{
				"status":      models.BookingStatusConfirmed,
				"paymentId":   payment.ID,
				"confirmedAt": now,
			},
		}); err != nil {
			return fmt.Errorf("failed to confirm booking %s: %w", booking.ID, err)
		}

		if _, err := r.slots.UpdateOne(sc, bson.M{"id": booking.SlotID}, bson.M{
			"$set": bson.M{
				"status":         models.SlotStatusBooked,
				"bookedByUserId": payment.UserID,
				"bookingId":      booking.ID,
			},
			"$unset": bson.M{"lockedByUserId": "", "lockExpiresAt": ""},
		}); err != nil {
			return fmt.Errorf("failed to book slot %s: %w", booking.SlotID, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	settled := *payment
	settled.Status = models.PaymentStatusSuccess
	settled.TransactionID = transactionID
	settled.CompletedAt = &now
	return &settled, nil
}

// CommitFailed drives the payment and booking to their failure states and
// releases the slot, conditionally on the booking's user still holding its
// lock. A slot already reclaimed by the sweep or re-locked by someone else is
// left alone.
func (r *MongoSettlementRepo) CommitFailed(ctx context.Context, payment *models.Payment, booking *models.Booking, errMsg string, now time.Time) (*models.Payment, error) {
	err := repository.WithTransaction(ctx, r.client(), func(sc mongo.SessionContext) error {
		if _, err := r.payments.UpdateOne(sc, bson.M{"id": payment.ID}, bson.M{
			"$set": bson.M{
				"status":       models.PaymentStatusFailed,
				"errorMessage": errMsg,
				"completedAt":  now,
			},
		}); err != nil {
			return fmt.Errorf("failed to mark payment %s failed: %w", payment.ID, err)
		}

		// No-op for a booking already driven terminal by another attempt; a
		// confirmed booking is never reopened as expired.
		if _, err := r.bookings.UpdateOne(sc, bson.M{
			"id":     booking.ID,
			"status": models.BookingStatusPendingPayment,
		}, bson.M{
			"$set": bson.M{"status": models.BookingStatusExpired},
		}); err != nil {
			return fmt.Errorf("failed to expire booking %s: %w", booking.ID, err)
		}

		// No-op when the lock is no longer held by this booking's user.
		if _, err := r.slots.UpdateOne(sc, bson.M{
			"id":             booking.SlotID,
			"status":         models.SlotStatusLocked,
			"lockedByUserId": booking.UserID,
		}, bson.M{
			"$set":   bson.M{"status": models.SlotStatusAvailable},
			"$unset": bson.M{"lockedByUserId": "", "lockExpiresAt": ""},
		}); err != nil {
			return fmt.Errorf("failed to release slot %s: %w", booking.SlotID, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	settled := *payment
	settled.Status = models.PaymentStatusFailed
	settled.ErrorMessage = errMsg
	settled.CompletedAt = &now
	return &settled, nil
}

// CreateManualBooking inserts the confirmed booking and books its slot
// atomically. Unlike the payment flow there is no lock phase; the occupancy
// check and the write happen in the same transaction.
func (r *MongoSettlementRepo) CreateManualBooking(ctx context.Context, booking *models.Booking) error {
	return repository.WithTransaction(ctx, r.client(), func(sc mongo.SessionContext) error {
		slot, err := r.getSlot(sc, booking.SlotID)
		if err != nil {
			return err
		}
		if err := slotRepo.CanAcquire(slot, booking.UserID, time.Now().UTC()); err != nil {
			return err
		}

		if _, err := r.bookings.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("failed to insert booking %s: %w", booking.ID, err)
		}

		if _, err := r.slots.UpdateOne(sc, bson.M{"id": booking.SlotID}, bson.M{
			"$set": bson.M{
				"status":         models.SlotStatusBooked,
				"bookedByUserId": booking.UserID,
				"bookingId":      booking.ID,
			},
			"$unset": bson.M{"lockedByUserId": "", "lockExpiresAt": ""},
		}); err != nil {
			return fmt.Errorf("failed to book slot %s: %w", booking.SlotID, err)
		}

		return nil
	})
}

// ExpireStale runs one sweep pass as a single transaction. Bookings stuck in
// pending_payment past their deadline expire, with their slots released per
// CanReclaim; locked slots whose TTL elapsed without any booking are released
// as well. Reads inside the transaction observe its own writes, so the second
// query never double-counts slots released by the first.
func (r *MongoSettlementRepo) ExpireStale(ctx context.Context, now time.Time) (SweepResult, error) {
	var result SweepResult
	err := repository.WithTransaction(ctx, r.client(), func(sc mongo.SessionContext) error {
		result = SweepResult{}

		cursor, err := r.bookings.Find(sc, bson.M{
			"status":    models.BookingStatusPendingPayment,
			"expiresAt": bson.M{"$lte": now},
		})
		if err != nil {
			return fmt.Errorf("failed to query expired bookings: %w", err)
		}
		var stale []models.Booking
		if err := cursor.All(sc, &stale); err != nil {
			return fmt.Errorf("failed to decode expired bookings: %w", err)
		}

		for _, b := range stale {
			if _, err := r.bookings.UpdateOne(sc, bson.M{"id": b.ID}, bson.M{
				"$set": bson.M{"status": models.BookingStatusExpired},
			}); err != nil {
				return fmt.Errorf("failed to expire booking %s: %w", b.ID, err)
			}
			result.ExpiredBookings++

			slot, err := r.getSlot(sc, b.SlotID)
			if errors.Is(err, models.ErrSlotNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			if !CanReclaim(slot, &b, now) {
				continue
			}
			if _, err := r.slots.UpdateOne(sc, bson.M{"id": b.SlotID}, bson.M{
				"$set":   bson.M{"status": models.SlotStatusAvailable},
				"$unset": bson.M{"lockedByUserId": "", "lockExpiresAt": "", "bookedByUserId": "", "bookingId": ""},
			}); err != nil {
				return fmt.Errorf("failed to release slot %s: %w", b.SlotID, err)
			}
		}

		res, err := r.slots.UpdateMany(sc, bson.M{
			"status":        models.SlotStatusLocked,
			"lockExpiresAt": bson.M{"$lte": now},
		}, bson.M{
			"$set":   bson.M{"status": models.SlotStatusAvailable},
			"$unset": bson.M{"lockedByUserId": "", "lockExpiresAt": ""},
		})
		if err != nil {
			return fmt.Errorf("failed to release expired locks: %w", err)
		}
		result.ReleasedLocks = int(res.ModifiedCount)

		return nil
	})
	if err != nil {
		return SweepResult{}, err
	}
	return result, nil
}
