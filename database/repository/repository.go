package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// Collection names for the three core record sets plus users.
const (
	SlotsCollection    = "slots"
	BookingsCollection = "bookings"
	PaymentsCollection = "payments"
	UsersCollection    = "users"
)

// maxTxnAttempts bounds how often a transaction is retried after a transient
// conflict before the error is surfaced to the caller.
const maxTxnAttempts = 3

// WithTransaction runs fn inside a MongoDB multi-document transaction.
// Transient transaction errors (write conflicts between concurrent sessions)
// are retried up to maxTxnAttempts; domain errors returned by fn abort the
// transaction and are surfaced unchanged.
func WithTransaction(ctx context.Context, client *mongo.Client, fn func(sc mongo.SessionContext) error) error {
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	var lastErr error
	for attempt := 1; attempt <= maxTxnAttempts; attempt++ {
		err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
			if err := sc.StartTransaction(); err != nil {
				return err
			}
			if err := fn(sc); err != nil {
				_ = sc.AbortTransaction(sc)
				return err
			}
			return sc.CommitTransaction(sc)
		})
		if err == nil {
			return nil
		}
		lastErr = err
		if !isTransient(err) {
			return err
		}
	}
	return fmt.Errorf("transaction failed after %d attempts: %w", maxTxnAttempts, lastErr)
}

func isTransient(err error) bool {
	var ce mongo.CommandError
	if errors.As(err, &ce) {
		return ce.HasErrorLabel("TransientTransactionError") ||
			ce.HasErrorLabel("UnknownTransactionCommitResult")
	}
	return false
}
