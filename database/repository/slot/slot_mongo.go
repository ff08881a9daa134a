package slotRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"motoslot/database"
	"motoslot/database/repository"
	"motoslot/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSlotRepo implements SlotRepository using MongoDB.
type MongoSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoSlotRepo creates a new instance of SlotRepository using MongoDB.
func NewMongoSlotRepo() SlotRepository {
	coll := database.DB().Collection(repository.SlotsCollection)
	repo := &MongoSlotRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create slot indexes: %v\n", err)
	}
	return repo
}

// ensureIndexes creates indexes for fields used by lock acquisition and the
// reconciliation sweep.
func (r *MongoSlotRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "lockExpiresAt", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoSlotRepo) GetByID(ctx context.Context, id string) (*models.Slot, error) {
	var slot models.Slot
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&slot); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("slot %s: %w", id, models.ErrSlotNotFound)
		}
		return nil, fmt.Errorf("failed to fetch slot %s: %w", id, err)
	}
	return &slot, nil
}

func (r *MongoSlotRepo) Create(ctx context.Context, slot *models.Slot) error {
	if _, err := r.coll.InsertOne(ctx, slot); err != nil {
		return fmt.Errorf("failed to insert slot %s: %w", slot.ID, err)
	}
	return nil
}

// AcquireLock performs the read-evaluate-write cycle for a slot lock inside a
// single transaction, so no two concurrent callers can both succeed for the
// same slot.
func (r *MongoSlotRepo) AcquireLock(ctx context.Context, slotID, userID string, ttl time.Duration) (*models.Slot, error) {
	now := time.Now().UTC()
	expiry := now.Add(ttl)

	var locked models.Slot
	err := repository.WithTransaction(ctx, r.coll.Database().Client(), func(sc mongo.SessionContext) error {
		var slot models.Slot
		if err := r.coll.FindOne(sc, bson.M{"id": slotID}).Decode(&slot); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return fmt.Errorf("slot %s: %w", slotID, models.ErrSlotNotFound)
			}
			return fmt.Errorf("failed to fetch slot %s: %w", slotID, err)
		}

		if err := CanAcquire(&slot, userID, now); err != nil {
			return err
		}

		update := bson.M{
			"$set": bson.M{
				"status":         models.SlotStatusLocked,
				"lockedByUserId": userID,
				"lockExpiresAt":  expiry,
			},
		}
		if _, err := r.coll.UpdateOne(sc, bson.M{"id": slotID}, update); err != nil {
			return fmt.Errorf("failed to lock slot %s: %w", slotID, err)
		}

		locked = slot
		locked.Status = models.SlotStatusLocked
		locked.LockedBy = userID
		locked.LockExpiresAt = &expiry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &locked, nil
}

// Release is a single conditional document update; MongoDB applies it
// atomically, so no transaction is needed. When the filter does not match
// (already available, re-locked by someone else, or booked) this is a no-op.
func (r *MongoSlotRepo) Release(ctx context.Context, slotID, expectedUserID string) error {
	filter := bson.M{
		"id":             slotID,
		"status":         models.SlotStatusLocked,
		"lockedByUserId": expectedUserID,
	}
	update := bson.M{
		"$set":   bson.M{"status": models.SlotStatusAvailable},
		"$unset": bson.M{"lockedByUserId": "", "lockExpiresAt": ""},
	}
	if _, err := r.coll.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to release slot %s: %w", slotID, err)
	}
	return nil
}
