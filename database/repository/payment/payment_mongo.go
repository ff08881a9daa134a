package paymentRepo

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

// MongoPaymentRepo implements PaymentRepository using MongoDB.
type MongoPaymentRepo struct {
	coll *mongo.Collection
}

// NewMongoPaymentRepo creates a new instance of PaymentRepository using MongoDB.
func NewMongoPaymentRepo() PaymentRepository {
	coll := database.DB().Collection(repository.PaymentsCollection)
	repo := &MongoPaymentRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create payment indexes: %v\n", err)
	}
	return repo
}

func (r *MongoPaymentRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "bookingId", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoPaymentRepo) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&payment); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("payment %s: %w", id, models.ErrPaymentNotFound)
		}
		return nil, fmt.Errorf("failed to fetch payment %s: %w", id, err)
	}
	return &payment, nil
}

func (r *MongoPaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	if _, err := r.coll.InsertOne(ctx, payment); err != nil {
		return fmt.Errorf("failed to insert payment %s: %w", payment.ID, err)
	}
	return nil
}
