package userRepo

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

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo creates a new instance of UserRepository using MongoDB.
func NewMongoUserRepo() UserRepository {
	coll := database.DB().Collection(repository.UsersCollection)
	repo := &MongoUserRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create user indexes: %v\n", err)
	}
	return repo
}

func (r *MongoUserRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "tokenHash", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch user with id %s: %w", id, err)
	}
	return &user, nil
}

func (r *MongoUserRepo) GetByTokenHash(ctx context.Context, hash string) (*models.User, error) {
	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"tokenHash": hash}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch user by token hash: %w", err)
	}
	return &user, nil
}

func (r *MongoUserRepo) Create(ctx context.Context, user *models.User) error {
	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to insert user %s: %w", user.ID, err)
	}
	return nil
}

func (r *MongoUserRepo) Update(ctx context.Context, user *models.User) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": user.ID}, user)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", user.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("user %s not found", user.ID)
	}
	return nil
}
