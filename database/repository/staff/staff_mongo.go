package staffRepo

import (
	"context"
	"fmt"
	"time"

	"tillpoint/database"
	"tillpoint/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStaffRepo implements StaffRepository using MongoDB.
type MongoStaffRepo struct {
	coll *mongo.Collection
}

// NewMongoStaffRepo creates a new instance of StaffRepository using MongoDB.
func NewMongoStaffRepo() StaffRepository {
	coll := database.Collection("staff")
	repo := &MongoStaffRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoStaffRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "tokenHash", Value: 1}}},
		{Keys: bson.D{{Key: "role", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByIDWithProjection retrieves a staff member by its unique ID using a projection.
// Pass nil for projection to retrieve the full document.
func (r *MongoStaffRepo) GetByIDWithProjection(id string, projection bson.M) (*models.Staff, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}

	var staff models.Staff
	if err := r.coll.FindOne(ctx, bson.M{"id": id}, opts).Decode(&staff); err != nil {
		return nil, fmt.Errorf("failed to fetch staff with id %s: %w", id, err)
	}
	return &staff, nil
}

// GetByEmailWithProjection retrieves a staff member by email using a projection.
func (r *MongoStaffRepo) GetByEmailWithProjection(email string, projection bson.M) (*models.Staff, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}

	var staff models.Staff
	if err := r.coll.FindOne(ctx, bson.M{"email": email}, opts).Decode(&staff); err != nil {
		return nil, fmt.Errorf("failed to fetch staff with email %s: %w", email, err)
	}
	return &staff, nil
}

// GetByTokenHash retrieves the staff member holding the given session token hash.
func (r *MongoStaffRepo) GetByTokenHash(tokenHash string) (*models.Staff, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var staff models.Staff
	if err := r.coll.FindOne(ctx, bson.M{"tokenHash": tokenHash}).Decode(&staff); err != nil {
		return nil, fmt.Errorf("failed to fetch staff by token hash: %w", err)
	}
	return &staff, nil
}

// GetAll returns every staff member.
func (r *MongoStaffRepo) GetAll() ([]models.Staff, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff list: %w", err)
	}
	defer cursor.Close(ctx)

	var staff []models.Staff
	if err := cursor.All(ctx, &staff); err != nil {
		return nil, fmt.Errorf("failed to decode staff list: %w", err)
	}
	return staff, nil
}
