package orderRepo

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

// MongoOrderRepo implements OrderRepository using MongoDB.
type MongoOrderRepo struct {
	coll     *mongo.Collection
	counters *mongo.Collection
}

// NewMongoOrderRepo creates a new instance of OrderRepository using MongoDB.
func NewMongoOrderRepo() OrderRepository {
	repo := &MongoOrderRepo{
		coll:     database.Collection("orders"),
		counters: database.Collection("counters"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoOrderRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new order document.
func (r *MongoOrderRepo) Create(order *models.Order) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// GetByID retrieves an order by its unique ID.
func (r *MongoOrderRepo) GetByID(id string) (*models.Order, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var order models.Order
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&order); err != nil {
		return nil, fmt.Errorf("failed to fetch order with id %s: %w", id, err)
	}
	return &order, nil
}

// ListByStatus returns orders in the given status, newest first.
func (r *MongoOrderRepo) ListByStatus(status string) ([]models.Order, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"status": status}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders with status %s: %w", status, err)
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus transitions an order to the given status and returns the
// updated document. The filter pins the status the caller observed, so a
// concurrent transition makes exactly one writer win.
func (r *MongoOrderRepo) UpdateStatus(id, fromStatus, toStatus string) (*models.Order, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": fromStatus}
	update := bson.M{"$set": bson.M{"status": toStatus, "updatedAt": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order models.Order
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&order); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrStatusConflict
		}
		return nil, fmt.Errorf("failed to update status of order %s: %w", id, err)
	}
	return &order, nil
}

// NextOrderNumber atomically increments and returns the daily order counter.
func (r *MongoOrderRepo) NextOrderNumber() (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": "orderNumber"}
	update := bson.M{"$inc": bson.M{"value": int64(1)}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var counter struct {
		Value int64 `bson:"value"`
	}
	if err := r.counters.FindOneAndUpdate(ctx, filter, update, opts).Decode(&counter); err != nil {
		return 0, fmt.Errorf("failed to advance order number: %w", err)
	}
	return counter.Value, nil
}
