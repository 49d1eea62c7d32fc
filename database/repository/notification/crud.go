package notificationRepo

import (
	"context"
	"fmt"
	"time"

	"tillpoint/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Insert stores a new notification document.
func (r *MongoNotificationRepo) Insert(n *models.Notification) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	_, err := r.coll.InsertOne(ctx, n)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

// ListByRecipient returns every notification document for one staff member.
func (r *MongoNotificationRepo) ListByRecipient(ctx context.Context, recipientID string) ([]models.RawNotification, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"recipientId": recipientID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications for %s: %w", recipientID, err)
	}
	defer cursor.Close(ctx)

	var records []models.RawNotification
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode notifications for %s: %w", recipientID, err)
	}
	return records, nil
}

// MarkRead flips a single notification to read.
func (r *MongoNotificationRepo) MarkRead(ctx context.Context, recipientID, notificationID string) error {
	filter := bson.M{"recipientId": recipientID, "id": notificationID}
	update := bson.M{"$set": bson.M{"read": true}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to mark notification %s read: %w", notificationID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("notification %s not found for recipient %s", notificationID, recipientID)
	}
	return nil
}

// Delete removes a single notification document.
func (r *MongoNotificationRepo) Delete(ctx context.Context, recipientID, notificationID string) error {
	filter := bson.M{"recipientId": recipientID, "id": notificationID}
	if _, err := r.coll.DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("failed to delete notification %s: %w", notificationID, err)
	}
	return nil
}
