package notificationRepo

import (
	"context"

	"tillpoint/models"
)

// NotificationRepository defines persistence operations for staff notifications.
// ListByRecipient and Watch return raw documents: createdAt normalization is the
// reconciler's job, not the store's.
type NotificationRepository interface {
	Insert(n *models.Notification) error
	ListByRecipient(ctx context.Context, recipientID string) ([]models.RawNotification, error)
	MarkRead(ctx context.Context, recipientID, notificationID string) error
	Delete(ctx context.Context, recipientID, notificationID string) error

	// Watch subscribes to the recipient's change feed. Every emission on the
	// returned channel is a full snapshot of the currently-existing records,
	// not a diff. The channel is closed when ctx is cancelled or the feed
	// cannot be re-established.
	Watch(ctx context.Context, recipientID string) (<-chan []models.RawNotification, error)
}
