package notification

import (
	"context"

	notificationRepo "tillpoint/database/repository/notification"
	staffRepo "tillpoint/database/repository/staff"
)

// NotificationService maintains live per-recipient notification views and
// sends FCM pushes.
type NotificationService interface {
	// Start begins listening to the recipient's change feed. Cancel the
	// returned subscription to detach: no further view mutation, no further
	// expiry deletes.
	Start(ctx context.Context, recipientID string) (*Subscription, error)

	// Snapshot materializes the recipient's current view once, without a
	// live subscription.
	Snapshot(ctx context.Context, recipientID string) (View, error)

	// AcknowledgeAll flips every currently-known unread record to read, one
	// independent best-effort write per record. Partial failure is not rolled
	// back; the next change-feed emission is ground truth.
	AcknowledgeAll(ctx context.Context, recipientID string) error

	// SendPushNotification looks up the staff member's FCM token and sends a push.
	SendPushNotification(ctx context.Context, recipientID, title, body string, data map[string]string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Repo  notificationRepo.NotificationRepository
	Staff staffRepo.StaffRepository
}
