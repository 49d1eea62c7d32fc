package notification

import (
	"context"
	"fmt"

	"tillpoint/utils"

	"firebase.google.com/go/v4/messaging"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// SendPushNotification looks up a staff member's FCM token and sends a push.
func (s *DefaultNotificationService) SendPushNotification(
	ctx context.Context,
	recipientID, title, body string,
	data map[string]string,
) error {
	staff, err := s.Staff.GetByIDWithProjection(recipientID, bson.M{"id": 1, "role": 1, "fcmToken": 1})
	if err != nil {
		return fmt.Errorf("SendPushNotification: could not find staff %s: %w", recipientID, err)
	}
	token := staff.FCMToken
	if token == "" {
		return fmt.Errorf("SendPushNotification: staff %s has no FCM token", recipientID)
	}

	if data == nil {
		data = map[string]string{}
	}
	if _, ok := data["role"]; !ok {
		data["role"] = staff.Role
	}

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	if utils.FCMClient == nil {
		return fmt.Errorf("SendPushNotification: FCM client not initialized")
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendPushNotification: failed to send FCM message: %w", err)
	}
	return nil
}

// sendAlertPush forwards the one-shot "new notification" alert to the staff
// member's device. Best-effort: failures are logged only.
func (s *DefaultNotificationService) sendAlertPush(ctx context.Context, recipientID string, view View) {
	if utils.FCMClient == nil || len(view.Items) == 0 {
		return
	}
	newest := view.Items[0]
	go func() {
		err := s.SendPushNotification(ctx, recipientID, newest.Title, newest.Body, map[string]string{
			"type": "new_notification",
		})
		if err != nil {
			zap.L().Warn("alert push failed", zap.String("recipientId", recipientID), zap.Error(err))
		}
	}()
}
