package models

import "time"

// Notification is one message delivered to one staff member.
type Notification struct {
	ID          string            `bson:"id" json:"id"`
	RecipientID string            `bson:"recipientId" json:"recipientId"`
	Type        string            `bson:"type" json:"type"`
	Title       string            `bson:"title" json:"title"`
	Body        string            `bson:"body" json:"body"`
	Data        map[string]string `bson:"data,omitempty" json:"data,omitempty"`
	Read        bool              `bson:"read" json:"read"`
	CreatedAt   time.Time         `bson:"createdAt" json:"createdAt"`
}

// RawNotification is a notification document as it comes off the change
// feed, before field normalization. CreatedAt may arrive as a store-native
// timestamp, a date-like string, or unix milliseconds depending on which
// client wrote the document.
type RawNotification struct {
	ID        string `bson:"id" json:"id"`
	Title     string `bson:"title,omitempty" json:"title,omitempty"`
	Body      string `bson:"body,omitempty" json:"body,omitempty"`
	CreatedAt any    `bson:"createdAt" json:"createdAt"`
	Read      bool   `bson:"read" json:"read"`
}

// NotificationPayload is the asynq task body for a queued delivery.
type NotificationPayload struct {
	RecipientID string            `json:"recipientId"`
	Type        string            `json:"type"`
	Title       string            `json:"title"`
	Body        string            `json:"body"`
	Data        map[string]string `json:"data,omitempty"`
}
