package notification

import (
	"sort"
	"time"

	"tillpoint/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecordTTL is how long a notification stays visible before it is purged.
const RecordTTL = 24 * time.Hour

// Placeholder text for records that arrive without title or body. Malformed
// records are defaulted, never dropped, so the view keeps one entry per
// surviving record.
const (
	placeholderTitle = "Notification"
	placeholderBody  = "You have a new notification."
)

// View is the derived, render-ready state of one recipient's notifications.
type View struct {
	Items       []models.Notification `json:"items"`
	UnreadCount int                   `json:"unreadCount"`
}

// reconcileState is the growth-detection baseline carried between emissions.
// It lives on the Subscription that owns it, one instance per Start call.
type reconcileState struct {
	primed    bool
	lastCount int
}

// normalizeCreatedAt converts the store's assorted createdAt encodings into
// one comparable instant.
func normalizeCreatedAt(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case primitive.DateTime:
		return t.Time(), true
	case string:
		for _, layout := range []string{
			time.RFC3339Nano,
			time.RFC3339,
			"2006-01-02T15:04:05",
			"2006-01-02 15:04:05",
		} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
		return time.Time{}, false
	case int64:
		return time.UnixMilli(t), true
	case float64:
		return time.UnixMilli(int64(t)), true
	default:
		return time.Time{}, false
	}
}

// normalizeRecord maps a raw feed document into a Notification, substituting
// placeholder text for missing fields.
func normalizeRecord(raw models.RawNotification, now time.Time) models.Notification {
	n := models.Notification{
		ID:    raw.ID,
		Title: raw.Title,
		Body:  raw.Body,
		Read:  raw.Read,
	}
	if n.Title == "" {
		n.Title = placeholderTitle
	}
	if n.Body == "" {
		n.Body = placeholderBody
	}
	if created, ok := normalizeCreatedAt(raw.CreatedAt); ok {
		n.CreatedAt = created
	} else {
		// A record with an unreadable timestamp is treated as brand new
		// rather than silently expired.
		n.CreatedAt = now
	}
	return n
}

// reconcile converts one raw snapshot into the next visible view. Pure: the
// caller owns the state and issues the expiry deletes.
//
// Returns the next state, the view, the IDs of expired records (exactly one
// per excluded record), and whether a one-shot "new notification" alert
// should fire for this emission.
func reconcile(prev reconcileState, snapshot []models.RawNotification, now time.Time) (reconcileState, View, []string, bool) {
	items := make([]models.Notification, 0, len(snapshot))
	var expired []string

	for _, raw := range snapshot {
		n := normalizeRecord(raw, now)
		if now.Sub(n.CreatedAt) >= RecordTTL {
			expired = append(expired, n.ID)
			continue
		}
		items = append(items, n)
	}

	// Newest first; stable so same-instant records keep arrival order.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	alert := prev.primed && len(items) > prev.lastCount

	unread := 0
	for _, n := range items {
		if !n.Read {
			unread++
		}
	}

	next := reconcileState{primed: true, lastCount: len(items)}
	return next, View{Items: items, UnreadCount: unread}, expired, alert
}
