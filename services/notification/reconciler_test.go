package notification

import (
	"testing"
	"time"

	"tillpoint/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func rawAt(id string, createdAt any, read bool) models.RawNotification {
	return models.RawNotification{
		ID:        id,
		Title:     "Order ready",
		Body:      "Order #12 is ready for pickup.",
		CreatedAt: createdAt,
		Read:      read,
	}
}

func TestReconcile_SortsDescending(t *testing.T) {
	now := time.Now()
	snapshot := []models.RawNotification{
		rawAt("b", now.Add(-2*time.Hour), false),
		rawAt("c", now.Add(-1*time.Minute), false),
		rawAt("a", now.Add(-5*time.Hour), false),
	}

	_, view, expired, _ := reconcile(reconcileState{}, snapshot, now)

	assert.Empty(t, expired)
	ids := []string{view.Items[0].ID, view.Items[1].ID, view.Items[2].ID}
	assert.Equal(t, []string{"c", "b", "a"}, ids)
}

func TestReconcile_TiesKeepArrivalOrder(t *testing.T) {
	now := time.Now()
	same := now.Add(-time.Hour)
	snapshot := []models.RawNotification{
		rawAt("first", same, false),
		rawAt("second", same, false),
	}

	_, view, _, _ := reconcile(reconcileState{}, snapshot, now)

	assert.Equal(t, "first", view.Items[0].ID)
	assert.Equal(t, "second", view.Items[1].ID)
}

func TestReconcile_ExpiresOldRecords(t *testing.T) {
	now := time.Now()
	snapshot := []models.RawNotification{
		rawAt("fresh", now.Add(-23*time.Hour), false),
		rawAt("stale", now.Add(-25*time.Hour), false),
		rawAt("boundary", now.Add(-RecordTTL), false),
	}

	_, view, expired, _ := reconcile(reconcileState{}, snapshot, now)

	assert.Len(t, view.Items, 1)
	assert.Equal(t, "fresh", view.Items[0].ID)
	assert.ElementsMatch(t, []string{"stale", "boundary"}, expired)
}

func TestReconcile_UnreadCount(t *testing.T) {
	now := time.Now()
	snapshot := []models.RawNotification{
		rawAt("a", now.Add(-time.Hour), true),
		rawAt("b", now.Add(-time.Minute), false),
		rawAt("c", now.Add(-2*time.Hour), false),
	}

	_, view, _, _ := reconcile(reconcileState{}, snapshot, now)

	assert.Equal(t, 2, view.UnreadCount)
}

func TestReconcile_AlertOnlyOnGrowth(t *testing.T) {
	now := time.Now()
	three := []models.RawNotification{
		rawAt("a", now.Add(-time.Hour), true),
		rawAt("b", now.Add(-2*time.Hour), true),
		rawAt("c", now.Add(-3*time.Hour), true),
	}

	// First emission primes the baseline, never alerts.
	state, _, _, alert := reconcile(reconcileState{}, three, now)
	assert.False(t, alert)

	// Unchanged snapshot: idempotent, no re-alert.
	state, _, _, alert = reconcile(state, three, now)
	assert.False(t, alert)

	// One new unread record: exactly one alert for the emission.
	four := append(three, rawAt("d", now.Add(-time.Minute), false))
	state, view, _, alert := reconcile(state, four, now)
	assert.True(t, alert)
	assert.Equal(t, 1, view.UnreadCount)

	// Same snapshot again: no second alert.
	_, _, _, alert = reconcile(state, four, now)
	assert.False(t, alert)
}

func TestReconcile_NoAlertOnShrink(t *testing.T) {
	now := time.Now()
	state := reconcileState{primed: true, lastCount: 3}
	snapshot := []models.RawNotification{
		rawAt("a", now.Add(-time.Hour), false),
	}

	_, _, _, alert := reconcile(state, snapshot, now)
	assert.False(t, alert)
}

func TestReconcile_MalformedRecordsDefaulted(t *testing.T) {
	now := time.Now()
	snapshot := []models.RawNotification{
		{ID: "bare", CreatedAt: now.Add(-time.Minute)},
	}

	_, view, _, _ := reconcile(reconcileState{}, snapshot, now)

	assert.Len(t, view.Items, 1)
	assert.Equal(t, placeholderTitle, view.Items[0].Title)
	assert.Equal(t, placeholderBody, view.Items[0].Body)
}

func TestReconcile_UnreadableTimestampKept(t *testing.T) {
	now := time.Now()
	snapshot := []models.RawNotification{
		rawAt("odd", "not a date", false),
	}

	_, view, expired, _ := reconcile(reconcileState{}, snapshot, now)

	assert.Empty(t, expired)
	assert.Len(t, view.Items, 1)
	assert.Equal(t, now, view.Items[0].CreatedAt)
}

func TestNormalizeCreatedAt(t *testing.T) {
	ref := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)

	got, ok := normalizeCreatedAt(ref)
	assert.True(t, ok)
	assert.True(t, got.Equal(ref))

	got, ok = normalizeCreatedAt(primitive.NewDateTimeFromTime(ref))
	assert.True(t, ok)
	assert.True(t, got.Equal(ref))

	got, ok = normalizeCreatedAt("2025-06-01T12:30:00Z")
	assert.True(t, ok)
	assert.True(t, got.Equal(ref))

	got, ok = normalizeCreatedAt("2025-06-01T12:30:00")
	assert.True(t, ok)
	assert.True(t, got.Equal(ref))

	got, ok = normalizeCreatedAt(ref.UnixMilli())
	assert.True(t, ok)
	assert.True(t, got.Equal(ref))

	got, ok = normalizeCreatedAt(float64(ref.UnixMilli()))
	assert.True(t, ok)
	assert.True(t, got.Equal(ref))

	_, ok = normalizeCreatedAt("yesterday")
	assert.False(t, ok)

	_, ok = normalizeCreatedAt(nil)
	assert.False(t, ok)
}

// Mixed-encoding snapshots must sort on the normalized instant.
func TestReconcile_MixedTimestampEncodings(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	snapshot := []models.RawNotification{
		rawAt("oldest", "2025-06-01T09:00:00Z", false),
		rawAt("newest", primitive.NewDateTimeFromTime(now.Add(-time.Minute)), false),
		rawAt("middle", now.Add(-time.Hour), false),
	}

	_, view, _, _ := reconcile(reconcileState{}, snapshot, now)

	ids := []string{view.Items[0].ID, view.Items[1].ID, view.Items[2].ID}
	assert.Equal(t, []string{"newest", "middle", "oldest"}, ids)
}
