package notification

import (
	"context"
	"sync"
	"testing"
	"time"

	"tillpoint/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeNotificationRepo drives subscriptions from a test-owned feed channel
// and records every external write.
type fakeNotificationRepo struct {
	mu      sync.Mutex
	feed    chan []models.RawNotification
	records []models.RawNotification
	marked  []string
	deleted []string
}

func newFakeRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{feed: make(chan []models.RawNotification)}
}

func (f *fakeNotificationRepo) Insert(n *models.Notification) error { return nil }

func (f *fakeNotificationRepo) ListByRecipient(ctx context.Context, recipientID string) ([]models.RawNotification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.RawNotification(nil), f.records...), nil
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, recipientID, notificationID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.marked = append(f.marked, notificationID)
	return nil
}

func (f *fakeNotificationRepo) Delete(ctx context.Context, recipientID, notificationID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, notificationID)
	return nil
}

func (f *fakeNotificationRepo) Watch(ctx context.Context, recipientID string) (<-chan []models.RawNotification, error) {
	return f.feed, nil
}

func (f *fakeNotificationRepo) markedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.marked...)
}

func (f *fakeNotificationRepo) deletedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

func startSub(t *testing.T, repo *fakeNotificationRepo) *Subscription {
	t.Helper()
	svc := &DefaultNotificationService{Repo: repo}
	sub, err := svc.Start(context.Background(), "staff-1")
	require.NoError(t, err)
	t.Cleanup(sub.Cancel)
	return sub
}

func TestSubscription_FirstEmissionPrimesWithoutAlert(t *testing.T) {
	repo := newFakeRepo()
	sub := startSub(t, repo)

	alerts := 0
	sub.SetOnAlert(func(View) { alerts++ })

	now := time.Now()
	repo.feed <- []models.RawNotification{
		rawAt("a", now.Add(-time.Hour), false),
		rawAt("b", now.Add(-time.Minute), true),
	}

	view := <-sub.Updates()
	assert.Len(t, view.Items, 2)
	assert.Equal(t, 1, view.UnreadCount)
	assert.Equal(t, "b", view.Items[0].ID)
	assert.Equal(t, 0, alerts)
}

func TestSubscription_AlertFiresOncePerGrowingEmission(t *testing.T) {
	repo := newFakeRepo()
	sub := startSub(t, repo)

	alerts := 0
	sub.SetOnAlert(func(View) { alerts++ })

	now := time.Now()
	base := []models.RawNotification{
		rawAt("a", now.Add(-3*time.Hour), true),
		rawAt("b", now.Add(-2*time.Hour), true),
		rawAt("c", now.Add(-1*time.Hour), true),
	}

	repo.feed <- base
	<-sub.Updates()
	assert.Equal(t, 0, alerts)

	// Two new records in one emission: still a single alert.
	grown := append(base,
		rawAt("d", now.Add(-time.Minute), false),
		rawAt("e", now.Add(-time.Second), false),
	)
	repo.feed <- grown
	view := <-sub.Updates()
	assert.Equal(t, 1, alerts)
	assert.Equal(t, 2, view.UnreadCount)

	// Unchanged snapshot: no re-alert.
	repo.feed <- grown
	<-sub.Updates()
	assert.Equal(t, 1, alerts)
}

func TestSubscription_ExpiredRecordsDeletedOnce(t *testing.T) {
	repo := newFakeRepo()
	sub := startSub(t, repo)

	now := time.Now()
	repo.feed <- []models.RawNotification{
		rawAt("fresh", now.Add(-time.Hour), false),
		rawAt("stale", now.Add(-25*time.Hour), false),
	}

	view := <-sub.Updates()
	assert.Len(t, view.Items, 1)
	assert.Equal(t, "fresh", view.Items[0].ID)

	assert.Eventually(t, func() bool {
		return len(repo.deletedIDs()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"stale"}, repo.deletedIDs())
}

func TestSubscription_CancelStopsViewMutationAndDeletes(t *testing.T) {
	repo := newFakeRepo()
	sub := startSub(t, repo)

	now := time.Now()
	repo.feed <- []models.RawNotification{rawAt("a", now.Add(-time.Hour), false)}
	<-sub.Updates()
	before := sub.View()

	sub.Cancel()

	// Deliver another snapshot after cancellation; it must be discarded.
	repo.feed <- []models.RawNotification{
		rawAt("a", now.Add(-time.Hour), false),
		rawAt("stale", now.Add(-30*time.Hour), false),
	}

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, before, sub.View())
	assert.Empty(t, repo.deletedIDs())
}

func TestSubscription_AcknowledgeAllMarksKnownUnread(t *testing.T) {
	repo := newFakeRepo()
	sub := startSub(t, repo)

	now := time.Now()
	repo.feed <- []models.RawNotification{
		rawAt("a", now.Add(-time.Hour), false),
		rawAt("b", now.Add(-2*time.Hour), true),
		rawAt("c", now.Add(-3*time.Hour), false),
	}
	<-sub.Updates()

	require.NoError(t, sub.AcknowledgeAll(context.Background()))
	assert.ElementsMatch(t, []string{"a", "c"}, repo.markedIDs())
}

func TestService_AcknowledgeAllUsesStoreSnapshot(t *testing.T) {
	repo := newFakeRepo()
	now := time.Now()
	repo.records = []models.RawNotification{
		rawAt("a", now.Add(-time.Hour), false),
		rawAt("b", now.Add(-2*time.Hour), true),
	}

	svc := &DefaultNotificationService{Repo: repo}
	require.NoError(t, svc.AcknowledgeAll(context.Background(), "staff-1"))
	assert.Equal(t, []string{"a"}, repo.markedIDs())
}
