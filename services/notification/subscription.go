package notification

import (
	"context"
	"sync"
	"time"

	"tillpoint/models"

	"go.uber.org/zap"
)

// Subscription is one live view of a recipient's notifications. The
// growth-detection baseline is owned here, never shared across sessions.
type Subscription struct {
	recipientID string
	svc         *DefaultNotificationService
	ctx         context.Context
	cancel      context.CancelFunc

	mu      sync.Mutex
	state   reconcileState
	view    View
	closed  bool
	onAlert func(View)

	updates chan View
}

// Start subscribes to the recipient's change feed and reconciles every
// emission into a visible view.
func (s *DefaultNotificationService) Start(ctx context.Context, recipientID string) (*Subscription, error) {
	ctx, cancel := context.WithCancel(ctx)

	feed, err := s.Repo.Watch(ctx, recipientID)
	if err != nil {
		cancel()
		return nil, err
	}

	sub := &Subscription{
		recipientID: recipientID,
		svc:         s,
		ctx:         ctx,
		cancel:      cancel,
		updates:     make(chan View, 1),
	}

	go sub.run(feed)
	return sub, nil
}

// run drains the feed until it closes. Reconcile is triggered only by feed
// emissions, never by a timer.
func (sub *Subscription) run(feed <-chan []models.RawNotification) {
	defer close(sub.updates)
	for snapshot := range feed {
		sub.apply(snapshot, time.Now())
	}
}

// apply runs one reconcile step and publishes its outcome.
func (sub *Subscription) apply(snapshot []models.RawNotification, now time.Time) {
	sub.mu.Lock()
	if sub.closed {
		sub.mu.Unlock()
		return
	}
	next, view, expired, alert := reconcile(sub.state, snapshot, now)
	sub.state = next
	sub.view = view
	onAlert := sub.onAlert
	sub.mu.Unlock()

	// Expiry deletes are fire-and-forget, one isolated task per record.
	for _, id := range expired {
		go func(id string) {
			if err := sub.svc.Repo.Delete(sub.ctx, sub.recipientID, id); err != nil {
				zap.L().Warn("expiry delete failed",
					zap.String("recipientId", sub.recipientID),
					zap.String("notificationId", id),
					zap.Error(err))
			}
		}(id)
	}

	if alert {
		if onAlert != nil {
			onAlert(view)
		}
		sub.svc.sendAlertPush(sub.ctx, sub.recipientID, view)
	}

	// Publish the latest view, replacing any unconsumed one.
	select {
	case sub.updates <- view:
	default:
		select {
		case <-sub.updates:
		default:
		}
		select {
		case sub.updates <- view:
		default:
		}
	}
}

// SetOnAlert registers the one-shot "new notification" hook, invoked at most
// once per emission when new records arrive.
func (sub *Subscription) SetOnAlert(fn func(View)) {
	sub.mu.Lock()
	sub.onAlert = fn
	sub.mu.Unlock()
}

// View returns the most recently reconciled view.
func (sub *Subscription) View() View {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	return sub.view
}

// Updates streams each reconciled view. The channel is closed once the
// subscription is cancelled or the feed is lost.
func (sub *Subscription) Updates() <-chan View {
	return sub.updates
}

// AcknowledgeAll flips every unread record in the current view to read, one
// independent write per record.
func (sub *Subscription) AcknowledgeAll(ctx context.Context) error {
	sub.mu.Lock()
	var unread []string
	for _, n := range sub.view.Items {
		if !n.Read {
			unread = append(unread, n.ID)
		}
	}
	sub.mu.Unlock()

	return sub.svc.ackRecords(ctx, sub.recipientID, unread)
}

// Cancel detaches the subscription. After Cancel returns, the view is never
// mutated again and no new expiry deletes are issued; in-flight external
// calls may still complete and their results are discarded.
func (sub *Subscription) Cancel() {
	sub.mu.Lock()
	sub.closed = true
	sub.mu.Unlock()
	sub.cancel()
}
