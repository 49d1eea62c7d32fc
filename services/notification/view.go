package notification

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Snapshot materializes the recipient's current view once, without a live
// subscription. Used for the initial page render; expired records still get
// their fire-and-forget deletes.
func (s *DefaultNotificationService) Snapshot(ctx context.Context, recipientID string) (View, error) {
	records, err := s.Repo.ListByRecipient(ctx, recipientID)
	if err != nil {
		return View{}, err
	}

	_, view, expired, _ := reconcile(reconcileState{}, records, time.Now())

	// The request context dies with the handler; deletes get their own.
	for _, id := range expired {
		go func(id string) {
			dctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := s.Repo.Delete(dctx, recipientID, id); err != nil {
				zap.L().Warn("expiry delete failed",
					zap.String("recipientId", recipientID),
					zap.String("notificationId", id),
					zap.Error(err))
			}
		}(id)
	}

	return view, nil
}
