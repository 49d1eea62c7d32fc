package notification

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// AcknowledgeAll flips every currently-known unread record for the recipient
// to read. "Currently known" is the store's latest snapshot; callers holding
// a live Subscription should prefer its AcknowledgeAll, which uses the
// already-reconciled view.
func (s *DefaultNotificationService) AcknowledgeAll(ctx context.Context, recipientID string) error {
	records, err := s.Repo.ListByRecipient(ctx, recipientID)
	if err != nil {
		return err
	}

	var unread []string
	for _, r := range records {
		if !r.Read {
			unread = append(unread, r.ID)
		}
	}
	return s.ackRecords(ctx, recipientID, unread)
}

// ackRecords issues one independent read-acknowledgment write per record.
// Writes are not atomic across records: a partial failure leaves some flipped
// and others not, which the next feed emission reconciles. Failures are
// logged, never retried, never surfaced.
func (s *DefaultNotificationService) ackRecords(ctx context.Context, recipientID string, ids []string) error {
	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if err := s.Repo.MarkRead(ctx, recipientID, id); err != nil {
				zap.L().Warn("read acknowledgment failed",
					zap.String("recipientId", recipientID),
					zap.String("notificationId", id),
					zap.Error(err))
			}
		}(id)
	}
	wg.Wait()
	return nil
}
