package notificationRepo

import (
	"context"

	"tillpoint/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Watch opens a change stream on the notifications collection and emits a
// full snapshot of the recipient's documents on every collection event.
// Delete events carry no full document, so the stream is left unfiltered and
// each event triggers a per-recipient re-query; consumers only ever see
// complete snapshots.
func (r *MongoNotificationRepo) Watch(ctx context.Context, recipientID string) (<-chan []models.RawNotification, error) {
	stream, err := r.coll.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return nil, err
	}

	out := make(chan []models.RawNotification, 1)

	go func() {
		defer close(out)
		defer func() { stream.Close(context.Background()) }()

		if !r.emitSnapshot(ctx, recipientID, out) {
			return
		}

		retried := false
		for {
			for stream.Next(ctx) {
				retried = false
				if !r.emitSnapshot(ctx, recipientID, out) {
					return
				}
			}
			if ctx.Err() != nil {
				return
			}

			// Stream broke: one immediate resubscribe attempt, then give up.
			if retried {
				zap.L().Error("notification change stream lost", zap.String("recipientId", recipientID), zap.Error(stream.Err()))
				return
			}
			zap.L().Warn("notification change stream interrupted, resubscribing", zap.String("recipientId", recipientID), zap.Error(stream.Err()))
			stream.Close(context.Background())

			next, err := r.coll.Watch(ctx, mongo.Pipeline{})
			if err != nil {
				zap.L().Error("failed to reopen notification change stream", zap.String("recipientId", recipientID), zap.Error(err))
				return
			}
			stream = next
			retried = true

			if !r.emitSnapshot(ctx, recipientID, out) {
				return
			}
		}
	}()

	return out, nil
}

// emitSnapshot re-queries the recipient's documents and pushes them to out.
// Returns false once ctx is done or the query fails.
func (r *MongoNotificationRepo) emitSnapshot(ctx context.Context, recipientID string, out chan<- []models.RawNotification) bool {
	records, err := r.ListByRecipient(ctx, recipientID)
	if err != nil {
		if ctx.Err() == nil {
			zap.L().Warn("failed to load notification snapshot", zap.String("recipientId", recipientID), zap.Error(err))
		}
		return false
	}

	select {
	case out <- records:
		return true
	case <-ctx.Done():
		return false
	}
}
