package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"tillpoint/config"
	notificationRepo "tillpoint/database/repository/notification"
	"tillpoint/models"
	"tillpoint/services/notification"
	"tillpoint/services/order"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// InitNotificationWorker runs the async delivery worker in background.
func InitNotificationWorker(repo notificationRepo.NotificationRepository, notifSvc notification.NotificationService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(order.TypeNotificationDeliver, handleDeliverTask(repo, notifSvc))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[NotificationWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[NotificationWorker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[NotificationWorker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// handleDeliverTask persists the notification document, which wakes every
// live change-feed subscription for the recipient, then attempts an FCM push.
func handleDeliverTask(repo notificationRepo.NotificationRepository, notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.NotificationPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[DeliverHandler] 🔴 Invalid payload: %v", err)
			return err
		}

		log.Printf("[DeliverHandler] 📬 Delivering %s to staff %s: %s", p.Type, p.RecipientID, p.Title)

		doc := &models.Notification{
			ID:          uuid.NewString(),
			RecipientID: p.RecipientID,
			Type:        p.Type,
			Title:       p.Title,
			Body:        p.Body,
			Data:        p.Data,
			Read:        false,
			CreatedAt:   time.Now().UTC(),
		}
		if err := repo.Insert(doc); err != nil {
			log.Printf("[DeliverHandler] ❌ Failed to insert notification: %v", err)
			return err
		}

		// The document is persisted; a push failure must not re-run this
		// task and insert a duplicate.
		if err := notifSvc.SendPushNotification(ctx, p.RecipientID, p.Title, p.Body, p.Data); err != nil {
			log.Printf("[DeliverHandler] ⚠️ Push delivery failed for staff %s: %v", p.RecipientID, err)
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[NotificationWorker] ⚠️ Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
