// File: tillpoint/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tillpoint/config"
	"tillpoint/cron"
	"tillpoint/database"
	notificationRepoPkg "tillpoint/database/repository/notification"
	orderRepoPkg "tillpoint/database/repository/order"
	staffRepoPkg "tillpoint/database/repository/staff"
	"tillpoint/handlers"
	"tillpoint/middleware"
	"tillpoint/routes"
	"tillpoint/services/access"
	"tillpoint/services/notification"
	"tillpoint/services/order"
	"tillpoint/services/staff"
	"tillpoint/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()
	utils.StartHealthMonitor(database.MongoClient, utils.AuthCacheClient, utils.OTPCacheClient, utils.NewQueueClient())

	cloudinaryStorageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	staffRepo := staffRepoPkg.NewMongoStaffRepo()
	notificationRepo := notificationRepoPkg.NewMongoNotificationRepo()
	orderRepo := orderRepoPkg.NewMongoOrderRepo()

	// Task queue client for notification delivery.
	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer queueClient.Close()

	// services.
	staffService := &staff.DefaultStaffService{
		Repo: staffRepo,
	}

	notificationService := &notification.DefaultNotificationService{
		Repo:  notificationRepo,
		Staff: staffRepo,
	}

	orderService := &order.DefaultOrderService{
		Repo:  orderRepo,
		Staff: staffRepo,
		Queue: queueClient,
	}

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		StaffRepo:     staffRepo,
		Staff:         handlers.NewStaffHandler(staffService),
		Notifications: handlers.NewNotificationHandler(notificationService),
		Orders:        handlers.NewOrderHandler(orderService),
		Storage:       handlers.NewStorageHandler(cloudinaryStorageService),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle, access.DefaultPolicy())

	// Start the notification delivery worker.
	cron.InitNotificationWorker(notificationRepo, notificationService)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
