// File: motoslot/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"motoslot/config"
	"motoslot/cron"
	"motoslot/database"
	bookingRepoPkg "motoslot/database/repository/booking"
	paymentRepoPkg "motoslot/database/repository/payment"
	settlementRepoPkg "motoslot/database/repository/settlement"
	slotRepoPkg "motoslot/database/repository/slot"
	userRepoPkg "motoslot/database/repository/user"
	"motoslot/handlers"
	"motoslot/middleware"
	"motoslot/routes"
	bookingsvc "motoslot/services/booking"
	"motoslot/services/gateway"
	"motoslot/services/notification"
	paymentsvc "motoslot/services/payment"
	"motoslot/services/reservation"
	"motoslot/services/settlement"
	"motoslot/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	slotRepo := slotRepoPkg.NewMongoSlotRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	paymentRepo := paymentRepoPkg.NewMongoPaymentRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()
	settlementRepo := settlementRepoPkg.NewMongoSettlementRepo()

	// SMS delivery: enqueue on redis, deliver from the background worker.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()
	dispatcher := notification.NewAsynqDispatcher(asynqClient)
	smsSender := notification.NewSMSOfficeSender(
		config.AppConfig.SMSBaseURL,
		config.AppConfig.SMSAPIKey,
		config.AppConfig.SMSSender,
		nil,
		logger,
	)
	cron.InitSMSWorker(smsSender)

	// services.
	reservationManager := reservation.NewReservationManager(slotRepo, logger)
	gatewayRegistry := gateway.NewRegistry(logger)

	orchestrator := &paymentsvc.DefaultPaymentOrchestrator{
		Bookings:    bookingRepo,
		Payments:    paymentRepo,
		Reservation: reservationManager,
		Gateways:    gatewayRegistry,
		LockTTL:     config.LockTTL(),
		Logger:      logger,
	}

	settlementEngine := &settlement.DefaultSettlementEngine{
		Payments:     paymentRepo,
		Bookings:     bookingRepo,
		Slots:        slotRepo,
		Repo:         settlementRepo,
		Gateways:     gatewayRegistry,
		Notification: dispatcher,
		Logger:       logger,
	}

	manualBookingService := &bookingsvc.DefaultManualBookingService{
		Repo:         settlementRepo,
		Slots:        slotRepo,
		Notification: dispatcher,
		Logger:       logger,
	}

	// Assemble the handler bundle and register routes.
	handlerBundle := &routes.HandlerBundle{
		UserRepo:            userRepo,
		PaymentHandler:      handlers.NewPaymentHandler(orchestrator, settlementEngine),
		BookingHandler:      handlers.NewBookingHandler(manualBookingService),
		NotificationHandler: handlers.NewNotificationHandler(dispatcher),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Reconciliation sweep: reclaims slots abandoned mid-payment on a fixed
	// interval, independent of client behavior.
	sweepCtx, cancelSweep := context.WithCancel(context.Background())
	sweeper := cron.StartSweep(sweepCtx, cron.NewReconciler(settlementRepo, logger))

	utils.StartHealthMonitor([]*redis.Client{utils.GetAuthCacheClient()}, database.MongoClient)

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

	cancelSweep()
	sweepStop := sweeper.Stop()
	<-sweepStop.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
