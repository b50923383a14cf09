package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"freshnest/config"
	"freshnest/cron"
	"freshnest/database"
	bookingRepoPkg "freshnest/database/repository/booking"
	providerRepoPkg "freshnest/database/repository/provider"
	"freshnest/handlers"
	"freshnest/middleware"
	"freshnest/routes"
	"freshnest/services/availability"
	"freshnest/services/booking"
	"freshnest/services/matching"
	"freshnest/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.Default())

	// repositories.
	provRepo := providerRepoPkg.NewMongoProviderRepo()
	bookRepo := bookingRepoPkg.NewMongoBookingRepo()

	// Availability gateways: matching reads through a short-TTL cache, while the
	// confirmation path goes direct so the pre-commit re-check is always fresh.
	gatewayCfg := availability.Config{
		BaseURL: config.AppConfig.CalendarBaseURL,
		APIKey:  config.AppConfig.CalendarAPIKey,
		Timeout: time.Duration(config.AppConfig.CalendarTimeoutSec) * time.Second,
	}
	windowCache := availability.NewWindowCache(utils.GetCacheClient(),
		time.Duration(config.AppConfig.AvailabilityTTLSec)*time.Second)
	matchGateway := availability.NewHTTPGateway(gatewayCfg, windowCache)
	confirmGateway := availability.NewHTTPGateway(gatewayCfg, nil)

	// services.
	matchingService := &matching.DefaultMatchingService{
		ProviderRepo: provRepo,
		Gateway:      matchGateway,
		Weights: matching.Weights{
			Distance:     config.AppConfig.MatchDistanceWeight,
			Rating:       config.AppConfig.MatchRatingWeight,
			UrgencyBonus: config.AppConfig.MatchUrgencyBonus,
		},
		DefaultRadiusKm: config.AppConfig.DefaultRadiusKm,
	}

	taskClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	})
	defer taskClient.Close()

	bookingService := &booking.DefaultBookingSessionService{
		MatchingSvc:    matchingService,
		ConfirmGateway: confirmGateway,
		BookingRepo:    bookRepo,
		Sessions:       &booking.RedisSessionStore{Client: utils.GetSessionCacheClient()},
		TaskClient:     taskClient,
	}
	if verifier := booking.NewStripeVerifier(config.AppConfig.StripeKey); verifier != nil {
		bookingService.Payments = verifier
	}

	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	providerHandler := handlers.NewProviderHandler(provRepo)

	routes.RegisterRoutes(router, bookingHandler, providerHandler)

	// Background reconciliation worker + health monitor.
	cron.InitReconcileWorker(bookRepo, confirmGateway)
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetSessionCacheClient()},
		database.MongoClient,
	)

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
