// File: fixify/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"fixify/config"
	"fixify/handlers"
	"fixify/middleware"
	"fixify/routes"
	"fixify/services/booking"
	"fixify/services/geo"
	"fixify/services/notification"
	"fixify/services/scheduling"
	"fixify/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitSessionCache()
	utils.InitLockCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Engine collaborators.
	bookingStore := booking.NewMemoryBookingStore()
	dayGuard := scheduling.NewRedisDayGuard(utils.GetLockCacheClient())
	geocoder := geo.NewHTTPGeocoder(
		config.AppConfig.GeocoderURL,
		time.Duration(config.AppConfig.GeocoderTimeoutSec)*time.Second,
	)
	resolver := geo.NewResolver(geocoder)

	flowService := booking.NewBookingFlowService(
		utils.GetSessionCacheClient(),
		bookingStore,
		dayGuard,
		time.Duration(config.AppConfig.SessionTTLMinutes)*time.Minute,
	)
	flowService.Notifier = notification.NewBookingEventNotifier(nil)

	bookingHandler := handlers.NewBookingHandler(flowService, bookingStore, resolver, logger)

	routes.RegisterRoutes(router, bookingHandler)

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
