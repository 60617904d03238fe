package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"emdash-brief/pkg/api"
	"emdash-brief/pkg/checkout"
	"emdash-brief/pkg/clients/kit"
	"emdash-brief/pkg/clients/notion"
	"emdash-brief/pkg/config"
	"emdash-brief/pkg/logger"
	"emdash-brief/pkg/middleware"
	"emdash-brief/pkg/services"
	"emdash-brief/pkg/telemetry"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file")
	}

	// Initialize configuration
	cfg := config.LoadConfig()
	appLogger := logger.NewStructured(cfg.LogLevel, cfg.LogFormat)

	shutdownTracing, err := telemetry.Setup(context.Background(), cfg.ServiceName, cfg.OTelEndpoint)
	if err != nil {
		appLogger.WithError(err).Warn("Tracing disabled", nil)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			appLogger.WithError(err).Warn("Failed to flush traces", nil)
		}
	}()

	// Initialize API clients
	notionClient := notion.NewClient(
		cfg.NotionToken,
		cfg.NotionDatabaseID,
		notion.WithBaseURL(cfg.NotionAPIURL),
		notion.WithVersion(cfg.NotionVersion),
		notion.WithTimeout(cfg.HTTPTimeout),
		notion.WithLogger(appLogger),
	)
	kitClient := kit.NewClient(
		cfg.KitAPIKey,
		kit.WithBaseURL(cfg.KitAPIURL),
		kit.WithTimeout(cfg.HTTPTimeout),
		kit.WithLogger(appLogger),
	)
	redirector := checkout.NewRedirector(cfg.CheckoutURL, cfg.CheckoutSuccessURL, cfg.CheckoutCancelURL)

	// Initialize services
	submissionService := services.NewSubmissionService(notionClient, kitClient, redirector, appLogger)

	gin.SetMode(cfg.GinMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Tracing())
	router.Use(middleware.AccessLog(appLogger))
	router.Use(middleware.CORS(cfg.AllowedOrigins...))

	// Register routes
	api.NewHandlers(submissionService, redirector, appLogger).Register(router)

	appLogger.Info("Server starting", map[string]interface{}{
		"port":             cfg.Port,
		"notionConfigured": cfg.NotionToken != "" && cfg.NotionDatabaseID != "",
		"kitConfigured":    cfg.KitAPIKey != "",
		"checkoutEnabled":  redirector.Configured(),
	})
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
