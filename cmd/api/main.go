package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"ke.kejani.api/internal/chat"
	"ke.kejani.api/internal/config"
	"ke.kejani.api/internal/db"
	firebaseutil "ke.kejani.api/internal/firebase"
	"ke.kejani.api/internal/handlers"
	"ke.kejani.api/internal/logger"
	"ke.kejani.api/internal/metrics"
	"ke.kejani.api/internal/middleware"
	"ke.kejani.api/internal/mpesa"
	"ke.kejani.api/internal/notify"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	// Initialize Firebase
	firebaseApp, err := firebaseutil.InitFirebase(cfg.Firebase)
	if err != nil {
		appLogger.Fatalw("Failed to initialize Firebase", "error", err)
	}

	// Initialize PostgreSQL
	postgresDB, err := db.InitPostgres(cfg.Postgres)
	if err != nil {
		appLogger.Fatalw("Failed to initialize PostgreSQL", "error", err)
	}
	defer postgresDB.Close()

	// Initialize Redis
	redisClient, err := db.InitRedis(cfg.Redis)
	if err != nil {
		appLogger.Fatalw("Failed to initialize Redis", "error", err)
	}
	defer redisClient.Close()

	// Optional integrations degrade to nil clients when unconfigured; the
	// handlers skip the corresponding side effects.
	var notifier *notify.Notifier
	if cfg.AWS.SenderEmail != "" {
		notifier, err = notify.New(context.Background(), cfg.AWS)
		if err != nil {
			appLogger.Warnw("Email and SMS notifications disabled", "error", err)
		}
	} else {
		appLogger.Infow("SES sender not configured, notifications disabled")
	}

	var chatClient *chat.Client
	if cfg.Chat.Enabled() {
		chatClient, err = chat.New(cfg.Chat)
		if err != nil {
			appLogger.Warnw("Inquiry chat disabled", "error", err)
		}
	} else {
		appLogger.Infow("Stream credentials not configured, inquiry chat disabled")
	}

	var mpesaClient *mpesa.Client
	if cfg.Mpesa.Enabled() {
		mpesaClient = mpesa.NewClient(cfg.Mpesa)
	} else {
		appLogger.Infow("Daraja credentials not configured, payments disabled")
	}

	// Initialize Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RequestLoggingMiddleware(appLogger))
	router.Use(middleware.RecoveryMiddleware(appLogger))
	router.Use(metrics.Middleware())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(firebaseApp, postgresDB, redisClient, appLogger)
	listingsHandler := handlers.NewListingsHandler(postgresDB, redisClient, appLogger)
	inquiriesHandler := handlers.NewInquiriesHandler(postgresDB, redisClient, chatClient, notifier, appLogger)
	documentsHandler := handlers.NewDocumentsHandler(postgresDB, appLogger)
	paymentsHandler := handlers.NewPaymentsHandler(postgresDB, redisClient, mpesaClient, notifier, appLogger)
	savedSearchesHandler := handlers.NewSavedSearchesHandler(postgresDB, appLogger)
	alertsHandler := handlers.NewAlertsHandler(postgresDB, redisClient, notifier, appLogger)

	authRequired := middleware.AuthMiddleware(firebaseApp, postgresDB, redisClient)

	// Define routes
	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/create-account", authHandler.CreateAccount)
			auth.POST("/login", authHandler.Login)
			auth.POST("/update-account", authRequired, authHandler.UpdateAccount)
			auth.POST("/delete-account", authRequired, authHandler.DeleteAccount)
			auth.GET("/account-details", authRequired, authHandler.GetAccountDetails)
		}

		// Listings are browsable without an account; mutations need one
		listings := v1.Group("/listings")
		{
			listings.GET("/search", listingsHandler.SearchListings)
			listings.GET("/neighborhoods", listingsHandler.ListNeighborhoods)
			listings.GET("/:id", listingsHandler.GetListing)
			listings.POST("/create-listing", authRequired, listingsHandler.CreateListing)
			listings.POST("/update-status", authRequired, listingsHandler.UpdateListingStatus)
		}

		// Protected inquiries routes
		inquiries := v1.Group("/inquiries")
		inquiries.Use(authRequired)
		{
			inquiries.POST("/create-inquiry", inquiriesHandler.CreateInquiry)
			inquiries.POST("/list-inquiries", inquiriesHandler.ListInquiries)
			inquiries.POST("/inquiry-counts", inquiriesHandler.InquiryCounts)
			inquiries.POST("/respond-inquiry", inquiriesHandler.RespondInquiry)
			inquiries.POST("/close-inquiry", inquiriesHandler.CloseInquiry)
		}

		// Protected documents routes
		documents := v1.Group("/documents")
		documents.Use(authRequired)
		{
			documents.POST("/upload-document", documentsHandler.UploadDocument)
			documents.POST("/list-documents", documentsHandler.ListDocuments)
			documents.GET("/download/:id", documentsHandler.DownloadDocument)
			documents.POST("/delete-document", documentsHandler.DeleteDocument)
		}

		// The Daraja callback must stay public; Safaricom posts results there
		payments := v1.Group("/payments")
		{
			payments.POST("/mpesa-callback", paymentsHandler.MpesaCallback)
			payments.POST("/initiate-payment", authRequired, paymentsHandler.InitiatePayment)
			payments.POST("/list-payments", authRequired, paymentsHandler.ListPayments)
			payments.GET("/export-statement", authRequired, paymentsHandler.ExportStatement)
		}

		// Protected saved-search routes
		savedSearches := v1.Group("/saved-searches")
		savedSearches.Use(authRequired)
		{
			savedSearches.POST("/save-search", savedSearchesHandler.SaveSearch)
			savedSearches.POST("/list-saved-searches", savedSearchesHandler.ListSavedSearches)
			savedSearches.POST("/update-saved-search", savedSearchesHandler.UpdateSavedSearch)
			savedSearches.POST("/delete-saved-search", savedSearchesHandler.DeleteSavedSearch)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Setup CORS
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "Content-Disposition"},
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: corsHandler.Handler(router),
	}

	// Start the saved-search digest scheduler
	alertsHandler.Start()

	// Start server in a goroutine
	go func() {
		appLogger.Infow("Server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatalw("Failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Infow("Shutting down server...")

	alertsHandler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatalw("Server forced to shutdown", "error", err)
	}

	appLogger.Infow("Server exited")
}
