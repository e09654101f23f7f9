package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/bensefia-clinic/clinic-api/internal/config"
	"github.com/bensefia-clinic/clinic-api/internal/handlers"
	"github.com/bensefia-clinic/clinic-api/internal/middleware"
	"github.com/bensefia-clinic/clinic-api/internal/services"
	"github.com/bensefia-clinic/clinic-api/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}
	cfg := config.Load()

	// --- Store selection ---
	var st store.Store
	switch {
	case cfg.MongoURI != "":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		mongoStore, err := store.OpenMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		st = mongoStore
		log.Println("Successfully connected to MongoDB!")
	case cfg.StoreFile != "":
		fileStore, err := store.OpenFileStore(cfg.StoreFile)
		if err != nil {
			log.Fatalf("Failed to open store file: %v", err)
		}
		st = fileStore
		log.Printf("Using JSON store file %s", cfg.StoreFile)
	default:
		st = store.NewMemoryStore()
		log.Println("No store configured, using in-memory store (demo only).")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.Close(ctx); err != nil {
			log.Printf("Store close: %v", err)
		}
	}()

	// --- Mail transport ---
	var mailer services.Mailer
	if cfg.SMTP.Enabled() {
		mailer = services.NewSMTPMailer(cfg.SMTP, cfg.FromAddress)
		log.Printf("Using SMTP relay %s", cfg.SMTP.Host)
	} else {
		mailer = services.NewOutboxMailer(cfg.OutboxDir, cfg.FromAddress)
		log.Printf("No SMTP configured, capturing mail in %s/", cfg.OutboxDir)
	}

	clinicZone, err := time.LoadLocation(cfg.ClinicZone)
	if err != nil {
		log.Printf("Unknown clinic timezone %q, using local time", cfg.ClinicZone)
		clinicZone = time.Local
	}

	// --- Initialize Services ---
	accounts := services.NewAccountService(st)
	bookings := services.NewBookingService(st, clinicZone)
	sessions := services.NewSessionManager()
	notificationSvc := services.NewNotificationService(mailer, st, cfg.AdminEmail, cfg.VerifyBaseURL)

	h := handlers.NewHandler(st, accounts, bookings, sessions, notificationSvc)

	// --- Gin Router ---
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// --- Routes ---
	api := r.Group("/api")
	{
		api.POST("/register", h.RegisterUser)
		api.POST("/send-verification", h.SendVerification)
		api.POST("/verify", h.VerifyEmail)
		api.POST("/login", h.Login)
		api.POST("/forgot-password", h.ForgotPassword)
	}

	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware(sessions))
	{
		protected.POST("/bookings", h.CreateBooking)
		protected.GET("/bookings/:id/receipt", h.GetBookingReceipt)
	}

	log.Printf("Starting server on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
