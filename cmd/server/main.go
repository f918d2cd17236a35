package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/atelierhub/atelier-backend/internal/config"
	"github.com/atelierhub/atelier-backend/internal/database"
	"github.com/atelierhub/atelier-backend/internal/handlers"
	"github.com/atelierhub/atelier-backend/internal/middleware"
	"github.com/atelierhub/atelier-backend/internal/oauth"
	"github.com/atelierhub/atelier-backend/internal/routes"
	"github.com/atelierhub/atelier-backend/internal/scheduler"
	"github.com/atelierhub/atelier-backend/internal/services"
	"github.com/atelierhub/atelier-backend/internal/token"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		log.Println("⚠️  WARNING: Google OAuth credentials not set. Login will not work.")
	}

	// Connect to MongoDB
	log.Printf("Connecting to MongoDB...")
	mongoDB, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoDB.Disconnect()

	// Ensure indexes (unique google_id backs the login upsert race rule)
	if err := mongoDB.EnsureIndexes(context.Background()); err != nil {
		log.Printf("⚠️  WARNING: failed to ensure MongoDB indexes: %v", err)
	} else {
		log.Println("✅ MongoDB indexes ensured")
	}

	// Connect to Redis
	log.Printf("Connecting to Redis...")
	redisClient, err := database.ConnectRedis(cfg.RedisURI)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	// Initialize Cloudinary service
	var uploads *services.CloudinaryService
	if cfg.CloudinaryName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		uploads, err = services.NewCloudinaryService(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			log.Printf("Warning: Failed to initialize Cloudinary: %v", err)
			log.Println("Image uploads will not be available")
		} else {
			log.Println("✅ Cloudinary service initialized")
		}
	} else {
		log.Println("Warning: Cloudinary credentials not found. Image uploads will not be available")
	}

	// Initialize email service
	var email *services.EmailService
	if cfg.ResendAPIKey != "" {
		email = services.NewEmailService(cfg.ResendAPIKey, cfg.EmailFrom)
		log.Println("✅ Email service initialized")
	} else {
		log.Println("Warning: RESEND_API_KEY not set. Order confirmation emails will not be sent")
	}

	oauthClient := oauth.NewClient(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURI, cfg.GoogleTokenURL, cfg.GoogleUserinfoURL)
	tokens := token.NewManager(cfg.JWTSecret)
	h := handlers.New(mongoDB.DB, redisClient, cfg, oauthClient, tokens, uploads, email)
	auth := middleware.NewAuth(tokens, mongoDB.DB)

	// Start the order expiry sweep against our own internal endpoint
	if cfg.CronSecret != "" {
		scheduler.StartOrderExpiry(cfg.ServiceBaseURL, cfg.CronSecret)
		log.Println("✅ Order expiry scheduler started")
	} else {
		log.Println("Warning: CRON_SECRET not set. Expired orders will not be cancelled automatically")
	}

	// Setup router
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Production: security headers + in-memory per-IP limiter.
	// Non-production: Redis-based rate limit only.
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity() {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, per-IP rate limiting)")
	} else {
		r.Use(middleware.RateLimit(redisClient))
	}

	// Health check (no rate limit concerns here)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r, h, auth, cfg.CronSecret)

	log.Printf("🚀 Atelier backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
