package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/tarcanfarm/farm-backend/internal/auth"
	"github.com/tarcanfarm/farm-backend/internal/config"
	"github.com/tarcanfarm/farm-backend/internal/database"
	"github.com/tarcanfarm/farm-backend/internal/handlers"
	"github.com/tarcanfarm/farm-backend/internal/middleware"
	"github.com/tarcanfarm/farm-backend/internal/routes"
	"github.com/tarcanfarm/farm-backend/internal/services"
	"github.com/tarcanfarm/farm-backend/internal/session"
	"github.com/tarcanfarm/farm-backend/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	var backend store.Backend
	var sessions session.Store

	if cfg.StorageBackend == config.StorageMemory {
		log.Println("⚠️  STORAGE_BACKEND=memory: data is lost on restart")
		backend = store.NewMemoryBackend()
		sessions = session.NewMemoryStore()
	} else {
		log.Printf("Connecting to PostgreSQL...")
		// ConnectPostgres also runs the table bootstrap.
		if err := database.ConnectPostgres(cfg.PostgresURI); err != nil {
			log.Fatal("Failed to connect to PostgreSQL:", err)
		}
		defer database.DisconnectPostgres()

		log.Printf("Connecting to Redis...")
		if err := database.ConnectRedis(cfg.RedisURI); err != nil {
			log.Fatal("Failed to connect to Redis:", err)
		}
		defer database.DisconnectRedis()

		log.Printf("Connecting to MongoDB...")
		if err := database.ConnectMongo(cfg.MongoURI); err != nil {
			log.Fatal("Failed to connect to MongoDB:", err)
		}
		defer database.DisconnectMongo()
		if err := database.EnsureWeatherIndexes(context.Background()); err != nil {
			log.Printf("⚠️  WARNING: failed to ensure weather history indexes: %v", err)
		}

		weatherStore := store.NewMongoWeather(database.MongoDB.Collection(database.WeatherHistoryCollection))
		backend = store.NewPostgresBackend(database.PostgresDB, weatherStore)
		sessions = session.NewRedisStore(database.RedisClient)
	}

	var uploads *services.ImageService
	if cfg.HasCloudinary() {
		var err error
		uploads, err = services.NewImageService(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			log.Printf("Warning: Failed to initialize Cloudinary: %v", err)
			log.Println("File uploads will not be available")
		} else {
			log.Println("✅ Cloudinary service initialized")
		}
	} else {
		log.Println("Warning: Cloudinary credentials not found. File uploads will not be available")
	}

	api := &handlers.API{
		Store:         backend,
		Sessions:      sessions,
		Auth:          auth.NewService(backend.Users),
		Uploads:       uploads,
		SecureCookies: cfg.IsProduction(),
	}

	r := chi.NewRouter()

	// Custom CORS: set headers and respond to OPTIONS with 200 so preflight never gets 403
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity(cfg.AllowedHost) {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, host check, per-IP + login rate limiting)")
	}

	// Health check (no auth)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.Setup(r, api)

	log.Printf("🚀 Farm backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
