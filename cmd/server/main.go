package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/otcheredev/hms-console/internal/cache"
	"github.com/otcheredev/hms-console/internal/client"
	"github.com/otcheredev/hms-console/internal/config"
	"github.com/otcheredev/hms-console/internal/database"
	"github.com/otcheredev/hms-console/internal/handlers"
	"github.com/otcheredev/hms-console/internal/middleware"
	"github.com/otcheredev/hms-console/internal/repository"
	"github.com/otcheredev/hms-console/internal/services"
	"github.com/otcheredev/hms-console/internal/views"
	"github.com/otcheredev/hms-console/pkg/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Initialize logger
	logger.Init(cfg.Log.Level, cfg.Log.Format, "hms-console")
	log.Info().Str("api", cfg.API.BaseURL).Msg("Starting HMS console")

	// Session storage
	var store cache.Cache
	if cfg.Cache.Enabled && cfg.Cache.Type == "redis" {
		addr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
		store, err = cache.NewRedisCache(addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		log.Info().Str("addr", addr).Msg("Redis session storage initialized")
	} else {
		store = cache.NewMemoryCache()
		log.Info().Msg("Memory session storage initialized")
	}
	defer store.Close()

	// Audit database is optional
	var db *gorm.DB
	var auditStore services.AuditStore
	if cfg.Database.Enabled {
		db, err = database.Connect(database.Config{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			DBName:   cfg.Database.DBName,
			SSLMode:  cfg.Database.SSLMode,
			LogLevel: cfg.Database.LogLevel,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer database.Close(db)
		auditStore = repository.NewAuditRepository(db)
	} else {
		log.Info().Msg("Audit database disabled")
	}

	api := client.New(cfg.API.BaseURL, cfg.API.Timeout)
	defer api.Close()

	renderer, err := views.NewRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse templates")
	}

	// Initialize services and handlers
	auditService := services.NewAuditService(auditStore)
	pages := handlers.New(api, renderer, auditService, handlers.Options{ReportPoll: cfg.Reports.PollInterval})

	required := map[string]handlers.Check{"session_store": store.Ping}
	optional := map[string]handlers.Check{"api": api.Ping}
	if db != nil {
		required["database"] = func(ctx context.Context) error { return database.Ping(ctx, db) }
	}
	healthHandler := handlers.NewHealthHandler(required, optional)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Compress(5))

	// Health endpoints
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	sessions := middleware.Session(store, middleware.SessionOptions{
		CookieName: cfg.Session.CookieName,
		TTL:        cfg.Session.TTL,
		Secure:     cfg.Session.Secure,
	})

	// JSON endpoints
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORS.AllowedOrigins,
			AllowedMethods:   cfg.CORS.AllowedMethods,
			AllowedHeaders:   cfg.CORS.AllowedHeaders,
			ExposedHeaders:   []string{"Content-Length", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
		r.Use(sessions)
		pages.API(r)
	})

	// Console pages
	r.Group(func(r chi.Router) {
		r.Use(sessions)
		r.Use(middleware.Guard)
		pages.Pages(r, httprate.LimitByIP(cfg.Server.LoginRateLimit, time.Minute))
	})
	r.NotFound(handlers.NotFound)

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
