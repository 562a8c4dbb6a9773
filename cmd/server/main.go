package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/longhouse/storymap/api/internal/audit"
	"github.com/longhouse/storymap/api/internal/authz"
	"github.com/longhouse/storymap/api/internal/config"
	"github.com/longhouse/storymap/api/internal/database"
	"github.com/longhouse/storymap/api/internal/handler"
	"github.com/longhouse/storymap/api/internal/middleware"
	"github.com/longhouse/storymap/api/internal/obs"
	"github.com/longhouse/storymap/api/internal/repository"
	"github.com/longhouse/storymap/api/internal/service"
	"github.com/longhouse/storymap/api/internal/spatial"
	"github.com/longhouse/storymap/api/pkg/jwt"
)

func main() {
	// Local development reads .env; absence is fine in production.
	_ = godotenv.Load()

	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	ctx := context.Background()
	db, err := database.Open(ctx, database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Name:     cfg.Database.Name,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Name),
	)

	// Select the spatial search strategy exactly once, at startup.
	engine, err := spatial.New(db, cfg.Database.SpatialBackend)
	if err != nil {
		slog.Error("failed to initialize spatial engine", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("spatial backend selected", slog.String("backend", cfg.Database.SpatialBackend))

	// Initialize JWT service
	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: cfg.JWT.PrivateKeyPath,
		PublicKeyPath:  cfg.JWT.PublicKeyPath,
		Issuer:         cfg.JWT.Issuer,
		ExpirationMins: cfg.JWT.ExpirationMins,
	})
	if err != nil {
		slog.Error("failed to initialize JWT service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Metrics
	obs.Init()

	// Authorization rule tables and audit trail
	rules := authz.NewRules()
	auditLog := audit.New(logger)

	// Initialize repositories
	placeRepo := repository.NewPlaceRepository(db, engine)
	storyRepo := repository.NewStoryRepository(db)
	speakerRepo := repository.NewSpeakerRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize services
	placeService := service.NewPlaceService(placeRepo, logger)
	storyService := service.NewStoryService(storyRepo, logger)
	speakerService := service.NewSpeakerService(speakerRepo, logger)
	authService := service.NewAuthService(userRepo, jwtService, logger)

	// Initialize handlers
	placeHandler := handler.NewPlaceHandler(placeService, rules)
	storyHandler := handler.NewStoryHandler(storyService, rules)
	speakerHandler := handler.NewSpeakerHandler(speakerService)
	authHandler := handler.NewAuthHandler(authService)
	healthHandler := handler.NewHealthHandler(db, cfg.Database.SpatialBackend)

	// Middleware
	authMW := middleware.Auth(jwtService)
	access := middleware.NewAccess(rules, auditLog)

	// community wraps a handler with the chain every community-scoped route
	// shares: authentication, sovereignty, isolation, then the route's guards.
	community := func(h http.HandlerFunc, guards ...middleware.Middleware) http.Handler {
		chain := append([]middleware.Middleware{authMW, access.CommunityAccess}, guards...)
		return middleware.Chain(h, chain...)
	}

	// Create router and register routes
	mux := http.NewServeMux()

	// Health and metrics endpoints
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.Handle("GET /metrics", obs.Handler())

	// Auth endpoints
	mux.HandleFunc("POST /v1/login", authHandler.Login)
	mux.Handle("GET /v1/profile", middleware.Chain(http.HandlerFunc(authHandler.Profile), authMW, access.RequireAuth))

	// Place endpoints
	mux.Handle("GET /v1/communities/{communityId}/places",
		community(placeHandler.List, access.RequirePermission(authz.PermPlacesRead)))
	mux.Handle("POST /v1/communities/{communityId}/places",
		community(placeHandler.Create, access.RequirePermission(authz.PermPlacesWrite)))
	mux.Handle("GET /v1/communities/{communityId}/places/near",
		community(placeHandler.SearchNear, access.RequirePermission(authz.PermPlacesRead)))
	mux.Handle("GET /v1/communities/{communityId}/places/within",
		community(placeHandler.SearchInBounds, access.RequirePermission(authz.PermPlacesRead)))
	mux.Handle("GET /v1/communities/{communityId}/places/{placeId}",
		community(placeHandler.Get, access.RequirePermission(authz.PermPlacesRead)))
	mux.Handle("PATCH /v1/communities/{communityId}/places/{placeId}",
		community(placeHandler.Update, access.RequirePermission(authz.PermPlacesWrite)))
	mux.Handle("DELETE /v1/communities/{communityId}/places/{placeId}",
		community(placeHandler.Delete, access.RequirePermission(authz.PermPlacesDelete)))

	// Story endpoints
	mux.Handle("GET /v1/communities/{communityId}/stories",
		community(storyHandler.List, access.RequirePermission(authz.PermStoriesRead)))
	mux.Handle("POST /v1/communities/{communityId}/stories",
		community(storyHandler.Create, access.RequirePermission(authz.PermStoriesWrite)))
	mux.Handle("GET /v1/communities/{communityId}/stories/{storyId}",
		community(storyHandler.Get, access.RequirePermission(authz.PermStoriesRead)))
	mux.Handle("PATCH /v1/communities/{communityId}/stories/{storyId}",
		community(storyHandler.Update, access.RequirePermission(authz.PermStoriesWrite)))
	mux.Handle("DELETE /v1/communities/{communityId}/stories/{storyId}",
		community(storyHandler.Delete, access.RequirePermission(authz.PermStoriesDelete)))

	// Speaker endpoints
	mux.Handle("GET /v1/communities/{communityId}/speakers",
		community(speakerHandler.List, access.RequirePermission(authz.PermSpeakersRead)))
	mux.Handle("POST /v1/communities/{communityId}/speakers",
		community(speakerHandler.Create, access.RequirePermission(authz.PermSpeakersWrite)))
	mux.Handle("GET /v1/communities/{communityId}/speakers/{speakerId}",
		community(speakerHandler.Get, access.RequirePermission(authz.PermSpeakersRead)))
	mux.Handle("PATCH /v1/communities/{communityId}/speakers/{speakerId}",
		community(speakerHandler.Update, access.RequirePermission(authz.PermSpeakersWrite)))
	mux.Handle("DELETE /v1/communities/{communityId}/speakers/{speakerId}",
		community(speakerHandler.Delete, access.RequirePermission(authz.PermSpeakersDelete)))

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		obs.Instrument,
		middleware.Compress,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
