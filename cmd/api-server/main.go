package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"watchlog/database"
	"watchlog/internal/config"
	"watchlog/internal/http-api/handler"
	"watchlog/internal/http-api/middleware"
	"watchlog/internal/http-api/repository"
	"watchlog/internal/http-api/service"
)

func main() {
	// 1. Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)

	// 2. Connect to the database
	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	// 3. Optional redis cache for the lookup tables
	var cache *redis.Client
	if cfg.RedisAddr != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr,
			Password:     cfg.RedisPassword,
			DB:           0,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})
		logger.Info("lookup cache enabled", "addr", cfg.RedisAddr)
	}

	// 4. Repositories
	reviewRepo := repository.NewReviewRepo(db)
	genreRepo := repository.NewGenreRepo(db)
	lookupRepo := repository.NewLookupRepo(db)
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)

	// 5. Services
	authSvc := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	reviewSvc := service.NewReviewService(reviewRepo, genreRepo)
	genreSvc := service.NewGenreService(genreRepo)
	lookupSvc := service.NewLookupService(lookupRepo, cache, cfg.LookupCacheTTL, logger)

	// 6. Handlers + routes
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.GET("/check-conn", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "API is alive and database connected"})
	})

	authHandler := handler.NewAuthHandler(authSvc)
	loginLimiter := middleware.NewLoginRateLimiter(cfg.LoginRateRPS, cfg.LoginRateBurst)
	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", loginLimiter.Middleware(), authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)
	}

	requireAuth := middleware.AuthMiddleware(authSvc)

	reviews := r.Group("/reviews", requireAuth)
	handler.NewReviewHandler(reviewSvc).RegisterRoutes(reviews)

	genres := r.Group("/genres", requireAuth)
	handler.NewGenreHandler(genreSvc).RegisterRoutes(genres)

	lookupHandler := handler.NewLookupHandler(lookupSvc)
	lookupHandler.RegisterStatusRoutes(r.Group("/statuses", requireAuth))
	lookupHandler.RegisterTypeRoutes(r.Group("/types", requireAuth))
	lookupHandler.RegisterRatingRoutes(r.Group("/ratings", requireAuth))

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("starting api server", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
