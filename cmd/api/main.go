// Package main is the entry point for the FinanceU backend.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/imLaanui/Financeu-platform-sub000/docs"
	"github.com/imLaanui/Financeu-platform-sub000/internal/config"
	"github.com/imLaanui/Financeu-platform-sub000/internal/database"
	"github.com/imLaanui/Financeu-platform-sub000/internal/handlers"
	"github.com/imLaanui/Financeu-platform-sub000/internal/middleware"
	"github.com/imLaanui/Financeu-platform-sub000/internal/repository"
	"github.com/imLaanui/Financeu-platform-sub000/internal/routes"
	"github.com/imLaanui/Financeu-platform-sub000/internal/service"
	"github.com/imLaanui/Financeu-platform-sub000/pkg/redis"
)

// @title FinanceU API
// @version 1.0
// @description Financial-literacy education platform backend
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
// @securityDefinitions.basic BasicAuth
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}
	defer logger.Sync()

	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	backend := "sqlite"
	if cfg.UsePostgres() {
		backend = "postgres"
	}
	logger.Info("database ready", zap.String("backend", backend))

	// Initialize Redis (optional; rate limiting is disabled without it)
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewResetTokenRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)

	// Initialize services
	hasher := service.NewPasswordHasher()
	jwtService, err := service.NewJWTService(cfg.JWTSecret, cfg.SessionExpiry)
	if err != nil {
		logger.Fatal("Failed to initialize JWT service", zap.Error(err))
	}
	authService := service.NewAuthService(userRepo, tokenRepo, hasher, jwtService, cfg.ResetExpiry)
	lessonService := service.NewLessonService(lessonRepo)

	// Initialize handlers
	cookieHelper := handlers.NewCookieHelper(handlers.CookieConfig{
		Secure: cfg.IsProduction(),
	})
	h := routes.Handlers{
		Auth:     handlers.NewAuthHandler(authService, jwtService, cookieHelper, logger, cfg.EchoResetCode),
		User:     handlers.NewUserHandler(userRepo, lessonService, logger),
		Lesson:   handlers.NewLessonHandler(lessonService, logger),
		Feedback: handlers.NewFeedbackHandler(feedbackRepo, logger),
		Health:   handlers.NewHealthHandler(db),
	}

	// Expired reset tokens are garbage collected in the background; the
	// validity checks never rely on this running.
	go sweepResetTokens(tokenRepo, cfg.SweepInterval, logger)

	// Setup router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	limiter := middleware.NewRateLimiter(redisClient, cfg.AuthRateLimit, cfg.AuthRateWindow, logger)
	jwtMiddleware := middleware.RequireAuth(jwtService, cookieHelper)
	routes.Setup(router, h, cfg, jwtMiddleware, limiter, logger)

	// Start server
	logger.Info("starting server", zap.String("port", cfg.Port), zap.String("environment", cfg.Environment))
	if err := router.Run(fmt.Sprintf(":%s", cfg.Port)); err != nil && err != http.ErrServerClosed {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

func sweepResetTokens(tokenRepo repository.ResetTokenRepository, interval time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		count, err := tokenRepo.SweepExpired(ctx)
		cancel()
		if err != nil {
			logger.Warn("reset token sweep failed", zap.Error(err))
			continue
		}
		if count > 0 {
			logger.Info("swept reset tokens", zap.Int64("count", count))
		}
	}
}
