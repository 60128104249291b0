// Package routes defines HTTP routes for the FinanceU backend.
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/imLaanui/Financeu-platform-sub000/docs"
	"github.com/imLaanui/Financeu-platform-sub000/internal/config"
	"github.com/imLaanui/Financeu-platform-sub000/internal/handlers"
	"github.com/imLaanui/Financeu-platform-sub000/internal/middleware"
)

// Handlers bundles everything Setup wires into the router.
type Handlers struct {
	Auth     *handlers.AuthHandler
	User     *handlers.UserHandler
	Lesson   *handlers.LessonHandler
	Feedback *handlers.FeedbackHandler
	Health   *handlers.HealthHandler
}

// Setup configures all HTTP routes for the application.
func Setup(
	router *gin.Engine,
	h Handlers,
	cfg *config.Config,
	jwtMiddleware gin.HandlerFunc,
	limiter *middleware.RateLimiter,
	logger *zap.Logger,
) {
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Metrics())
	router.Use(middleware.CSRF(cfg.AllowedOrigins))

	// Health check
	router.GET("/health", h.Health.Check)
	// Metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Auth routes
	auth := router.Group("/api/auth")
	{
		auth.POST("/register", limiter.Limit("register"), h.Auth.Register)
		auth.POST("/login", limiter.Limit("login"), h.Auth.Login)
		auth.POST("/logout", h.Auth.Logout)
		auth.POST("/forgot-password", limiter.Limit("forgot"), h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
		auth.GET("/me", jwtMiddleware, h.Auth.Me)
	}

	// User routes
	users := router.Group("/api/users", jwtMiddleware)
	{
		users.GET("/profile", h.User.Profile)
		users.PUT("/membership", h.User.UpdateMembership)
	}

	// Lesson routes
	lessons := router.Group("/api/lessons", jwtMiddleware)
	{
		lessons.GET("", h.Lesson.List)
		lessons.GET("/progress", h.Lesson.Progress)
		lessons.POST("/complete", h.Lesson.Complete)
	}

	// Feedback is public; the admin views are behind basic auth.
	router.POST("/api/feedback", h.Feedback.Submit)

	admin := router.Group("/api/admin", middleware.AdminBasicAuth(cfg.AdminUser, cfg.AdminPassword))
	{
		admin.GET("/feedback", h.Feedback.AdminList)
		admin.DELETE("/feedback/:id", h.Feedback.AdminDelete)
		admin.GET("/users", h.User.AdminListUsers)
	}

	// Swagger documentation (only if SWAGGER_HOST is configured)
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}
