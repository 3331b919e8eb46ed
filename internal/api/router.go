package api

import (
	"context"
	"database/sql"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/personal-blog-api/internal/config"
	"github.com/personal-blog-api/internal/models"
	"github.com/personal-blog-api/internal/service"
	"github.com/rs/zerolog"
)

// HealthChecker reports database liveness and pool statistics
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
	Stats() sql.DBStats
}

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, db HealthChecker, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.SetHTMLTemplate(submitResultTemplate)

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware(cfg.Server.AllowedOrigin))

	gate := newAuthGate(services.Auth, log)
	limiter := newRateLimiter(cfg.RateLimit)
	limited := limiter.Middleware()
	admin := gate.RequireAdmin()

	// Handlers
	authHandler := NewAuthHandler(services, log)
	articleHandler := NewArticleHandler(services, log)
	activityHandler := NewActivityHandler(services, log)
	friendLinkHandler := NewFriendLinkHandler(services, log)
	messageHandler := NewMessageHandler(services, log)
	mediaHandler := NewMediaHandler(services, cfg, log)

	// Health check
	router.GET("/health", healthCheck(db))
	router.GET("/metrics", metricsHandler(services, db, log))

	auth := router.Group("/auth")
	{
		auth.POST("/send_code", limited, authHandler.SendCode)
		auth.POST("/register", limited, authHandler.Register)
		auth.POST("/login", limited, authHandler.Login)
		auth.GET("/me", gate.RequireAuth(), authHandler.Me)
		auth.POST("/logout", gate.RequireAuth(), authHandler.Logout)
	}

	articles := router.Group("/article")
	{
		articles.GET("/list", articleHandler.List)
		articles.POST("/upload", admin, articleHandler.Upload)
		articles.POST("/batch/delete", admin, articleHandler.Batch(models.BatchDelete))
		articles.POST("/batch/publish", admin, articleHandler.Batch(models.BatchPublish))
		articles.POST("/batch/unpublish", admin, articleHandler.Batch(models.BatchUnpublish))
		articles.GET("/:id", articleHandler.Get)
		articles.PUT("/:id", admin, articleHandler.Update)
		articles.DELETE("/:id", admin, articleHandler.Delete)
		articles.PATCH("/:id/publish", admin, articleHandler.Publish)
		articles.PATCH("/:id/unpublish", admin, articleHandler.Unpublish)
		articles.POST("/:id/like", limited, articleHandler.Like)
	}

	activity := router.Group("/activity")
	{
		activity.GET("/list", activityHandler.List)
		activity.POST("/upload", admin, activityHandler.Upload)
		activity.POST("/submit_from_email", limiter.MiddlewareWith(activityHandler.TooManyRequests), activityHandler.SubmitFromEmail)
	}

	links := router.Group("/friend_link")
	{
		links.GET("/list", friendLinkHandler.List)
		links.POST("/create", admin, friendLinkHandler.Create)
		links.POST("/update", admin, friendLinkHandler.Update)
		links.POST("/delete", admin, friendLinkHandler.Delete)

		requests := links.Group("/request")
		requests.GET("/list", admin, friendLinkHandler.ListRequests)
		requests.POST("/create", limited, friendLinkHandler.CreateRequest)
		requests.POST("/approve", admin, friendLinkHandler.Approve)
		requests.POST("/reject", admin, friendLinkHandler.Reject)
	}

	messages := router.Group("/message")
	{
		messages.GET("/list", messageHandler.List)
		messages.GET("/admin/list", admin, messageHandler.AdminList)
		messages.POST("/add", limited, messageHandler.Add)
		messages.POST("/delete", admin, messageHandler.Delete)
	}

	media := router.Group("/media")
	{
		media.POST("/upload/image", admin, mediaHandler.UploadImage)
		media.POST("/upload/markdown", admin, mediaHandler.UploadMarkdown)
		media.GET("/image/:id", mediaHandler.Image)
		media.GET("/markdown/:id", mediaHandler.Markdown)
	}

	router.NoRoute(func(c *gin.Context) {
		fail(c, CodeNotFound, "route not found")
	})

	return router
}

// healthCheck returns the health status
func healthCheck(db HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := contextWithTimeout(c, 2*time.Second)
		defer cancel()

		if err := db.HealthCheck(ctx); err != nil {
			respond(c, CodeInternal, gin.H{"status": "unhealthy"}, "database unreachable")
			return
		}
		ok(c, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   "personal-blog-api",
		}, "")
	}
}

// metricsHandler returns row counts and connection pool statistics
func metricsHandler(services *service.Services, db HealthChecker, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		counts, err := services.Stats.Counts(c.Request.Context())
		if err != nil {
			failErr(c, log, err, "Failed to collect metrics")
			return
		}

		stats := db.Stats()
		ok(c, gin.H{
			"database": counts,
			"pool": gin.H{
				"open_connections": stats.OpenConnections,
				"in_use":           stats.InUse,
				"idle":             stats.Idle,
				"wait_count":       stats.WaitCount,
				"wait_duration":    stats.WaitDuration.String(),
			},
			"timestamp": time.Now().Format(time.RFC3339),
		}, "")
	}
}

// contextWithTimeout creates a context with timeout for handlers
func contextWithTimeout(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), timeout)
}
