package routes

import (
	"ops-agent-backend/internal/api/handlers"
	"ops-agent-backend/internal/api/middleware"
	"ops-agent-backend/internal/auth"
	"ops-agent-backend/internal/config"
	"ops-agent-backend/internal/logger"
	"ops-agent-backend/internal/metrics"
	"ops-agent-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Dependencies are the constructed services the router exposes
type Dependencies struct {
	Config      *config.Config
	DB          *gorm.DB
	Deployments service.DeploymentAgentInterface
	Databases   service.DatabaseAgentInterface
	Auth        *auth.AuthService
	Limiter     middleware.RateLimiter
	Logger      *logger.Logger
	Registry    *prometheus.Registry
}

// SetupRoutes configures all the routes for the application
func SetupRoutes(deps Dependencies) *gin.Engine {
	cfg := deps.Config
	log := deps.Logger
	if log == nil {
		log = logger.New()
	}

	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}
	httpMetrics := metrics.NewHTTP(registerer)

	// Create router
	router := gin.New()

	// Add middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg))
	router.Use(middleware.Prometheus(httpMetrics))

	authMiddleware := auth.NewAuthMiddleware(deps.Auth)
	rateLimit := middleware.RateLimit(deps.Limiter, cfg.RateLimitRequests, cfg.RateLimitWindow, httpMetrics)

	// Initialize handlers
	deploymentHandler := handlers.NewDeploymentHandler(deps.Deployments, log)
	streamHandler := handlers.NewStreamHandler(deps.Deployments, cfg.AllowedOrigins, log)
	databaseHandler := handlers.NewDatabaseHandler(deps.Databases, log)
	webhookHandler := handlers.NewWebhookHandler(deps.Deployments, cfg.GitHubWebhookSecret, cfg.WebhookPlatform, log)

	registerHealthRoutes(router, handlers.NewHealthHandler(deps.DB, deps.Databases))

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	{
		// Webhooks authenticate with their HMAC signature instead of a token
		webhooks := v1.Group("/webhooks")
		{
			webhooks.POST("/github", webhookHandler.GitHub)
		}

		// Deployment routes: admin only, rate limited
		deployment := v1.Group("/deployment")
		deployment.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin(), rateLimit)
		{
			deployment.POST("/deploy", deploymentHandler.Deploy)
			deployment.GET("/status/:id", deploymentHandler.Status)
			deployment.GET("/history", deploymentHandler.History)
			deployment.POST("/cancel/:id", deploymentHandler.Cancel)
			deployment.POST("/rollback/:id", deploymentHandler.Rollback)
			deployment.GET("/metrics", deploymentHandler.Metrics)
			deployment.GET("/health", deploymentHandler.Health)
			deployment.POST("/automated", deploymentHandler.Automated)
			deployment.POST("/schedule", deploymentHandler.Schedule)
			deployment.GET("/schedules", deploymentHandler.Schedules)
			deployment.DELETE("/schedule/:id", deploymentHandler.CancelSchedule)
			deployment.GET("/stream/:id", streamHandler.Stream)
		}

		// Database routes: admin only, rate limited
		database := v1.Group("/database")
		database.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin(), rateLimit)
		{
			database.GET("/status", databaseHandler.Status)
			database.POST("/:environment/initialize", databaseHandler.Initialize)
			database.GET("/:environment/health", databaseHandler.Health)
			database.POST("/:environment/migrate", databaseHandler.Migrate)
			database.POST("/:environment/backup", databaseHandler.Backup)
			database.GET("/:environment/backups", databaseHandler.Backups)
			database.POST("/:environment/restore", databaseHandler.Restore)
			database.POST("/:environment/optimize", databaseHandler.Optimize)
			database.GET("/:environment/metrics", databaseHandler.Metrics)
			database.DELETE("/:environment", databaseHandler.Close)
		}
	}

	// Catch-all route for undefined endpoints
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error":      "Endpoint not found",
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": c.GetString("request_id"),
		})
	})

	return router
}

// SetupHealthRoutes builds a router serving only the health probes, for
// sidecar listeners and tests that do not need the API surface
func SetupHealthRoutes(db *gorm.DB, databases service.DatabaseAgentInterface, log *logger.Logger) *gin.Engine {
	if log == nil {
		log = logger.New()
	}
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(log))

	registerHealthRoutes(router, handlers.NewHealthHandler(db, databases))
	return router
}

func registerHealthRoutes(router gin.IRoutes, h *handlers.HealthHandler) {
	router.GET("/health", h.Health)
	router.GET("/health/ready", h.Ready)
	router.GET("/health/live", h.Live)
}
