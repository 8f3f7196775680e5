package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ops-agent-backend/internal/api/middleware"
	"ops-agent-backend/internal/api/routes"
	"ops-agent-backend/internal/auth"
	"ops-agent-backend/internal/config"
	"ops-agent-backend/internal/database"
	"ops-agent-backend/internal/logger"
	"ops-agent-backend/internal/process"
	"ops-agent-backend/internal/repository"
	"ops-agent-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	_ "ops-agent-backend/docs" // This is needed for swag
)

const shutdownTimeout = 30 * time.Second

//	@title			Ops Agent Backend API
//	@version		1.0
//	@description	Deployment and database operations agent: deploys the application to Vercel, Docker or a manual package and manages per-environment PostgreSQL pools, migrations and backups.

//	@contact.name	API Support
//	@contact.url	http://www.example.com/support
//	@contact.email	support@example.com

//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT

//	@host		localhost:7008
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and JWT token.

func main() {
	// Load environment variables from .env file in development
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using system environment variables")
	}

	// Initialize configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Set up logging
	logger.Setup(cfg.LogLevel, cfg.LogFormat)
	appLog := logger.New()

	deployLog, err := logger.NewComponent("deployment-agent", cfg.LogDir, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.Fatal("Failed to create deployment logger: ", err)
	}
	defer deployLog.Close()

	dbLog, err := logger.NewComponent("database-agent", cfg.LogDir, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.Fatal("Failed to create database logger: ", err)
	}
	defer dbLog.Close()

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	validate := validator.New()
	runner := process.NewExecRunner()

	deployOpts := []service.DeploymentAgentOption{service.WithDeploymentRegisterer(registry)}
	dbOpts := []service.DatabaseAgentOption{service.WithDatabaseRegisterer(registry), service.WithValidator(validate)}

	// Optional archive database for deployment and backup records
	var archive *gorm.DB
	if cfg.DatabaseURL != "" {
		archive, err = database.Initialize(cfg.DatabaseURL, nil)
		if err != nil {
			logrus.Fatal("Failed to initialize archive database: ", err)
		}
		deployOpts = append(deployOpts, service.WithArchive(repository.NewDeploymentRecordRepository(archive)))
		dbOpts = append(dbOpts, service.WithBackupArchive(repository.NewBackupRecordRepository(archive)))
	} else {
		appLog.Info("DATABASE_URL not set, deployment history is kept in memory only")
	}

	if cfg.DeploymentWebhookURL != "" {
		deployOpts = append(deployOpts, service.WithNotifier(service.NewWebhookNotifier(cfg.DeploymentWebhookURL, deployLog.Logger)))
	}

	storage, err := service.NewMinioStorage(cfg.Database)
	if err != nil {
		logrus.Fatal("Failed to configure backup storage: ", err)
	}
	if storage != nil {
		dbOpts = append(dbOpts, service.WithObjectStorage(storage))
	}

	deployments := service.NewDeploymentAgent(cfg.Deploy, runner, deployLog.Logger, validate, deployOpts...)
	databases := service.NewDatabaseAgent(cfg.Database, cfg.EnvironmentDatabase, runner, dbLog.Logger, dbOpts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := deployments.Init(ctx); err != nil {
		appLog.WithError(err).Warn("Starting with an empty deployment history")
	}

	databases.StartMonitor(ctx)
	for _, env := range cfg.Database.Environments {
		if err := databases.Initialize(ctx, env, nil); err != nil {
			appLog.WithError(err).WithField("environment", env).Warn("Database not available at startup")
		}
	}

	// Rate limiter: shared through Redis when configured
	var limiter middleware.RateLimiter
	if cfg.RedisAddr != "" {
		limiter, err = middleware.NewRedisRateLimiter(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, appLog)
		if err != nil {
			logrus.Fatal("Failed to connect to Redis: ", err)
		}
	} else {
		limiter = middleware.NewMemoryRateLimiter()
	}
	defer limiter.Close()

	authService, err := auth.NewAuthService(cfg.JWTSecret, cfg.AdminRole)
	if err != nil {
		logrus.Fatal("Failed to initialize auth service: ", err)
	}

	// Initialize router
	router := routes.SetupRoutes(routes.Dependencies{
		Config:      cfg,
		DB:          archive,
		Deployments: deployments,
		Databases:   databases,
		Auth:        authService,
		Limiter:     limiter,
		Logger:      appLog,
		Registry:    registry,
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "7008"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.Infof("Starting server on port %s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal("Failed to start server: ", err)
		}
	}()

	<-ctx.Done()
	logrus.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("HTTP server shutdown failed")
	}
	if err := deployments.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Warn("Deployments did not finish before shutdown")
	}
	if err := databases.CloseConnections(""); err != nil {
		logrus.WithError(err).Warn("Failed to close database connections")
	}
	if archive != nil {
		if sqlDB, err := archive.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	logrus.Info("Server stopped")
}
