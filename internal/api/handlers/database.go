package handlers

import (
	"context"
	"net/http"
	"strconv"

	"ops-agent-backend/internal/logger"
	"ops-agent-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// DatabaseHandler handles HTTP requests for the database agent
type DatabaseHandler struct {
	agent service.DatabaseAgentInterface
	log   *logger.Logger
}

// NewDatabaseHandler creates a new database handler
func NewDatabaseHandler(agent service.DatabaseAgentInterface, log *logger.Logger) *DatabaseHandler {
	return &DatabaseHandler{
		agent: agent,
		log:   log,
	}
}

// MigrationsResponse lists the migrations attempted in one run
type MigrationsResponse struct {
	Success    bool                      `json:"success"`
	Migrations []service.MigrationStatus `json:"migrations"`
	Message    string                    `json:"message,omitempty"`
}

// BackupResponse wraps one backup
type BackupResponse struct {
	Success bool                `json:"success"`
	Backup  *service.BackupInfo `json:"backup"`
}

// Initialize handles POST /database/:environment/initialize
// @Summary Initialize a connection pool
// @Description Open (or reopen) the connection pool for an environment. Body fields override the configured settings.
// @Tags database
// @Accept json
// @Produce json
// @Param environment path string true "Environment" Enums(development, staging, production)
// @Param request body service.InitializeDatabaseRequest false "Connection overrides"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse "Invalid environment or settings"
// @Failure 502 {object} ErrorResponse "Database unreachable"
// @Security BearerAuth
// @Router /database/{environment}/initialize [post]
func (h *DatabaseHandler) Initialize(c *gin.Context) {
	var override *service.InitializeDatabaseRequest
	if c.Request.ContentLength != 0 {
		override = &service.InitializeDatabaseRequest{}
		if err := c.ShouldBindJSON(override); err != nil {
			bindError(c, err)
			return
		}
	}

	environment := c.Param("environment")
	if err := h.agent.Initialize(c.Request.Context(), environment, override); err != nil {
		respondError(c, h.log, "Database initialization failed", err, nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"environment": environment,
		"pool_state":  h.agent.PoolState(environment),
		"message":     "Database initialized successfully",
	})
}

// Health handles GET /database/:environment/health
// @Summary Database health
// @Description Probe the environment's database and classify it as healthy, degraded or unhealthy
// @Tags database
// @Produce json
// @Param environment path string true "Environment"
// @Success 200 {object} service.DatabaseHealth "Healthy or degraded"
// @Failure 503 {object} service.DatabaseHealth "Unhealthy"
// @Security BearerAuth
// @Router /database/{environment}/health [get]
func (h *DatabaseHandler) Health(c *gin.Context) {
	report := h.agent.CheckHealth(c.Request.Context(), c.Param("environment"))

	status := http.StatusOK
	if report.Status == service.HealthUnhealthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, report)
}

// Migrate handles POST /database/:environment/migrate
// @Summary Run pending migrations
// @Description Apply pending migration files in order. The run stops at the first failure.
// @Tags database
// @Produce json
// @Param environment path string true "Environment"
// @Success 200 {object} MigrationsResponse
// @Failure 404 {object} ErrorResponse "No connection pool"
// @Failure 500 {object} MigrationsResponse "A migration failed"
// @Security BearerAuth
// @Router /database/{environment}/migrate [post]
func (h *DatabaseHandler) Migrate(c *gin.Context) {
	migrations, err := h.agent.RunMigrations(c.Request.Context(), c.Param("environment"))
	if migrations == nil {
		migrations = []service.MigrationStatus{}
	}
	if err != nil {
		respondError(c, h.log, "Migration failed", err, gin.H{"migrations": migrations})
		return
	}

	c.JSON(http.StatusOK, MigrationsResponse{
		Success:    true,
		Migrations: migrations,
		Message:    strconv.Itoa(len(migrations)) + " migration(s) executed",
	})
}

// Backup handles POST /database/:environment/backup
// @Summary Create a backup
// @Description Dump the environment's database with pg_dump
// @Tags database
// @Accept json
// @Produce json
// @Param environment path string true "Environment"
// @Param request body service.BackupRequest false "Backup type"
// @Success 201 {object} BackupResponse
// @Failure 400 {object} ErrorResponse "Invalid environment or type"
// @Failure 500 {object} ErrorResponse "Backup failed"
// @Security BearerAuth
// @Router /database/{environment}/backup [post]
func (h *DatabaseHandler) Backup(c *gin.Context) {
	var req service.BackupRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}

	info, err := h.agent.CreateBackup(context.WithoutCancel(c.Request.Context()), c.Param("environment"), req.Type)
	if err != nil {
		extra := gin.H{}
		if info != nil {
			extra["backup"] = info
		}
		respondError(c, h.log, "Backup failed", err, extra)
		return
	}

	c.JSON(http.StatusCreated, BackupResponse{Success: true, Backup: info})
}

// Backups handles GET /database/:environment/backups
// @Summary List backups
// @Tags database
// @Produce json
// @Param environment path string true "Environment"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /database/{environment}/backups [get]
func (h *DatabaseHandler) Backups(c *gin.Context) {
	backups, err := h.agent.Backups(c.Request.Context(), c.Param("environment"))
	if err != nil {
		respondError(c, h.log, "Failed to list backups", err, nil)
		return
	}
	if backups == nil {
		backups = []service.BackupInfo{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"backups": backups,
		"total":   len(backups),
	})
}

// Restore handles POST /database/:environment/restore
// @Summary Restore a backup
// @Description Replay a backup file from the backup directory with psql
// @Tags database
// @Accept json
// @Produce json
// @Param environment path string true "Environment"
// @Param request body service.RestoreRequest true "Backup to restore"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Backup not found"
// @Failure 500 {object} ErrorResponse "Restore failed"
// @Security BearerAuth
// @Router /database/{environment}/restore [post]
func (h *DatabaseHandler) Restore(c *gin.Context) {
	var req service.RestoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if req.BackupPath == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request", Message: "backupPath is required"})
		return
	}

	environment := c.Param("environment")
	if err := h.agent.RestoreBackup(context.WithoutCancel(c.Request.Context()), environment, req.BackupPath); err != nil {
		respondError(c, h.log, "Restore failed", err, nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Backup restored to " + environment,
	})
}

// Optimize handles POST /database/:environment/optimize
// @Summary Optimize the database
// @Description Vacuum and reindex every public table and index, then refresh statistics. Per-object failures are reported, not fatal.
// @Tags database
// @Produce json
// @Param environment path string true "Environment"
// @Success 200 {object} service.OptimizationReport
// @Failure 404 {object} ErrorResponse "No connection pool"
// @Security BearerAuth
// @Router /database/{environment}/optimize [post]
func (h *DatabaseHandler) Optimize(c *gin.Context) {
	report, err := h.agent.OptimizeDatabase(c.Request.Context(), c.Param("environment"))
	if err != nil {
		respondError(c, h.log, "Optimization failed", err, nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"report":  report,
	})
}

// Metrics handles GET /database/:environment/metrics
// @Summary Query metrics
// @Description Sampled query executions for the environment inside the window
// @Tags database
// @Produce json
// @Param environment path string true "Environment"
// @Param hours query int false "Window in hours" default(24)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse "Invalid window"
// @Security BearerAuth
// @Router /database/{environment}/metrics [get]
func (h *DatabaseHandler) Metrics(c *gin.Context) {
	hours := 24
	if raw := c.Query("hours"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request", Message: "hours must be a positive integer"})
			return
		}
		hours = parsed
	}

	samples := h.agent.Metrics(c.Param("environment"), hours)
	if samples == nil {
		samples = []service.QueryMetric{}
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"hours":   hours,
		"metrics": samples,
		"total":   len(samples),
	})
}

// Close handles DELETE /database/:environment
// @Summary Close a connection pool
// @Tags database
// @Produce json
// @Param environment path string true "Environment"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} ErrorResponse "No connection pool"
// @Security BearerAuth
// @Router /database/{environment} [delete]
func (h *DatabaseHandler) Close(c *gin.Context) {
	environment := c.Param("environment")
	if err := h.agent.CloseConnections(environment); err != nil {
		respondError(c, h.log, "Failed to close connections", err, nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Connections closed for " + environment,
	})
}

// Status handles GET /database/status
// @Summary Last health reports
// @Description The most recent health report of every environment checked so far
// @Tags database
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /database/status [get]
func (h *DatabaseHandler) Status(c *gin.Context) {
	reports := h.agent.LastHealth()
	if reports == nil {
		reports = []service.DatabaseHealth{}
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"reports": reports,
	})
}
