package handlers

import (
	"net/http"
	"time"

	"ops-agent-backend/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Version is reported by the health endpoints
const Version = "1.0.0"

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db        *gorm.DB
	databases service.DatabaseAgentInterface
}

// NewHealthHandler creates a new health handler. db is the optional deployment
// archive; databases supplies the last health report of each managed environment.
func NewHealthHandler(db *gorm.DB, databases service.DatabaseAgentInterface) *HealthHandler {
	return &HealthHandler{
		db:        db,
		databases: databases,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Services  map[string]string `json:"services"`
}

// Health returns the health status of the application
// @Summary Health check
// @Description Overall health including the archive database and the last report of each managed database
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} HealthResponse "Application is healthy"
// @Failure 503 {object} HealthResponse "Application is unhealthy"
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   Version,
		Services:  make(map[string]string),
	}

	if state := h.archiveState("healthy", "error: "); state != "" {
		response.Services["archive"] = state
		if state != "healthy" {
			response.Status = "unhealthy"
		}
	} else {
		response.Services["archive"] = "disabled"
	}

	// managed databases are reported, they do not make the service itself unhealthy
	if h.databases != nil {
		for _, report := range h.databases.LastHealth() {
			response.Services["database:"+report.Environment] = string(report.Status)
			if report.Status != service.HealthHealthy && response.Status == "healthy" {
				response.Status = "degraded"
			}
		}
	}

	statusCode := http.StatusOK
	if response.Status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, response)
}

// Ready returns the readiness status of the application
// @Summary Readiness check
// @Description Check if the application is ready to serve requests
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Application is ready"
// @Failure 503 {object} map[string]interface{} "Application is not ready"
// @Router /health/ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ready := true
	services := make(map[string]string)

	if state := h.archiveState("ready", "not ready: "); state != "" {
		services["archive"] = state
		ready = state == "ready"
	}

	response := map[string]interface{}{
		"ready":     ready,
		"timestamp": time.Now(),
		"services":  services,
	}

	statusCode := http.StatusOK
	if !ready {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, response)
}

// Live returns the liveness status of the application
// @Summary Liveness check
// @Description Check if the application is alive and responding
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Application is alive"
// @Router /health/live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, map[string]interface{}{
		"alive":     true,
		"timestamp": time.Now(),
	})
}

// archiveState pings the archive database. It returns "" when no archive is configured.
func (h *HealthHandler) archiveState(ok, failurePrefix string) string {
	if h.db == nil {
		return ""
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return failurePrefix + err.Error()
	}
	if err := sqlDB.Ping(); err != nil {
		return failurePrefix + err.Error()
	}
	return ok
}
