package handlers

import (
	"context"
	"net/http"
	"time"

	"ops-agent-backend/internal/logger"
	"ops-agent-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// DeploymentHandler handles HTTP requests for deployment operations
type DeploymentHandler struct {
	agent service.DeploymentAgentInterface
	log   *logger.Logger
}

// NewDeploymentHandler creates a new deployment handler
func NewDeploymentHandler(agent service.DeploymentAgentInterface, log *logger.Logger) *DeploymentHandler {
	return &DeploymentHandler{
		agent: agent,
		log:   log,
	}
}

// DeploymentResponse wraps a single deployment record
type DeploymentResponse struct {
	Success    bool                      `json:"success"`
	Deployment *service.DeploymentRecord `json:"deployment"`
	Message    string                    `json:"message,omitempty"`
}

// DeploymentHistoryResponse wraps a history listing
type DeploymentHistoryResponse struct {
	Success     bool                       `json:"success"`
	Deployments []service.DeploymentRecord `json:"deployments"`
	Total       int                        `json:"total"`
}

// DeploymentMetricsResponse wraps the aggregate metrics
type DeploymentMetricsResponse struct {
	Success bool                             `json:"success"`
	Metrics service.DeploymentMetricsSummary `json:"metrics"`
}

// ScheduleResponse describes a scheduled deployment
type ScheduleResponse struct {
	Success       bool      `json:"success"`
	ScheduleID    string    `json:"scheduleId"`
	ScheduledTime time.Time `json:"scheduledTime"`
	Message       string    `json:"message"`
}

// Deploy handles POST /deployment/deploy
// @Summary Start a deployment
// @Description Run a deployment to completion on the requested platform and environment, including the health check
// @Tags deployment
// @Accept json
// @Produce json
// @Param request body service.DeploymentRequest true "Deployment request"
// @Success 201 {object} DeploymentResponse "Deployment finished successfully"
// @Failure 400 {object} ErrorResponse "Invalid platform or environment"
// @Failure 409 {object} DeploymentResponse "Deployment was cancelled while running"
// @Failure 429 {object} ErrorResponse "Rate limit exceeded"
// @Failure 500 {object} ErrorResponse "Deployment failed"
// @Security BearerAuth
// @Router /deployment/deploy [post]
func (h *DeploymentHandler) Deploy(c *gin.Context) {
	var req service.DeploymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	// the deployment keeps running if the caller disconnects
	rec, err := h.agent.Deploy(context.WithoutCancel(c.Request.Context()), req)
	if err != nil {
		extra := gin.H{}
		if rec != nil {
			extra["deployment"] = rec
		}
		respondError(c, h.log, "Deployment failed", err, extra)
		return
	}

	c.JSON(http.StatusCreated, DeploymentResponse{
		Success:    true,
		Deployment: rec,
		Message:    "Deployment completed successfully",
	})
}

// Status handles GET /deployment/status/:id
// @Summary Get deployment status
// @Description Return one deployment record, including logs and metrics
// @Tags deployment
// @Produce json
// @Param id path string true "Deployment ID"
// @Success 200 {object} DeploymentResponse
// @Failure 404 {object} ErrorResponse "Deployment not found"
// @Security BearerAuth
// @Router /deployment/status/{id} [get]
func (h *DeploymentHandler) Status(c *gin.Context) {
	rec, err := h.agent.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, "Deployment not found", err, nil)
		return
	}

	c.JSON(http.StatusOK, DeploymentResponse{Success: true, Deployment: rec})
}

// History handles GET /deployment/history
// @Summary List deployments
// @Description Return the retained deployment history, newest first
// @Tags deployment
// @Produce json
// @Param limit query int false "Maximum number of records" default(20)
// @Param environment query string false "Filter by environment"
// @Param platform query string false "Filter by platform"
// @Param status query string false "Filter by status"
// @Success 200 {object} DeploymentHistoryResponse
// @Failure 400 {object} ErrorResponse "Invalid query"
// @Security BearerAuth
// @Router /deployment/history [get]
func (h *DeploymentHandler) History(c *gin.Context) {
	var filter service.HistoryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindError(c, err)
		return
	}

	deployments := h.agent.History(filter)
	c.JSON(http.StatusOK, DeploymentHistoryResponse{
		Success:     true,
		Deployments: deployments,
		Total:       len(deployments),
	})
}

// Cancel handles POST /deployment/cancel/:id
// @Summary Cancel a deployment
// @Description Mark a pending or building deployment as cancelled. A running CLI step is not interrupted.
// @Tags deployment
// @Produce json
// @Param id path string true "Deployment ID"
// @Success 200 {object} map[string]interface{} "Deployment cancelled"
// @Failure 400 {object} ErrorResponse "Deployment not found or not cancellable"
// @Security BearerAuth
// @Router /deployment/cancel/{id} [post]
func (h *DeploymentHandler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if !h.agent.Cancel(id) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Cannot cancel deployment",
			Message: "Deployment not found or not in cancellable state",
		})
		return
	}

	h.log.WithContext(c.Request.Context()).WithField("deployment_id", id).Info("Deployment cancelled")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Deployment cancelled successfully",
	})
}

// Rollback handles POST /deployment/rollback/:id
// @Summary Roll back to a deployment
// @Description Redeploy the version of a previous successful deployment
// @Tags deployment
// @Accept json
// @Produce json
// @Param id path string true "Target deployment ID"
// @Param request body service.RollbackRequest false "Rollback overrides"
// @Success 200 {object} DeploymentResponse
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 500 {object} ErrorResponse "Rollback target invalid or rollback failed"
// @Security BearerAuth
// @Router /deployment/rollback/{id} [post]
func (h *DeploymentHandler) Rollback(c *gin.Context) {
	var req service.RollbackRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}

	rec, err := h.agent.Rollback(context.WithoutCancel(c.Request.Context()), c.Param("id"), req)
	if err != nil {
		extra := gin.H{}
		if rec != nil {
			extra["deployment"] = rec
		}
		respondError(c, h.log, "Rollback failed", err, extra)
		return
	}

	c.JSON(http.StatusOK, DeploymentResponse{
		Success:    true,
		Deployment: rec,
		Message:    "Rollback completed successfully",
	})
}

// Metrics handles GET /deployment/metrics
// @Summary Deployment metrics
// @Description Aggregate statistics over the retained history
// @Tags deployment
// @Produce json
// @Success 200 {object} DeploymentMetricsResponse
// @Security BearerAuth
// @Router /deployment/metrics [get]
func (h *DeploymentHandler) Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, DeploymentMetricsResponse{Success: true, Metrics: h.agent.Metrics()})
}

// Health handles GET /deployment/health
// @Summary Deployment agent liveness
// @Tags deployment
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /deployment/health [get]
func (h *DeploymentHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"status":    "healthy",
		"service":   "backend-deployment-agent",
		"timestamp": time.Now().UTC(),
	})
}

// Automated handles POST /deployment/automated
// @Summary Trigger an automated deployment
// @Description Start a deployment for a branch in the background. The environment follows the branch mapping.
// @Tags deployment
// @Accept json
// @Produce json
// @Param request body service.TriggerRequest true "Trigger request"
// @Success 202 {object} DeploymentResponse "Deployment started"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Security BearerAuth
// @Router /deployment/automated [post]
func (h *DeploymentHandler) Automated(c *gin.Context) {
	var req service.TriggerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if req.Source == "" {
		req.Source = "api"
	}

	rec, err := h.agent.Trigger(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, "Automated deployment failed", err, nil)
		return
	}

	c.JSON(http.StatusAccepted, DeploymentResponse{
		Success:    true,
		Deployment: rec,
		Message:    "Automated deployment started for " + rec.Branch + " branch",
	})
}

// Schedule handles POST /deployment/schedule
// @Summary Schedule a deployment
// @Description Run a deployment at a future time
// @Tags deployment
// @Accept json
// @Produce json
// @Param request body service.ScheduleRequest true "Schedule request"
// @Success 201 {object} ScheduleResponse
// @Failure 400 {object} ErrorResponse "Missing or past scheduled time"
// @Security BearerAuth
// @Router /deployment/schedule [post]
func (h *DeploymentHandler) Schedule(c *gin.Context) {
	var req service.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	info, err := h.agent.Schedule(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, "Failed to schedule deployment", err, nil)
		return
	}

	c.JSON(http.StatusCreated, ScheduleResponse{
		Success:       true,
		ScheduleID:    info.ID,
		ScheduledTime: info.ScheduledAt,
		Message:       "Deployment scheduled successfully",
	})
}

// Schedules handles GET /deployment/schedules
// @Summary List scheduled deployments
// @Tags deployment
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /deployment/schedules [get]
func (h *DeploymentHandler) Schedules(c *gin.Context) {
	schedules := h.agent.Schedules()
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"schedules": schedules,
		"total":     len(schedules),
	})
}

// CancelSchedule handles DELETE /deployment/schedule/:id
// @Summary Cancel a scheduled deployment
// @Tags deployment
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} ErrorResponse "Schedule not found"
// @Security BearerAuth
// @Router /deployment/schedule/{id} [delete]
func (h *DeploymentHandler) CancelSchedule(c *gin.Context) {
	if err := h.agent.CancelSchedule(c.Param("id")); err != nil {
		respondError(c, h.log, "Failed to cancel scheduled deployment", err, nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Scheduled deployment cancelled",
	})
}
