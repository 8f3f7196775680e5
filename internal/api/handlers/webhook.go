package handlers

import (
	"net/http"
	"strings"

	apperrors "ops-agent-backend/internal/errors"
	"ops-agent-backend/internal/logger"
	"ops-agent-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/go-github/v57/github"
)

// WebhookHandler starts deployments from GitHub push events
type WebhookHandler struct {
	agent    service.DeploymentAgentInterface
	secret   []byte
	platform string
	log      *logger.Logger
}

// NewWebhookHandler creates a webhook handler verifying payloads against secret.
// Deployments it starts use platform.
func NewWebhookHandler(agent service.DeploymentAgentInterface, secret, platform string, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		agent:    agent,
		secret:   []byte(secret),
		platform: platform,
		log:      log,
	}
}

// GitHub handles POST /webhooks/github
// @Summary GitHub push webhook
// @Description Verify the X-Hub-Signature-256 HMAC and deploy pushes to main, develop or staging
// @Tags webhooks
// @Accept json
// @Produce json
// @Param X-Hub-Signature-256 header string true "HMAC-SHA256 signature of the body"
// @Param X-GitHub-Event header string true "Event type"
// @Success 200 {object} map[string]interface{} "Event ignored"
// @Success 202 {object} DeploymentResponse "Deployment started"
// @Failure 401 {object} ErrorResponse "Missing or invalid signature"
// @Router /webhooks/github [post]
func (h *WebhookHandler) GitHub(c *gin.Context) {
	log := h.log.WithContext(c.Request.Context())

	if len(h.secret) == 0 {
		log.WithError(apperrors.ErrWebhookSecretNotSet).Error("Rejecting webhook")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid webhook signature", Message: apperrors.ErrWebhookSecretNotSet.Error()})
		return
	}

	payload, err := github.ValidatePayload(c.Request, h.secret)
	if err != nil {
		log.WithError(err).Warn("Webhook signature verification failed")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid webhook signature", Message: apperrors.ErrInvalidWebhookSignature.Error()})
		return
	}

	eventType := github.WebHookType(c.Request)
	event, err := github.ParseWebHook(eventType, payload)
	if err != nil {
		bindError(c, err)
		return
	}

	push, ok := event.(*github.PushEvent)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"message": "Event " + eventType + " ignored"})
		return
	}

	branch := strings.TrimPrefix(push.GetRef(), "refs/heads/")
	log = log.WithFields(map[string]interface{}{
		"repository": push.GetRepo().GetFullName(),
		"branch":     branch,
		"commits":    len(push.Commits),
	})
	log.Info("GitHub webhook received")

	if _, deployable := service.EnvironmentForBranch(branch); !deployable || push.GetDeleted() {
		c.JSON(http.StatusOK, gin.H{"message": "Branch " + branch + " is not configured for automatic deployment"})
		return
	}

	rec, err := h.agent.Start(c.Request.Context(), h.agent.BranchDeploymentRequest(branch, h.platform, ""))
	if err != nil {
		respondError(c, h.log, "Webhook deployment failed", err, nil)
		return
	}

	c.JSON(http.StatusAccepted, DeploymentResponse{
		Success:    true,
		Deployment: rec,
		Message:    "Webhook deployment started for " + branch + " branch",
	})
}
