package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"ops-agent-backend/internal/logger"
)

// Deployment notification events
const (
	EventDeploymentStarted   = "deployment_started"
	EventDeploymentCompleted = "deployment_completed"
	EventDeploymentFailed    = "deployment_failed"
)

// Notifier publishes deployment lifecycle events
type Notifier interface {
	Notify(ctx context.Context, event string, record DeploymentRecord)
}

// WebhookNotifier posts deployment events as JSON to a configured URL
type WebhookNotifier struct {
	url        string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewWebhookNotifier creates a new webhook notifier
func NewWebhookNotifier(url string, log *logger.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     log,
	}
}

type notificationPayload struct {
	Event      string           `json:"event"`
	Deployment DeploymentRecord `json:"deployment"`
	SentAt     time.Time        `json:"sent_at"`
}

// Notify sends the event. Delivery failures are logged and never returned.
func (n *WebhookNotifier) Notify(ctx context.Context, event string, record DeploymentRecord) {
	if err := n.send(ctx, event, record); err != nil {
		n.logger.WithFields(map[string]interface{}{
			"event":         event,
			"deployment_id": record.ID,
		}).WithError(err).Warn("Failed to deliver deployment notification")
	}
}

func (n *WebhookNotifier) send(ctx context.Context, event string, record DeploymentRecord) error {
	body, err := json.Marshal(notificationPayload{Event: event, Deployment: record, SentAt: time.Now().UTC()})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notification endpoint returned %d", resp.StatusCode)
	}
	return nil
}
