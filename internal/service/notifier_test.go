package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ops-agent-backend/internal/logger"
	"ops-agent-backend/internal/service"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookNotifier_PostsEvent(t *testing.T) {
	received := make(chan map[string]any, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		received <- body
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	nullLogger, hook := logrustest.NewNullLogger()
	notifier := service.NewWebhookNotifier(server.URL, logger.NewFromLogrus(nullLogger))
	notifier.Notify(context.Background(), service.EventDeploymentCompleted, service.DeploymentRecord{
		ID:     "deploy_1",
		Status: service.StatusSuccess,
	})

	body := <-received
	assert.Equal(t, service.EventDeploymentCompleted, body["event"])
	deployment, ok := body["deployment"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "deploy_1", deployment["id"])
	assert.Empty(t, hook.AllEntries())
}

func TestWebhookNotifier_LogsDeliveryFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	nullLogger, hook := logrustest.NewNullLogger()
	notifier := service.NewWebhookNotifier(server.URL, logger.NewFromLogrus(nullLogger))
	notifier.Notify(context.Background(), service.EventDeploymentFailed, service.DeploymentRecord{ID: "deploy_2"})

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "deploy_2", hook.LastEntry().Data["deployment_id"])
}
