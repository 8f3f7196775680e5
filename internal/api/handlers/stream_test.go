package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ops-agent-backend/internal/api/handlers"
	apperrors "ops-agent-backend/internal/errors"
	"ops-agent-backend/internal/mocks"
	"ops-agent-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func streamServer(t *testing.T, agent service.DeploymentAgentInterface, origins []string) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/stream/:id", handlers.NewStreamHandler(agent, origins, nullLogger()).Stream)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server, path string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + path
}

func TestStreamSendsBacklogLiveLinesAndCompletion(t *testing.T) {
	ctrl := gomock.NewController(t)
	agent := mocks.NewMockDeploymentAgentInterface(ctrl)

	lines := make(chan service.LogEntry, 1)
	lines <- service.LogEntry{Timestamp: time.Now(), Message: "Deploying to Docker"}
	close(lines)

	unsubscribed := make(chan struct{})
	agent.EXPECT().Subscribe("deploy_1").Return(
		[]service.LogEntry{{Timestamp: time.Now(), Message: "Starting backend deployment"}},
		(<-chan service.LogEntry)(lines),
		func() { close(unsubscribed) },
		nil,
	)
	agent.EXPECT().Get(gomock.Any(), "deploy_1").
		Return(&service.DeploymentRecord{ID: "deploy_1", Status: service.StatusSuccess}, nil)

	srv := streamServer(t, agent, nil)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "/stream/deploy_1"), nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var msg handlers.StreamMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "log", msg.Type)
	assert.Equal(t, "Starting backend deployment", msg.Log.Message)

	msg = handlers.StreamMessage{}
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "log", msg.Type)
	assert.Equal(t, "Deploying to Docker", msg.Log.Message)

	msg = handlers.StreamMessage{}
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "complete", msg.Type)
	require.NotNil(t, msg.Deployment)
	assert.Equal(t, service.StatusSuccess, msg.Deployment.Status)

	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure))

	select {
	case <-unsubscribed:
	case <-time.After(5 * time.Second):
		t.Fatal("subscription was not released")
	}
}

func TestStreamUnknownDeployment(t *testing.T) {
	ctrl := gomock.NewController(t)
	agent := mocks.NewMockDeploymentAgentInterface(ctrl)
	agent.EXPECT().Subscribe("missing").Return(nil, nil, nil, apperrors.ErrDeploymentNotFound)

	srv := streamServer(t, agent, nil)
	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "/stream/missing"), nil)

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStreamRejectsForeignOrigin(t *testing.T) {
	ctrl := gomock.NewController(t)
	agent := mocks.NewMockDeploymentAgentInterface(ctrl)

	lines := make(chan service.LogEntry)
	agent.EXPECT().Subscribe("deploy_2").Return(nil, (<-chan service.LogEntry)(lines), func() {}, nil)

	srv := streamServer(t, agent, []string{"https://ops.example.com"})
	header := http.Header{"Origin": []string{"https://evil.example.com"}}
	_, resp, err := websocket.DefaultDialer.DialContext(context.Background(), wsURL(srv, "/stream/deploy_2"), header)

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
