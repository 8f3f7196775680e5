package routes_test

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ops-agent-backend/internal/api/middleware"
	"ops-agent-backend/internal/api/routes"
	"ops-agent-backend/internal/auth"
	"ops-agent-backend/internal/config"
	"ops-agent-backend/internal/logger"
	"ops-agent-backend/internal/mocks"
	"ops-agent-backend/internal/process"
	"ops-agent-backend/internal/service"
	"ops-agent-backend/internal/testutils"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RoutesTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	http      *testutils.HTTPTestSuite
	agent     *service.DeploymentAgent
	databases *mocks.MockDatabaseAgentInterface
	auth      *auth.AuthService
	limiter   middleware.RateLimiter
}

func (suite *RoutesTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())

	runner := mocks.NewMockRunner(suite.ctrl)
	runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(&process.Result{}, nil).AnyTimes()

	sourceDir := suite.T().TempDir()
	require.NoError(suite.T(), os.WriteFile(filepath.Join(sourceDir, "package.json"), []byte(`{"version":"1.4.0"}`), 0o644))

	nullLogger, _ := logrustest.NewNullLogger()
	log := logger.NewFromLogrus(nullLogger)
	registry := prometheus.NewRegistry()

	suite.agent = service.NewDeploymentAgent(config.DeployConfig{
		AppName:        "app",
		SourceDir:      sourceDir,
		DistDir:        filepath.Join(suite.T().TempDir(), "dist"),
		MaxHistorySize: 100,
	}, runner, log, validator.New(), service.WithDeploymentRegisterer(registry))

	suite.databases = mocks.NewMockDatabaseAgentInterface(suite.ctrl)
	suite.databases.EXPECT().LastHealth().Return(nil).AnyTimes()

	var err error
	suite.auth, err = auth.NewAuthService("test-secret", "admin")
	require.NoError(suite.T(), err)

	suite.limiter = middleware.NewMemoryRateLimiter()

	suite.http = testutils.SetupHTTPTest()
	suite.http.Router = routes.SetupRoutes(routes.Dependencies{
		Config: &config.Config{
			AllowedOrigins:    []string{"*"},
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
			WebhookPlatform:   service.PlatformManual,
		},
		Deployments: suite.agent,
		Databases:   suite.databases,
		Auth:        suite.auth,
		Limiter:     suite.limiter,
		Logger:      log,
		Registry:    registry,
	})
}

func (suite *RoutesTestSuite) TearDownTest() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	suite.NoError(suite.agent.Shutdown(ctx))
	suite.NoError(suite.limiter.Close())
	suite.ctrl.Finish()
}

func (suite *RoutesTestSuite) bearer(role string) map[string]string {
	token, err := suite.auth.GenerateJWT(&auth.UserProfile{ID: "u-1", Username: "ops", Email: "ops@example.com", Role: role}, time.Hour)
	require.NoError(suite.T(), err)
	return map[string]string{"Authorization": "Bearer " + token}
}

func (suite *RoutesTestSuite) TestManualDeployEndToEnd() {
	body := map[string]interface{}{"platform": "manual", "environment": "staging"}
	recorder := suite.http.MakeRequestWithHeaders(http.MethodPost, "/api/v1/deployment/deploy", body, suite.bearer("admin"))

	var response struct {
		Success    bool                     `json:"success"`
		Deployment service.DeploymentRecord `json:"deployment"`
		Message    string                   `json:"message"`
	}
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusCreated, &response)

	assert.True(suite.T(), response.Success)
	assert.Equal(suite.T(), service.StatusSuccess, response.Deployment.Status)
	assert.Equal(suite.T(), service.PlatformManual, response.Deployment.Platform)
	assert.Equal(suite.T(), "staging", response.Deployment.Environment)
	assert.Equal(suite.T(), "1.4.0", response.Deployment.Version)

	var messages []string
	for _, entry := range response.Deployment.Logs {
		messages = append(messages, entry.Message)
	}
	assert.Contains(suite.T(), messages, "Manual deployment instructions generated")

	// the finished deployment is visible through status and history
	recorder = suite.http.MakeRequestWithHeaders(http.MethodGet, "/api/v1/deployment/status/"+response.Deployment.ID, nil, suite.bearer("admin"))
	assert.Equal(suite.T(), http.StatusOK, recorder.Code)

	var history struct {
		Success     bool                       `json:"success"`
		Deployments []service.DeploymentRecord `json:"deployments"`
		Total       int                        `json:"total"`
	}
	recorder = suite.http.MakeRequestWithHeaders(http.MethodGet, "/api/v1/deployment/history?environment=staging", nil, suite.bearer("admin"))
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, &history)
	require.Len(suite.T(), history.Deployments, 1)
	assert.Equal(suite.T(), response.Deployment.ID, history.Deployments[0].ID)
}

func (suite *RoutesTestSuite) TestDeployRejectsUnknownPlatform() {
	body := map[string]interface{}{"platform": "heroku", "environment": "staging"}
	recorder := suite.http.MakeRequestWithHeaders(http.MethodPost, "/api/v1/deployment/deploy", body, suite.bearer("admin"))
	assert.Equal(suite.T(), http.StatusBadRequest, recorder.Code)
}

func (suite *RoutesTestSuite) TestDeploymentRoutesRequireAdmin() {
	body := map[string]interface{}{"platform": "manual", "environment": "staging"}

	recorder := suite.http.MakeRequest(http.MethodPost, "/api/v1/deployment/deploy", body)
	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusUnauthorized, "Authorization header is required")

	recorder = suite.http.MakeRequestWithHeaders(http.MethodPost, "/api/v1/deployment/deploy", body, suite.bearer("viewer"))
	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusForbidden, "Admin access required")

	recorder = suite.http.MakeRequest(http.MethodGet, "/api/v1/database/status", nil)
	assert.Equal(suite.T(), http.StatusUnauthorized, recorder.Code)
}

func (suite *RoutesTestSuite) TestPublicEndpoints() {
	recorder := suite.http.MakeRequest(http.MethodGet, "/health", nil)
	var health map[string]interface{}
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, &health)
	assert.Equal(suite.T(), "healthy", health["status"])

	recorder = suite.http.MakeRequest(http.MethodGet, "/health/live", nil)
	assert.Equal(suite.T(), http.StatusOK, recorder.Code)

	recorder = suite.http.MakeRequest(http.MethodGet, "/metrics", nil)
	assert.Equal(suite.T(), http.StatusOK, recorder.Code)
	assert.Contains(suite.T(), recorder.Body.String(), "ops_agent_http_requests_total")
}

func (suite *RoutesTestSuite) TestUnknownRoute() {
	recorder := suite.http.MakeRequest(http.MethodGet, "/api/v1/nope", nil)

	var body map[string]interface{}
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusNotFound, &body)
	assert.Equal(suite.T(), "Endpoint not found", body["error"])
	assert.NotEmpty(suite.T(), body["request_id"])
	assert.NotEmpty(suite.T(), recorder.Header().Get(middleware.RequestIDHeader))
}

func (suite *RoutesTestSuite) TestWebhookWithoutSecretIsRejected() {
	recorder := suite.http.MakeRequestWithHeaders(http.MethodPost, "/api/v1/webhooks/github",
		map[string]interface{}{"ref": "refs/heads/main"},
		map[string]string{"X-GitHub-Event": "push"})
	assert.Equal(suite.T(), http.StatusUnauthorized, recorder.Code)
}

func TestRoutesTestSuite(t *testing.T) {
	suite.Run(t, new(RoutesTestSuite))
}
