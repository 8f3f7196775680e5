package service_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"ops-agent-backend/internal/config"
	apperrors "ops-agent-backend/internal/errors"
	"ops-agent-backend/internal/logger"
	"ops-agent-backend/internal/mocks"
	"ops-agent-backend/internal/process"
	"ops-agent-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// stubProber fails a fixed number of attempts before giving up
type stubProber struct {
	attempts int
	err      error
}

func (p *stubProber) Check(_ context.Context, url string, onFailure func(int, error)) error {
	if p.err == nil {
		return nil
	}
	for i := 1; i <= p.attempts; i++ {
		onFailure(i, p.err)
	}
	return fmt.Errorf("%w: %s after %d attempts: %v", apperrors.ErrHealthCheckFailed, url, p.attempts, p.err)
}

// DeploymentAgentTestSuite defines the test suite for DeploymentAgent
type DeploymentAgentTestSuite struct {
	suite.Suite
	ctrl   *gomock.Controller
	runner *mocks.MockRunner
	cfg    config.DeployConfig
	agent  *service.DeploymentAgent
	opts   []service.DeploymentAgentOption

	mu       sync.Mutex
	commands []process.Command
	handle   func(cmd process.Command) (*process.Result, error)
}

// SetupTest sets up the test suite
func (suite *DeploymentAgentTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.runner = mocks.NewMockRunner(suite.ctrl)
	suite.commands = nil
	suite.handle = nil

	sourceDir := suite.T().TempDir()
	require.NoError(suite.T(), os.WriteFile(filepath.Join(sourceDir, "package.json"), []byte(`{"version":"2.3.4"}`), 0o644))

	suite.cfg = config.DeployConfig{
		AppName:               "app",
		SourceDir:             sourceDir,
		DistDir:               filepath.Join(suite.T().TempDir(), "dist"),
		BuildCommand:          "npm run build",
		VercelCommand:         "npx vercel",
		ContainerPort:         3000,
		MaxHistorySize:        100,
		DockerPortDevelopment: 3001,
		DockerPortStaging:     3002,
		DockerPortProduction:  80,
	}

	var tick atomic.Int64
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	suite.opts = []service.DeploymentAgentOption{
		service.WithClock(func() time.Time { return base.Add(time.Duration(tick.Add(1)) * time.Millisecond) }),
		service.WithDeploymentRegisterer(prometheus.NewRegistry()),
		service.WithHealthProber(&stubProber{}),
	}

	suite.runner.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cmd process.Command) (*process.Result, error) {
			suite.mu.Lock()
			suite.commands = append(suite.commands, cmd)
			handle := suite.handle
			suite.mu.Unlock()
			if handle != nil {
				return handle(cmd)
			}
			return &process.Result{}, nil
		}).AnyTimes()

	suite.agent = suite.newAgent()
}

// TearDownTest cleans up after each test
func (suite *DeploymentAgentTestSuite) TearDownTest() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	suite.NoError(suite.agent.Shutdown(ctx))
	suite.ctrl.Finish()
}

func (suite *DeploymentAgentTestSuite) newAgent(opts ...service.DeploymentAgentOption) *service.DeploymentAgent {
	nullLogger, _ := logrustest.NewNullLogger()
	return service.NewDeploymentAgent(suite.cfg, suite.runner, logger.NewFromLogrus(nullLogger), validator.New(),
		append(append([]service.DeploymentAgentOption{}, suite.opts...), opts...)...)
}

func (suite *DeploymentAgentTestSuite) setHandler(h func(cmd process.Command) (*process.Result, error)) {
	suite.mu.Lock()
	suite.handle = h
	suite.mu.Unlock()
}

func (suite *DeploymentAgentTestSuite) ran(prefix string) []process.Command {
	suite.mu.Lock()
	defer suite.mu.Unlock()
	var out []process.Command
	for _, cmd := range suite.commands {
		if strings.HasPrefix(cmd.String(), prefix) {
			out = append(out, cmd)
		}
	}
	return out
}

func messages(rec *service.DeploymentRecord) []string {
	out := make([]string, 0, len(rec.Logs))
	for _, l := range rec.Logs {
		out = append(out, l.Message)
	}
	return out
}

func containsMessage(rec *service.DeploymentRecord, substr string) bool {
	for _, m := range messages(rec) {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

// TestManualDeploySucceeds tests the manual packaging flow end to end
func (suite *DeploymentAgentTestSuite) TestManualDeploySucceeds() {
	rec, err := suite.agent.Deploy(context.Background(), service.DeploymentRequest{
		Platform:    service.PlatformManual,
		Environment: "staging",
		Branch:      "main",
	})

	suite.Require().NoError(err)
	suite.Equal(service.StatusSuccess, rec.Status)
	suite.Equal("2.3.4", rec.Version)
	suite.NotNil(rec.FinishedAt)
	suite.NotNil(rec.Metrics.BuildTime)
	suite.NotNil(rec.Metrics.DeployTime)
	suite.True(strings.HasPrefix(rec.ID, "deploy_"))
	suite.True(containsMessage(rec, "Manual deployment instructions generated"))

	tars := suite.ran("tar -czf")
	suite.Require().Len(tars, 1)
	suite.Equal(suite.cfg.SourceDir, tars[0].Dir)
	suite.Contains(tars[0].Args, "--exclude=node_modules")

	manifests, err := filepath.Glob(filepath.Join(suite.cfg.DistDir, "*.yaml"))
	suite.Require().NoError(err)
	suite.Len(manifests, 1)
}

// TestRejectsInvalidRequests tests that no record is created for bad requests
func (suite *DeploymentAgentTestSuite) TestRejectsInvalidRequests() {
	_, err := suite.agent.Deploy(context.Background(), service.DeploymentRequest{Platform: "heroku", Environment: "staging"})
	suite.True(errors.Is(err, apperrors.ErrUnsupportedPlatform))

	_, err = suite.agent.Deploy(context.Background(), service.DeploymentRequest{Platform: service.PlatformManual, Environment: "qa"})
	suite.True(errors.Is(err, apperrors.ErrInvalidEnvironment))

	_, err = suite.agent.Deploy(context.Background(), service.DeploymentRequest{
		Platform:       service.PlatformManual,
		Environment:    "staging",
		HealthCheckURL: "not a url",
	})
	suite.True(apperrors.IsValidation(err))

	suite.Empty(suite.agent.History(service.HistoryFilter{}))
	suite.Empty(suite.ran(""))
}

// TestVercelProductionDeploy tests flags, URL extraction and best-effort variables
func (suite *DeploymentAgentTestSuite) TestVercelProductionDeploy() {
	suite.setHandler(func(cmd process.Command) (*process.Result, error) {
		line := cmd.String()
		switch {
		case strings.HasPrefix(line, "npx vercel env add BROKEN"), strings.HasPrefix(line, "npx vercel env rm BROKEN"):
			return &process.Result{ExitCode: 1}, &process.ExitError{Command: line, ExitCode: 1}
		case strings.HasPrefix(line, "npx vercel --prod"):
			return &process.Result{Stdout: "Deploying...\nhttps://app-abc123.vercel.app\n"}, nil
		}
		return &process.Result{Stdout: "ok"}, nil
	})

	rec, err := suite.agent.Deploy(context.Background(), service.DeploymentRequest{
		Platform:             service.PlatformVercel,
		Environment:          "production",
		EnvironmentVariables: map[string]string{"API_KEY": "secret", "BROKEN": "x"},
	})

	suite.Require().NoError(err)
	suite.Equal(service.StatusSuccess, rec.Status)
	suite.True(containsMessage(rec, "Deployment URL: https://app-abc123.vercel.app"))
	suite.True(containsMessage(rec, "Warning: Could not set BROKEN"))
	suite.False(containsMessage(rec, "Warning: Could not set API_KEY"))

	adds := suite.ran("npx vercel env add API_KEY production -y")
	suite.Require().Len(adds, 1)
	suite.Equal("secret", adds[0].Stdin)
	suite.Len(suite.ran("npx vercel --prod --yes"), 1)
	suite.Len(suite.ran("npm run build"), 1)
}

// TestVercelPreviewDeployOmitsProdFlag tests non-production deploys
func (suite *DeploymentAgentTestSuite) TestVercelPreviewDeployOmitsProdFlag() {
	rec, err := suite.agent.Deploy(context.Background(), service.DeploymentRequest{
		Platform:    service.PlatformVercel,
		Environment: "staging",
	})

	suite.Require().NoError(err)
	suite.Equal(service.StatusSuccess, rec.Status)
	suite.Len(suite.ran("npx vercel --yes"), 1)
	suite.Empty(suite.ran("npx vercel --prod"))
	suite.False(containsMessage(rec, "Deployment URL"))
}

// TestDockerToleratesMissingContainer tests the stop/remove step on first deploy
func (suite *DeploymentAgentTestSuite) TestDockerToleratesMissingContainer() {
	suite.setHandler(func(cmd process.Command) (*process.Result, error) {
		line := cmd.String()
		if strings.HasPrefix(line, "docker stop") || strings.HasPrefix(line, "docker rm") {
			return &process.Result{ExitCode: 1}, &process.ExitError{Command: line, ExitCode: 1}
		}
		if strings.HasPrefix(line, "docker run") {
			return &process.Result{Stdout: "c0ffee\n"}, nil
		}
		return &process.Result{}, nil
	})

	rec, err := suite.agent.Deploy(context.Background(), service.DeploymentRequest{
		Platform:             service.PlatformDocker,
		Environment:          "staging",
		EnvironmentVariables: map[string]string{"NODE_ENV": "staging"},
	})

	suite.Require().NoError(err)
	suite.Equal(service.StatusSuccess, rec.Status)
	suite.True(containsMessage(rec, "No existing container to stop"))
	suite.True(containsMessage(rec, "Container started: c0ffee"))

	suite.Len(suite.ran("docker build -t app:staging-2.3.4 ."), 1)
	runs := suite.ran("docker run")
	suite.Require().Len(runs, 1)
	suite.Equal([]string{
		"run", "-d", "--name", "app-staging", "-p", "3002:3000", "-e", "NODE_ENV=staging", "app:staging-2.3.4",
	}, runs[0].Args)
}

// TestBuildFailureMarksError tests that a failing command ends the deployment in error
func (suite *DeploymentAgentTestSuite) TestBuildFailureMarksError() {
	suite.setHandler(func(cmd process.Command) (*process.Result, error) {
		return &process.Result{Stderr: "boom", ExitCode: 2}, &process.ExitError{Command: cmd.String(), ExitCode: 2, Stderr: "boom"}
	})

	rec, err := suite.agent.Deploy(context.Background(), service.DeploymentRequest{
		Platform:    service.PlatformDocker,
		Environment: "development",
	})

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrDeploymentFailed))
	suite.Require().NotNil(rec)
	suite.Equal(service.StatusError, rec.Status)
	suite.True(containsMessage(rec, "Deployment failed"))
	suite.Empty(suite.ran("docker run"))

	summary := suite.agent.Metrics()
	suite.Equal(1, summary.FailedDeployments)
	suite.Equal(0.0, summary.SuccessRate)
}

// TestHealthCheckFailureMarksError tests that success waits for the health check
func (suite *DeploymentAgentTestSuite) TestHealthCheckFailureMarksError() {
	suite.agent = suite.newAgent(service.WithHealthProber(&stubProber{attempts: 2, err: errors.New("connection refused")}))

	rec, err := suite.agent.Deploy(context.Background(), service.DeploymentRequest{
		Platform:       service.PlatformManual,
		Environment:    "staging",
		HealthCheckURL: "http://localhost:3000/api/health",
	})

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrHealthCheckFailed))
	suite.Equal(service.StatusError, rec.Status)
	suite.True(containsMessage(rec, "Performing health check..."))
	suite.True(containsMessage(rec, "Health check attempt 2 failed"))
	suite.False(containsMessage(rec, "Deployment completed successfully"))
}

// TestCancelDuringBuild tests that a cancelled record stays cancelled when its command finishes
func (suite *DeploymentAgentTestSuite) TestCancelDuringBuild() {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	suite.setHandler(func(cmd process.Command) (*process.Result, error) {
		if strings.HasPrefix(cmd.String(), "docker build") {
			once.Do(func() { close(started) })
			<-release
		}
		return &process.Result{}, nil
	})

	rec, err := suite.agent.Start(context.Background(), service.DeploymentRequest{
		Platform:    service.PlatformDocker,
		Environment: "staging",
	})
	suite.Require().NoError(err)

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		suite.FailNow("build never started")
	}

	suite.True(suite.agent.Cancel(rec.ID))
	close(release)

	suite.Eventually(func() bool {
		got, err := suite.agent.Get(context.Background(), rec.ID)
		return err == nil && got.FinishedAt != nil && got.Status == service.StatusCancelled
	}, 5*time.Second, 10*time.Millisecond)

	suite.Require().NoError(suite.agent.Shutdown(context.Background()))
	got, err := suite.agent.Get(context.Background(), rec.ID)
	suite.Require().NoError(err)
	suite.Equal(service.StatusCancelled, got.Status)
	suite.True(containsMessage(got, "Deployment cancelled by user"))
	suite.Empty(suite.ran("docker run"))
	suite.False(suite.agent.Cancel(rec.ID))
}

// TestCancelUnknownOrFinished tests cancel on records that cannot be cancelled
func (suite *DeploymentAgentTestSuite) TestCancelUnknownOrFinished() {
	suite.False(suite.agent.Cancel("deploy_missing"))

	rec, err := suite.agent.Deploy(context.Background(), service.DeploymentRequest{
		Platform:    service.PlatformManual,
		Environment: "development",
	})
	suite.Require().NoError(err)

	suite.False(suite.agent.Cancel(rec.ID))
	got, err := suite.agent.Get(context.Background(), rec.ID)
	suite.Require().NoError(err)
	suite.Equal(service.StatusSuccess, got.Status)
}

// TestHistoryIsTrimmed tests that only the newest records are retained
func (suite *DeploymentAgentTestSuite) TestHistoryIsTrimmed() {
	suite.cfg.MaxHistorySize = 3
	suite.agent = suite.newAgent()

	var ids []string
	for i := 0; i < 5; i++ {
		rec, err := suite.agent.Deploy(context.Background(), service.DeploymentRequest{
			Platform:    service.PlatformManual,
			Environment: "staging",
		})
		suite.Require().NoError(err)
		ids = append(ids, rec.ID)
	}

	history := suite.agent.History(service.HistoryFilter{Limit: 10})
	suite.Require().Len(history, 3)
	suite.Equal([]string{ids[4], ids[3], ids[2]}, []string{history[0].ID, history[1].ID, history[2].ID})

	_, err := suite.agent.Get(context.Background(), ids[0])
	suite.True(errors.Is(err, apperrors.ErrDeploymentNotFound))
}

// TestHistoryFilters tests the filter and limit options
func (suite *DeploymentAgentTestSuite) TestHistoryFilters() {
	for _, env := range []string{"staging", "production", "staging"} {
		_, err := suite.agent.Deploy(context.Background(), service.DeploymentRequest{Platform: service.PlatformManual, Environment: env})
		suite.Require().NoError(err)
	}

	suite.Len(suite.agent.History(service.HistoryFilter{Environment: "staging"}), 2)
	suite.Len(suite.agent.History(service.HistoryFilter{Limit: 1}), 1)
	suite.Len(suite.agent.History(service.HistoryFilter{Platform: service.PlatformDocker}), 0)
	suite.Len(suite.agent.History(service.HistoryFilter{Status: string(service.StatusSuccess)}), 3)
}

// TestRollback tests rollback target validation and the redeploy
func (suite *DeploymentAgentTestSuite) TestRollback() {
	_, err := suite.agent.Rollback(context.Background(), "deploy_missing", service.RollbackRequest{})
	suite.True(errors.Is(err, apperrors.ErrRollbackTargetInvalid))

	suite.setHandler(func(cmd process.Command) (*process.Result, error) {
		return &process.Result{ExitCode: 1}, &process.ExitError{Command: cmd.String(), ExitCode: 1}
	})
	failed, _ := suite.agent.Deploy(context.Background(), service.DeploymentRequest{Platform: service.PlatformDocker, Environment: "staging"})
	suite.Require().NotNil(failed)
	_, err = suite.agent.Rollback(context.Background(), failed.ID, service.RollbackRequest{})
	suite.True(errors.Is(err, apperrors.ErrRollbackTargetInvalid))

	suite.setHandler(nil)
	target, err := suite.agent.Deploy(context.Background(), service.DeploymentRequest{Platform: service.PlatformDocker, Environment: "staging"})
	suite.Require().NoError(err)

	rec, err := suite.agent.Rollback(context.Background(), target.ID, service.RollbackRequest{})
	suite.Require().NoError(err)
	suite.Equal(service.StatusSuccess, rec.Status)
	suite.Equal(target.ID, rec.RollbackOf)
	suite.Equal("staging", rec.Environment)
	suite.Equal(service.PlatformDocker, rec.Platform)

	runs := suite.ran("docker run")
	suite.Require().NotEmpty(runs)
	suite.Contains(runs[len(runs)-1].Args, "ROLLBACK_TO=2.3.4")
}

// TestMetrics tests the aggregate summary
func (suite *DeploymentAgentTestSuite) TestMetrics() {
	empty := suite.agent.Metrics()
	suite.Equal(0, empty.TotalDeployments)
	suite.Equal(0.0, empty.SuccessRate)

	_, err := suite.agent.Deploy(context.Background(), service.DeploymentRequest{Platform: service.PlatformManual, Environment: "staging"})
	suite.Require().NoError(err)
	suite.setHandler(func(cmd process.Command) (*process.Result, error) {
		return nil, &process.ExitError{Command: cmd.String(), ExitCode: -1}
	})
	_, err = suite.agent.Deploy(context.Background(), service.DeploymentRequest{Platform: service.PlatformDocker, Environment: "production"})
	suite.Require().Error(err)

	summary := suite.agent.Metrics()
	suite.Equal(2, summary.TotalDeployments)
	suite.Equal(1, summary.SuccessfulDeployments)
	suite.Equal(1, summary.FailedDeployments)
	suite.InDelta(0.5, summary.SuccessRate, 1e-9)
	suite.Equal(map[string]int{service.PlatformManual: 1, service.PlatformDocker: 1}, summary.PlatformBreakdown)
	suite.Equal(map[string]int{"staging": 1, "production": 1}, summary.EnvironmentBreakdown)
}

// TestArchiveReceivesFinishedRecords tests persistence of terminal records
func (suite *DeploymentAgentTestSuite) TestArchiveReceivesFinishedRecords() {
	repo := mocks.NewMockDeploymentRecordRepositoryInterface(suite.ctrl)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	suite.agent = suite.newAgent(service.WithArchive(repo))

	_, err := suite.agent.Deploy(context.Background(), service.DeploymentRequest{Platform: service.PlatformManual, Environment: "staging"})
	suite.Require().NoError(err)
}

// TestSubscribeReceivesLinesUntilFinished tests the live log stream
func (suite *DeploymentAgentTestSuite) TestSubscribeReceivesLinesUntilFinished() {
	release := make(chan struct{})
	suite.setHandler(func(cmd process.Command) (*process.Result, error) {
		if strings.HasPrefix(cmd.String(), "docker build") {
			<-release
			if cmd.Stream != nil {
				cmd.Stream("Step 1/3 : FROM node:20", false)
			}
		}
		return &process.Result{}, nil
	})

	rec, err := suite.agent.Start(context.Background(), service.DeploymentRequest{Platform: service.PlatformDocker, Environment: "staging"})
	suite.Require().NoError(err)

	backlog, ch, unsubscribe, err := suite.agent.Subscribe(rec.ID)
	suite.Require().NoError(err)
	defer unsubscribe()
	close(release)

	var lines []string
	for _, l := range backlog {
		lines = append(lines, l.Message)
	}
	for l := range ch {
		lines = append(lines, l.Message)
	}

	joined := strings.Join(lines, "\n")
	suite.Contains(joined, "Step 1/3 : FROM node:20")
	suite.Contains(joined, "Deployment completed successfully")

	_, _, _, err = suite.agent.Subscribe("deploy_missing")
	suite.True(errors.Is(err, apperrors.ErrDeploymentNotFound))
}

// TestTerminalStatusNeverChanges tests that finished records are immutable
func (suite *DeploymentAgentTestSuite) TestTerminalStatusNeverChanges() {
	platforms := []string{service.PlatformManual, service.PlatformDocker, service.PlatformVercel}
	for i, platform := range platforms {
		if i%2 == 1 {
			suite.setHandler(func(cmd process.Command) (*process.Result, error) {
				return nil, &process.ExitError{Command: cmd.String(), ExitCode: 1}
			})
		} else {
			suite.setHandler(nil)
		}
		rec, _ := suite.agent.Deploy(context.Background(), service.DeploymentRequest{Platform: platform, Environment: "staging"})
		suite.Require().NotNil(rec)
		suite.True(rec.Status.IsTerminal())

		suite.False(suite.agent.Cancel(rec.ID))
		got, err := suite.agent.Get(context.Background(), rec.ID)
		suite.Require().NoError(err)
		suite.Equal(rec.Status, got.Status)
		suite.Equal(rec.FinishedAt, got.FinishedAt)
		suite.Len(got.Logs, len(rec.Logs))
	}
}

// TestShutdownRejectsNewWork tests that no deployment starts after shutdown
func (suite *DeploymentAgentTestSuite) TestShutdownRejectsNewWork() {
	suite.Require().NoError(suite.agent.Shutdown(context.Background()))

	_, err := suite.agent.Start(context.Background(), service.DeploymentRequest{Platform: service.PlatformManual, Environment: "staging"})
	suite.ErrorIs(err, service.ErrAgentShuttingDown)
}

// TestHistoryTrimKeepsRunningDeployments tests that eviction skips unfinished records
func (suite *DeploymentAgentTestSuite) TestHistoryTrimKeepsRunningDeployments() {
	suite.cfg.MaxHistorySize = 1
	suite.agent = suite.newAgent()

	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	suite.setHandler(func(cmd process.Command) (*process.Result, error) {
		if strings.HasPrefix(cmd.String(), "docker build") {
			once.Do(func() { close(started) })
			<-release
		}
		return &process.Result{}, nil
	})

	running, err := suite.agent.Start(context.Background(), service.DeploymentRequest{
		Platform:    service.PlatformDocker,
		Environment: "staging",
	})
	suite.Require().NoError(err)
	select {
	case <-started:
	case <-time.After(5 * time.Second):
		suite.FailNow("build never started")
	}

	for i := 0; i < 2; i++ {
		_, err := suite.agent.Deploy(context.Background(), service.DeploymentRequest{
			Platform:    service.PlatformManual,
			Environment: "staging",
		})
		suite.Require().NoError(err)
	}

	got, err := suite.agent.Get(context.Background(), running.ID)
	suite.Require().NoError(err)
	suite.Equal(service.StatusBuilding, got.Status)
	suite.True(suite.agent.Cancel(running.ID))
	close(release)

	suite.Eventually(func() bool {
		got, err := suite.agent.Get(context.Background(), running.ID)
		return err == nil && got.FinishedAt != nil && got.Status == service.StatusCancelled
	}, 5*time.Second, 10*time.Millisecond)
	suite.Len(suite.agent.History(service.HistoryFilter{Limit: 10}), 1)
}

// TestShutdownWaitsForSynchronousDeploy tests that Deploy and Rollback are tracked by Shutdown
func (suite *DeploymentAgentTestSuite) TestShutdownWaitsForSynchronousDeploy() {
	target, err := suite.agent.Deploy(context.Background(), service.DeploymentRequest{
		Platform:    service.PlatformManual,
		Environment: "staging",
	})
	suite.Require().NoError(err)

	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	suite.setHandler(func(cmd process.Command) (*process.Result, error) {
		if strings.HasPrefix(cmd.String(), "docker build") {
			once.Do(func() { close(started) })
			<-release
		}
		return &process.Result{}, nil
	})

	type outcome struct {
		rec *service.DeploymentRecord
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		rec, err := suite.agent.Deploy(context.Background(), service.DeploymentRequest{
			Platform:    service.PlatformDocker,
			Environment: "staging",
		})
		done <- outcome{rec, err}
	}()
	select {
	case <-started:
	case <-time.After(5 * time.Second):
		suite.FailNow("build never started")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	suite.ErrorIs(suite.agent.Shutdown(ctx), context.DeadlineExceeded)

	_, err = suite.agent.Deploy(context.Background(), service.DeploymentRequest{Platform: service.PlatformManual, Environment: "staging"})
	suite.ErrorIs(err, service.ErrAgentShuttingDown)
	_, err = suite.agent.Rollback(context.Background(), target.ID, service.RollbackRequest{})
	suite.ErrorIs(err, service.ErrAgentShuttingDown)

	close(release)
	suite.Require().NoError(suite.agent.Shutdown(context.Background()))

	select {
	case out := <-done:
		suite.Require().NoError(out.err)
		suite.Equal(service.StatusSuccess, out.rec.Status)
	case <-time.After(5 * time.Second):
		suite.Fail("deployment never returned")
	}
}

// TestDeploymentAgentTestSuite runs the test suite
func TestDeploymentAgentTestSuite(t *testing.T) {
	suite.Run(t, new(DeploymentAgentTestSuite))
}

// TestStatusIsTerminal tests the terminal status helper
func TestStatusIsTerminal(t *testing.T) {
	assert.False(t, service.StatusPending.IsTerminal())
	assert.False(t, service.StatusBuilding.IsTerminal())
	assert.True(t, service.StatusSuccess.IsTerminal())
	assert.True(t, service.StatusError.IsTerminal())
	assert.True(t, service.StatusCancelled.IsTerminal())
}
