package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"ops-agent-backend/internal/config"
	"ops-agent-backend/internal/database/models"
	apperrors "ops-agent-backend/internal/errors"
	"ops-agent-backend/internal/logger"
	"ops-agent-backend/internal/metrics"
	"ops-agent-backend/internal/process"
	"ops-agent-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

// ErrAgentShuttingDown is returned when work is submitted after Shutdown
var ErrAgentShuttingDown = errors.New("deployment agent is shutting down")

const (
	defaultHistoryLimit = 20
	defaultVersion      = "1.0.0"
	archiveTimeout      = 10 * time.Second
)

// DeploymentAgent orchestrates deployments: it allocates records, dispatches to
// the platform deployer, runs the health check and keeps a bounded history.
type DeploymentAgent struct {
	cfg       config.DeployConfig
	runner    process.Runner
	health    HealthProber
	archive   repository.DeploymentRecordRepositoryInterface
	notifier  Notifier
	logger    *logger.Logger
	validator *validator.Validate
	metrics   *metrics.Deployment
	clock     func() time.Time
	deployers map[string]platformDeployer

	mu        sync.RWMutex
	records   map[string]*deploymentState
	seq       uint64
	schedules map[string]*scheduledRun
	closed    bool

	inflight sync.WaitGroup
}

type scheduledRun struct {
	info  ScheduledDeployment
	timer *time.Timer
}

// DeploymentAgentOption customizes a DeploymentAgent
type DeploymentAgentOption func(*DeploymentAgent)

// WithArchive persists finished deployments and reloads them on Init
func WithArchive(repo repository.DeploymentRecordRepositoryInterface) DeploymentAgentOption {
	return func(a *DeploymentAgent) { a.archive = repo }
}

// WithNotifier publishes deployment lifecycle events
func WithNotifier(n Notifier) DeploymentAgentOption {
	return func(a *DeploymentAgent) { a.notifier = n }
}

// WithHealthProber replaces the HTTP health checker
func WithHealthProber(p HealthProber) DeploymentAgentOption {
	return func(a *DeploymentAgent) { a.health = p }
}

// WithClock replaces the wall clock used for timestamps
func WithClock(clock func() time.Time) DeploymentAgentOption {
	return func(a *DeploymentAgent) { a.clock = clock }
}

// WithDeploymentRegisterer registers the agent's Prometheus collectors
func WithDeploymentRegisterer(reg prometheus.Registerer) DeploymentAgentOption {
	return func(a *DeploymentAgent) { a.metrics = metrics.NewDeployment(reg) }
}

// NewDeploymentAgent creates a new deployment agent
func NewDeploymentAgent(cfg config.DeployConfig, runner process.Runner, log *logger.Logger, validator *validator.Validate, opts ...DeploymentAgentOption) *DeploymentAgent {
	if cfg.MaxHistorySize <= 0 {
		cfg.MaxHistorySize = 100
	}

	a := &DeploymentAgent{
		cfg:       cfg,
		runner:    runner,
		logger:    log,
		validator: validator,
		clock:     time.Now,
		records:   make(map[string]*deploymentState),
		schedules: make(map[string]*scheduledRun),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.health == nil {
		a.health = NewHealthChecker(cfg.HealthCheckAttempts, cfg.HealthCheckInterval, cfg.HealthCheckTimeout)
	}
	if a.metrics == nil {
		a.metrics = metrics.NewDeployment(nil)
	}

	a.deployers = map[string]platformDeployer{
		PlatformVercel: newVercelDeployer(cfg, runner),
		PlatformDocker: newDockerDeployer(cfg, runner),
		PlatformManual: newManualDeployer(cfg, runner),
	}
	return a
}

// Init loads the most recent archived deployments into the in-memory history
func (a *DeploymentAgent) Init(ctx context.Context) error {
	if a.archive == nil {
		return nil
	}

	archived, err := a.archive.ListRecent(ctx, a.cfg.MaxHistorySize)
	if err != nil {
		return fmt.Errorf("failed to load deployment history: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	// oldest first so sequence numbers follow creation order
	for i := len(archived) - 1; i >= 0; i-- {
		rec, err := recordFromModel(archived[i])
		if err != nil {
			a.logger.WithField("deployment_id", archived[i].ID).WithError(err).Warn("Skipping unreadable archived deployment")
			continue
		}
		a.seq++
		rec.seq = a.seq
		a.records[rec.ID] = newDeploymentState(rec, a.clock, a.logLine)
	}

	a.logger.WithField("count", len(a.records)).Info("Deployment history loaded")
	return nil
}

// Shutdown stops pending schedules and waits for in-flight deployments
func (a *DeploymentAgent) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	a.closed = true
	for id, run := range a.schedules {
		run.timer.Stop()
		delete(a.schedules, id)
	}
	a.mu.Unlock()

	done := make(chan struct{})
	go func() {
		a.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("deployments still running at shutdown: %w", ctx.Err())
	}
}

// Deploy runs a deployment to completion and returns the final record.
// On failure the record is returned together with the error.
func (a *DeploymentAgent) Deploy(ctx context.Context, req DeploymentRequest) (*DeploymentRecord, error) {
	if err := a.acquire(); err != nil {
		return nil, err
	}
	defer a.inflight.Done()

	d, deployer, err := a.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	return a.execute(ctx, d, deployer, req)
}

// Start allocates the record and runs the deployment in the background
func (a *DeploymentAgent) Start(ctx context.Context, req DeploymentRequest) (*DeploymentRecord, error) {
	if err := a.acquire(); err != nil {
		return nil, err
	}

	d, deployer, err := a.prepare(ctx, req)
	if err != nil {
		a.inflight.Done()
		return nil, err
	}
	rec := d.snapshot()

	runCtx := context.WithoutCancel(ctx)
	go func() {
		defer a.inflight.Done()
		if _, err := a.execute(runCtx, d, deployer, req); err != nil {
			a.logger.WithField("deployment_id", rec.ID).WithError(err).Warn("Background deployment did not succeed")
		}
	}()

	return &rec, nil
}

// acquire registers one in-flight deployment with Shutdown. Callers must
// release it with inflight.Done.
func (a *DeploymentAgent) acquire() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return ErrAgentShuttingDown
	}
	a.inflight.Add(1)
	return nil
}

// prepare validates the request and registers a pending record
func (a *DeploymentAgent) prepare(ctx context.Context, req DeploymentRequest) (*deploymentState, platformDeployer, error) {
	deployer, ok := a.deployers[req.Platform]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedPlatform, req.Platform)
	}
	if !config.IsValidEnvironment(req.Environment) {
		return nil, nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidEnvironment, req.Environment)
	}
	if a.validator != nil {
		if err := a.validator.Struct(req); err != nil {
			return nil, nil, apperrors.NewValidationError("deployment", err.Error())
		}
	}

	version := a.resolveVersion(ctx)
	now := a.clock()

	a.mu.Lock()
	a.seq++
	rec := DeploymentRecord{
		ID:          fmt.Sprintf("deploy_%d_%s", now.UnixMilli(), strings.ReplaceAll(uuid.NewString(), "-", "")[:9]),
		Status:      StatusPending,
		Platform:    req.Platform,
		Environment: req.Environment,
		Version:     version,
		Branch:      req.Branch,
		RollbackOf:  req.rollbackOf,
		Timestamp:   now,
		Logs:        []LogEntry{},
		seq:         a.seq,
	}
	d := newDeploymentState(rec, a.clock, a.logLine)
	a.records[rec.ID] = d
	a.mu.Unlock()

	a.metrics.InFlight.Inc()
	a.logger.WithFields(map[string]interface{}{
		"deployment_id": rec.ID,
		"platform":      rec.Platform,
		"environment":   rec.Environment,
		"version":       rec.Version,
	}).Info("Starting backend deployment")
	a.notify(ctx, EventDeploymentStarted, rec)

	return d, deployer, nil
}

// execute drives a prepared record through build, dispatch and health check
func (a *DeploymentAgent) execute(ctx context.Context, d *deploymentState, deployer platformDeployer, req DeploymentRequest) (*DeploymentRecord, error) {
	started := time.Now()
	defer a.finish(ctx, d, started)

	if !d.transition(StatusBuilding, "Starting deployment to %s", req.Platform) {
		return a.cancelledResult(d)
	}

	dispatchStarted := time.Now()
	err := deployer.Deploy(ctx, d, req)
	d.setDeployTime(time.Since(dispatchStarted))
	if err != nil {
		return a.failed(d, fmt.Errorf("%w: %w", apperrors.ErrDeploymentFailed, err))
	}
	if d.status() == StatusCancelled {
		return a.cancelledResult(d)
	}

	if req.HealthCheckURL != "" {
		d.logf("Performing health check...")
		err := a.health.Check(ctx, req.HealthCheckURL, func(attempt int, err error) {
			d.logf("Health check attempt %d failed: %v", attempt, err)
		})
		if err != nil {
			return a.failed(d, err)
		}
		d.logf("Health check passed: %s", req.HealthCheckURL)
	}

	if !d.transition(StatusSuccess, "Deployment completed successfully") {
		return a.cancelledResult(d)
	}

	rec := d.snapshot()
	a.logger.WithField("deployment_id", rec.ID).Info("Backend deployment completed successfully")
	return &rec, nil
}

func (a *DeploymentAgent) failed(d *deploymentState, cause error) (*DeploymentRecord, error) {
	if !d.transition(StatusError, "Deployment failed: %v", cause) {
		return a.cancelledResult(d)
	}
	rec := d.snapshot()
	a.logger.WithField("deployment_id", rec.ID).WithError(cause).Error("Backend deployment failed")
	return &rec, cause
}

func (a *DeploymentAgent) cancelledResult(d *deploymentState) (*DeploymentRecord, error) {
	rec := d.snapshot()
	return &rec, fmt.Errorf("%w: %s", apperrors.ErrDeploymentCancelled, rec.ID)
}

// finish runs regardless of outcome: trims history, archives and publishes the record
func (a *DeploymentAgent) finish(ctx context.Context, d *deploymentState, started time.Time) {
	a.trimHistory()
	a.metrics.InFlight.Dec()

	rec := d.snapshot()
	a.metrics.Results.WithLabelValues(rec.Platform, rec.Environment, string(rec.Status)).Inc()
	a.metrics.Duration.WithLabelValues(rec.Platform).Observe(time.Since(started).Seconds())

	if a.archive != nil {
		archiveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), archiveTimeout)
		defer cancel()
		if model, err := recordToModel(rec); err != nil {
			a.logger.WithField("deployment_id", rec.ID).WithError(err).Warn("Failed to encode deployment for archive")
		} else if err := a.archive.Save(archiveCtx, model); err != nil {
			a.logger.WithField("deployment_id", rec.ID).WithError(err).Warn("Failed to archive deployment")
		}
	}

	if rec.Status == StatusSuccess {
		a.notify(ctx, EventDeploymentCompleted, rec)
	} else {
		a.notify(ctx, EventDeploymentFailed, rec)
	}
}

func (a *DeploymentAgent) notify(ctx context.Context, event string, rec DeploymentRecord) {
	if a.notifier == nil {
		return
	}
	a.notifier.Notify(context.WithoutCancel(ctx), event, rec)
}

// trimHistory evicts the oldest finished records until at most MaxHistorySize
// remain. Pending and building records are never evicted, so the map may stay
// above the limit while they run.
func (a *DeploymentAgent) trimHistory() {
	a.mu.Lock()
	defer a.mu.Unlock()

	excess := len(a.records) - a.cfg.MaxHistorySize
	if excess <= 0 {
		return
	}

	all := make([]*deploymentState, 0, len(a.records))
	for _, d := range a.records {
		all = append(all, d)
	}
	// timestamp and sequence never change after creation, so no record lock is needed
	sort.Slice(all, func(i, j int) bool {
		return newer(all[j].rec.Timestamp, all[j].rec.seq, all[i].rec.Timestamp, all[i].rec.seq)
	})
	for _, d := range all {
		if excess == 0 {
			break
		}
		if !d.status().IsTerminal() {
			continue
		}
		delete(a.records, d.id())
		excess--
	}
}

// newer orders by timestamp, breaking ties by creation sequence
func newer(xTime time.Time, xSeq uint64, yTime time.Time, ySeq uint64) bool {
	if !xTime.Equal(yTime) {
		return xTime.After(yTime)
	}
	return xSeq > ySeq
}

// Cancel marks a pending or building deployment as cancelled. It returns false
// when the record is missing or already finished. Running commands are not interrupted.
func (a *DeploymentAgent) Cancel(id string) bool {
	a.mu.RLock()
	d, ok := a.records[id]
	a.mu.RUnlock()
	if !ok {
		return false
	}

	if !d.cancel() {
		return false
	}
	a.logger.WithField("deployment_id", id).Info("Deployment cancelled")
	return true
}

// Rollback redeploys with ROLLBACK_TO set to the version of a previous successful deployment
func (a *DeploymentAgent) Rollback(ctx context.Context, targetID string, req RollbackRequest) (*DeploymentRecord, error) {
	a.mu.RLock()
	target, ok := a.records[targetID]
	a.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: deployment %s not found", apperrors.ErrRollbackTargetInvalid, targetID)
	}

	targetRec := target.snapshot()
	if targetRec.Status != StatusSuccess {
		return nil, fmt.Errorf("%w: deployment %s has status %s", apperrors.ErrRollbackTargetInvalid, targetID, targetRec.Status)
	}

	deployReq := DeploymentRequest{
		Platform:             req.Platform,
		Environment:          req.Environment,
		HealthCheckURL:       req.HealthCheckURL,
		EnvironmentVariables: make(map[string]string, len(req.EnvironmentVariables)+1),
		rollbackOf:           targetID,
	}
	if deployReq.Platform == "" {
		deployReq.Platform = targetRec.Platform
	}
	if deployReq.Environment == "" {
		deployReq.Environment = targetRec.Environment
	}
	for k, v := range req.EnvironmentVariables {
		deployReq.EnvironmentVariables[k] = v
	}
	deployReq.EnvironmentVariables["ROLLBACK_TO"] = targetRec.Version

	a.logger.WithField("target_deployment_id", targetID).Info("Starting rollback")
	return a.Deploy(ctx, deployReq)
}

// Get returns a snapshot of one deployment, falling back to the archive
func (a *DeploymentAgent) Get(ctx context.Context, id string) (*DeploymentRecord, error) {
	a.mu.RLock()
	d, ok := a.records[id]
	a.mu.RUnlock()
	if ok {
		rec := d.snapshot()
		return &rec, nil
	}

	if a.archive != nil {
		model, err := a.archive.GetByID(ctx, id)
		if err == nil {
			rec, err := recordFromModel(*model)
			if err != nil {
				return nil, err
			}
			return &rec, nil
		}
		if !errors.Is(err, apperrors.ErrDeploymentNotFound) {
			return nil, err
		}
	}
	return nil, apperrors.ErrDeploymentNotFound
}

// History lists retained deployments, newest first
func (a *DeploymentAgent) History(filter HistoryFilter) []DeploymentRecord {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	all := a.snapshots()
	out := make([]DeploymentRecord, 0, limit)
	for _, rec := range all {
		if filter.Environment != "" && rec.Environment != filter.Environment {
			continue
		}
		if filter.Platform != "" && rec.Platform != filter.Platform {
			continue
		}
		if filter.Status != "" && string(rec.Status) != filter.Status {
			continue
		}
		out = append(out, rec)
		if len(out) == limit {
			break
		}
	}
	return out
}

// Metrics aggregates the retained history
func (a *DeploymentAgent) Metrics() DeploymentMetricsSummary {
	summary := DeploymentMetricsSummary{
		PlatformBreakdown:    map[string]int{},
		EnvironmentBreakdown: map[string]int{},
	}

	var buildTotal, deployTotal int64
	var buildCount, deployCount int
	for _, rec := range a.snapshots() {
		summary.TotalDeployments++
		switch rec.Status {
		case StatusSuccess:
			summary.SuccessfulDeployments++
		case StatusError:
			summary.FailedDeployments++
		}
		summary.PlatformBreakdown[rec.Platform]++
		summary.EnvironmentBreakdown[rec.Environment]++

		if rec.Metrics.BuildTime != nil {
			buildTotal += *rec.Metrics.BuildTime
			buildCount++
		}
		if rec.Metrics.DeployTime != nil {
			deployTotal += *rec.Metrics.DeployTime
			deployCount++
		}
	}

	if summary.TotalDeployments > 0 {
		summary.SuccessRate = float64(summary.SuccessfulDeployments) / float64(summary.TotalDeployments)
	}
	if buildCount > 0 {
		summary.AverageBuildTime = float64(buildTotal) / float64(buildCount)
	}
	if deployCount > 0 {
		summary.AverageDeployTime = float64(deployTotal) / float64(deployCount)
	}
	return summary
}

// Subscribe returns the log backlog of a deployment and a channel of new lines.
// The channel is closed when the deployment finishes or cancel is called.
func (a *DeploymentAgent) Subscribe(id string) ([]LogEntry, <-chan LogEntry, func(), error) {
	a.mu.RLock()
	d, ok := a.records[id]
	a.mu.RUnlock()
	if !ok {
		return nil, nil, nil, apperrors.ErrDeploymentNotFound
	}
	backlog, ch, cancel := d.subscribe()
	return backlog, ch, cancel, nil
}

func (a *DeploymentAgent) snapshots() []DeploymentRecord {
	a.mu.RLock()
	states := make([]*deploymentState, 0, len(a.records))
	for _, d := range a.records {
		states = append(states, d)
	}
	a.mu.RUnlock()

	out := make([]DeploymentRecord, 0, len(states))
	for _, d := range states {
		out = append(out, d.snapshot())
	}
	sort.Slice(out, func(i, j int) bool {
		return newer(out[i].Timestamp, out[i].seq, out[j].Timestamp, out[j].seq)
	})
	return out
}

// resolveVersion reads package.json in the source directory, then the git revision
func (a *DeploymentAgent) resolveVersion(ctx context.Context) string {
	if raw, err := os.ReadFile(filepath.Join(a.cfg.SourceDir, "package.json")); err == nil {
		var pkg struct {
			Version string `json:"version"`
		}
		if json.Unmarshal(raw, &pkg) == nil {
			if pkg.Version != "" {
				return pkg.Version
			}
			return defaultVersion
		}
	}

	res, err := a.runner.Run(ctx, process.Command{
		Name:    "git",
		Args:    []string{"rev-parse", "--short", "HEAD"},
		Dir:     a.cfg.SourceDir,
		Timeout: 10 * time.Second,
	})
	if err == nil && res != nil {
		if rev := strings.TrimSpace(res.Stdout); rev != "" {
			return rev
		}
	}
	return defaultVersion
}

func (a *DeploymentAgent) logLine(id, msg string) {
	a.logger.WithField("deployment_id", id).Debug(msg)
}

func recordToModel(rec DeploymentRecord) (*models.DeploymentRecord, error) {
	logs, err := json.Marshal(rec.Logs)
	if err != nil {
		return nil, err
	}
	m, err := json.Marshal(rec.Metrics)
	if err != nil {
		return nil, err
	}
	return &models.DeploymentRecord{
		ID:          rec.ID,
		Status:      string(rec.Status),
		Platform:    rec.Platform,
		Environment: rec.Environment,
		Version:     rec.Version,
		Branch:      rec.Branch,
		RollbackOf:  rec.RollbackOf,
		Timestamp:   rec.Timestamp,
		Sequence:    rec.seq,
		FinishedAt:  rec.FinishedAt,
		Logs:        logs,
		Metrics:     m,
	}, nil
}

func recordFromModel(m models.DeploymentRecord) (DeploymentRecord, error) {
	rec := DeploymentRecord{
		ID:          m.ID,
		Status:      DeploymentStatus(m.Status),
		Platform:    m.Platform,
		Environment: m.Environment,
		Version:     m.Version,
		Branch:      m.Branch,
		RollbackOf:  m.RollbackOf,
		Timestamp:   m.Timestamp,
		FinishedAt:  m.FinishedAt,
		Logs:        []LogEntry{},
	}
	if len(m.Logs) > 0 {
		if err := json.Unmarshal(m.Logs, &rec.Logs); err != nil {
			return rec, fmt.Errorf("decode logs: %w", err)
		}
	}
	if len(m.Metrics) > 0 {
		if err := json.Unmarshal(m.Metrics, &rec.Metrics); err != nil {
			return rec, fmt.Errorf("decode metrics: %w", err)
		}
	}
	return rec, nil
}
