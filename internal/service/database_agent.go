package service

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"sort"
	"strconv"
	"sync"
	"time"

	"ops-agent-backend/internal/config"
	apperrors "ops-agent-backend/internal/errors"
	"ops-agent-backend/internal/logger"
	"ops-agent-backend/internal/metrics"
	"ops-agent-backend/internal/process"
	"ops-agent-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

const (
	slowQueryThreshold  = time.Second
	maxQueryMetrics     = 1000
	maxLoggedQueryChars = 200
	defaultMetricsHours = 24

	healthyResponseTime  = 100 * time.Millisecond
	degradedResponseTime = time.Second
	maxActiveConnections = 80

	healthProbeQuery = `SELECT 1 AS test, NOW() AS timestamp`
	connectionsQuery = `SELECT
		(SELECT count(*) FROM pg_stat_activity WHERE state = 'active') AS active,
		(SELECT count(*) FROM pg_stat_activity WHERE state = 'idle') AS idle,
		(SELECT count(*) FROM pg_stat_activity WHERE wait_event_type IS NOT NULL) AS waiting`
)

// environmentPool is one connection pool instance. A closed instance is never
// reopened; Initialize registers a fresh one.
type environmentPool struct {
	pool     *pgxpool.Pool
	settings config.EnvironmentDatabase
}

// DatabaseAgent manages per-environment PostgreSQL pools and the maintenance
// operations that run against them.
type DatabaseAgent struct {
	cfg       config.DatabaseConfig
	settings  func(environment string) config.EnvironmentDatabase
	runner    process.Runner
	storage   ObjectStorage
	archive   repository.BackupRecordRepositoryInterface
	logger    *logger.Logger
	validator *validator.Validate
	metrics   *metrics.Database
	clock     func() time.Time

	mu      sync.RWMutex
	pools   map[string]*environmentPool
	states  map[string]PoolState
	health  map[string]DatabaseHealth
	backups map[string]BackupInfo

	metricsMu    sync.Mutex
	queryMetrics []QueryMetric

	monitorMu     sync.Mutex
	monitorCancel context.CancelFunc
	monitorDone   chan struct{}
}

// DatabaseAgentOption customizes a DatabaseAgent
type DatabaseAgentOption func(*DatabaseAgent)

// WithObjectStorage uploads completed backups to object storage
func WithObjectStorage(s ObjectStorage) DatabaseAgentOption {
	return func(a *DatabaseAgent) { a.storage = s }
}

// WithBackupArchive persists backup records
func WithBackupArchive(repo repository.BackupRecordRepositoryInterface) DatabaseAgentOption {
	return func(a *DatabaseAgent) { a.archive = repo }
}

// WithDatabaseClock replaces the wall clock used for timestamps
func WithDatabaseClock(clock func() time.Time) DatabaseAgentOption {
	return func(a *DatabaseAgent) { a.clock = clock }
}

// WithDatabaseRegisterer registers the agent's Prometheus collectors
func WithDatabaseRegisterer(reg prometheus.Registerer) DatabaseAgentOption {
	return func(a *DatabaseAgent) { a.metrics = metrics.NewDatabase(reg) }
}

// WithValidator validates initialize overrides
func WithValidator(v *validator.Validate) DatabaseAgentOption {
	return func(a *DatabaseAgent) { a.validator = v }
}

// NewDatabaseAgent creates a database agent. settings resolves the configured
// connection settings for an environment.
func NewDatabaseAgent(cfg config.DatabaseConfig, settings func(string) config.EnvironmentDatabase, runner process.Runner, log *logger.Logger, opts ...DatabaseAgentOption) *DatabaseAgent {
	if cfg.MonitorInterval <= 0 {
		cfg.MonitorInterval = 30 * time.Second
	}
	if cfg.BackupDir == "" {
		cfg.BackupDir = "backups"
	}
	if cfg.BackupPrefix == "" {
		cfg.BackupPrefix = "app"
	}

	a := &DatabaseAgent{
		cfg:      cfg,
		settings: settings,
		runner:   runner,
		logger:   log,
		clock:    time.Now,
		pools:    make(map[string]*environmentPool),
		states:   make(map[string]PoolState),
		health:   make(map[string]DatabaseHealth),
		backups:  make(map[string]BackupInfo),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.metrics == nil {
		a.metrics = metrics.NewDatabase(nil)
	}
	return a
}

// Initialize opens a pool for the environment and probes it. A successful call
// replaces and closes any pool already registered for the environment; a
// failed call leaves the registered pool untouched.
func (a *DatabaseAgent) Initialize(ctx context.Context, environment string, override *InitializeDatabaseRequest) error {
	if !config.IsValidEnvironment(environment) {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidEnvironment, environment)
	}
	if override != nil && a.validator != nil {
		if err := a.validator.Struct(override); err != nil {
			return apperrors.NewValidationError("database", err.Error())
		}
	}

	settings := applyOverride(a.settings(environment), override)
	log := a.logger.WithFields(map[string]interface{}{
		"environment": environment,
		"host":        settings.Host,
		"database":    settings.Database,
	})
	log.Info("Initializing database connection pool")

	a.setState(environment, PoolInitializing)

	pool, err := a.connect(ctx, settings)
	if err != nil {
		a.mu.Lock()
		if _, ok := a.pools[environment]; ok {
			a.states[environment] = PoolReady
		} else {
			a.states[environment] = PoolUninitialized
		}
		a.mu.Unlock()

		log.WithError(err).Error("Failed to initialize database connection pool")
		return fmt.Errorf("%w: %s: %v", apperrors.ErrConnectionFailed, environment, err)
	}

	a.mu.Lock()
	previous := a.pools[environment]
	a.pools[environment] = &environmentPool{pool: pool, settings: settings}
	a.states[environment] = PoolReady
	a.mu.Unlock()

	if previous != nil {
		previous.pool.Close()
	}

	log.Info("Database connection pool initialized")
	return nil
}

func (a *DatabaseAgent) connect(ctx context.Context, settings config.EnvironmentDatabase) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(connectionString(settings))
	if err != nil {
		return nil, err
	}
	if settings.PoolMax > 0 {
		poolCfg.MaxConns = int32(settings.PoolMax)
	}
	if settings.PoolMin > 0 && int32(settings.PoolMin) <= poolCfg.MaxConns {
		poolCfg.MinConns = int32(settings.PoolMin)
	}
	if settings.IdleTimeout > 0 {
		poolCfg.MaxConnIdleTime = settings.IdleTimeout
	}
	if settings.ConnectionTimeout > 0 {
		poolCfg.ConnConfig.ConnectTimeout = settings.ConnectionTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}

	probeCtx := ctx
	if settings.ConnectionTimeout > 0 {
		var cancel context.CancelFunc
		probeCtx, cancel = context.WithTimeout(ctx, settings.ConnectionTimeout)
		defer cancel()
	}

	conn, err := pool.Acquire(probeCtx)
	if err != nil {
		pool.Close()
		return nil, err
	}

	var now time.Time
	err = conn.QueryRow(probeCtx, "SELECT NOW()").Scan(&now)
	conn.Release()
	if err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func connectionString(s config.EnvironmentDatabase) string {
	sslMode := "disable"
	if s.SSL {
		sslMode = "require"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(s.Username, s.Password),
		Host:     net.JoinHostPort(s.Host, strconv.Itoa(s.Port)),
		Path:     "/" + s.Database,
		RawQuery: url.Values{"sslmode": []string{sslMode}}.Encode(),
	}
	return u.String()
}

func applyOverride(s config.EnvironmentDatabase, o *InitializeDatabaseRequest) config.EnvironmentDatabase {
	if o == nil {
		return s
	}
	if o.Host != "" {
		s.Host = o.Host
	}
	if o.Port > 0 {
		s.Port = o.Port
	}
	if o.Database != "" {
		s.Database = o.Database
	}
	if o.Username != "" {
		s.Username = o.Username
	}
	if o.Password != "" {
		s.Password = o.Password
	}
	if o.SSL != nil {
		s.SSL = *o.SSL
	}
	if o.PoolMin > 0 {
		s.PoolMin = o.PoolMin
	}
	if o.PoolMax > 0 {
		s.PoolMax = o.PoolMax
	}
	if o.ConnectionTimeout > 0 {
		s.ConnectionTimeout = time.Duration(o.ConnectionTimeout) * time.Millisecond
	}
	if o.IdleTimeout > 0 {
		s.IdleTimeout = time.Duration(o.IdleTimeout) * time.Millisecond
	}
	return s
}

func (a *DatabaseAgent) setState(environment string, state PoolState) {
	a.mu.Lock()
	a.states[environment] = state
	a.mu.Unlock()
}

// PoolState reports the lifecycle state of an environment's pool
func (a *DatabaseAgent) PoolState(environment string) PoolState {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if state, ok := a.states[environment]; ok {
		return state
	}
	return PoolUninitialized
}

// PoolStats returns the pool statistics of an initialized environment
func (a *DatabaseAgent) PoolStats(environment string) (*pgxpool.Stat, error) {
	p, err := a.pool(environment)
	if err != nil {
		return nil, err
	}
	return p.pool.Stat(), nil
}

func (a *DatabaseAgent) pool(environment string) (*environmentPool, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	p, ok := a.pools[environment]
	if !ok {
		return nil, fmt.Errorf("%w for %s", apperrors.ErrNoConnectionPool, environment)
	}
	return p, nil
}

// connectionSettings prefers the settings of the live pool, which include any
// initialize overrides
func (a *DatabaseAgent) connectionSettings(environment string) config.EnvironmentDatabase {
	if p, err := a.pool(environment); err == nil {
		return p.settings
	}
	return a.settings(environment)
}

// ExecuteQuery runs a query on the environment's pool and returns its rows as
// column maps. The connection is always released back to the pool.
func (a *DatabaseAgent) ExecuteQuery(ctx context.Context, environment, query string, args ...any) ([]map[string]any, error) {
	p, err := a.pool(environment)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	rows, err := a.query(ctx, p.pool, query, args...)
	a.observe(environment, query, time.Since(started), p.pool.Stat(), err)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (a *DatabaseAgent) query(ctx context.Context, pool *pgxpool.Pool, query string, args ...any) ([]map[string]any, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrConnectionFailed, err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToMap)
}

// exec runs a statement without collecting rows. Without arguments pgx uses
// the simple protocol, which accepts maintenance commands and multiple statements.
func (a *DatabaseAgent) exec(ctx context.Context, environment, statement string) error {
	p, err := a.pool(environment)
	if err != nil {
		return err
	}

	started := time.Now()
	_, err = p.pool.Exec(ctx, statement)
	a.observe(environment, statement, time.Since(started), p.pool.Stat(), err)
	return err
}

func (a *DatabaseAgent) observe(environment, query string, elapsed time.Duration, stat *pgxpool.Stat, err error) {
	slow := elapsed > slowQueryThreshold
	metric := QueryMetric{
		Environment:   environment,
		Timestamp:     a.clock(),
		Duration:      elapsed.Milliseconds(),
		Slow:          slow,
		Failed:        err != nil,
		AcquiredConns: stat.AcquiredConns(),
		IdleConns:     stat.IdleConns(),
		TotalConns:    stat.TotalConns(),
	}

	a.metrics.QueryDuration.WithLabelValues(environment).Observe(elapsed.Seconds())

	log := a.logger.WithFields(map[string]interface{}{
		"environment": environment,
		"duration_ms": metric.Duration,
	})
	if slow {
		metric.Query = truncate(query, maxLoggedQueryChars)
		a.metrics.SlowQueries.WithLabelValues(environment).Inc()
		log.WithField("query", metric.Query).Warn("Slow query detected")
	}
	if err != nil {
		log.WithError(err).WithField("query", truncate(query, maxLoggedQueryChars)).Error("Query failed")
	}

	a.metricsMu.Lock()
	a.queryMetrics = append(a.queryMetrics, metric)
	if over := len(a.queryMetrics) - maxQueryMetrics; over > 0 {
		a.queryMetrics = append(a.queryMetrics[:0:0], a.queryMetrics[over:]...)
	}
	a.metricsMu.Unlock()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// Metrics returns the sampled query metrics of an environment from the last
// hours, oldest first
func (a *DatabaseAgent) Metrics(environment string, hours int) []QueryMetric {
	if hours <= 0 {
		hours = defaultMetricsHours
	}
	since := a.clock().Add(-time.Duration(hours) * time.Hour)

	a.metricsMu.Lock()
	defer a.metricsMu.Unlock()

	out := make([]QueryMetric, 0)
	for _, m := range a.queryMetrics {
		if m.Environment == environment && !m.Timestamp.Before(since) {
			out = append(out, m)
		}
	}
	return out
}

// CheckHealth probes the environment's database and classifies the result.
// A missing pool yields an unhealthy report rather than an error.
func (a *DatabaseAgent) CheckHealth(ctx context.Context, environment string) DatabaseHealth {
	report := DatabaseHealth{
		Environment: environment,
		Status:      HealthUnhealthy,
		PoolState:   a.PoolState(environment),
		Errors:      []string{},
		LastChecked: a.clock(),
	}

	if _, err := a.pool(environment); err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("No connection pool found for %s", environment))
		a.recordHealth(report)
		return report
	}

	started := time.Now()
	_, err := a.ExecuteQuery(ctx, environment, healthProbeQuery)
	elapsed := time.Since(started)
	report.ResponseTime = elapsed.Milliseconds()
	if err != nil {
		report.Errors = append(report.Errors, err.Error())
		a.recordHealth(report)
		return report
	}

	rows, err := a.ExecuteQuery(ctx, environment, connectionsQuery)
	if err != nil {
		report.Errors = append(report.Errors, err.Error())
		a.recordHealth(report)
		return report
	}
	if len(rows) > 0 {
		active, idle := toInt(rows[0]["active"]), toInt(rows[0]["idle"])
		report.ActiveConnections = active
		report.TotalConnections = active + idle
	}

	status, reasons := classifyHealth(elapsed, report.ActiveConnections)
	report.Status = status
	report.Errors = append(report.Errors, reasons...)
	a.recordHealth(report)
	return report
}

// classifyHealth grades a probe by response time, then by connection usage
func classifyHealth(responseTime time.Duration, active int) (HealthStatus, []string) {
	status := HealthHealthy
	var reasons []string

	switch {
	case responseTime < healthyResponseTime:
	case responseTime < degradedResponseTime:
		status = HealthDegraded
		reasons = append(reasons, "Slow response time")
	default:
		status = HealthUnhealthy
		reasons = append(reasons, "Very slow response time")
	}

	if active > maxActiveConnections {
		if status == HealthHealthy {
			status = HealthDegraded
		}
		reasons = append(reasons, "High connection usage")
	}
	return status, reasons
}

func toInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int32:
		return int(n)
	case int:
		return n
	default:
		return 0
	}
}

func (a *DatabaseAgent) recordHealth(report DatabaseHealth) {
	a.mu.Lock()
	a.health[report.Environment] = report
	a.mu.Unlock()

	value := 0.0
	switch report.Status {
	case HealthDegraded:
		value = 1
	case HealthUnhealthy:
		value = 2
	}
	a.metrics.HealthStatus.WithLabelValues(report.Environment).Set(value)
}

// LastHealth returns the latest report of each checked environment
func (a *DatabaseAgent) LastHealth() []DatabaseHealth {
	a.mu.RLock()
	out := make([]DatabaseHealth, 0, len(a.health))
	for _, h := range a.health {
		out = append(out, h)
	}
	a.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Environment < out[j].Environment })
	return out
}

func (a *DatabaseAgent) initializedEnvironments() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	envs := make([]string, 0, len(a.pools))
	for env := range a.pools {
		envs = append(envs, env)
	}
	sort.Strings(envs)
	return envs
}

// StartMonitor checks every initialized environment on the configured
// interval until ctx is done or CloseConnections is called without an
// environment. Calling it again while running is a no-op.
func (a *DatabaseAgent) StartMonitor(ctx context.Context) {
	a.monitorMu.Lock()
	defer a.monitorMu.Unlock()
	if a.monitorCancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	a.monitorCancel = cancel
	a.monitorDone = done

	go func() {
		defer close(done)
		ticker := time.NewTicker(a.cfg.MonitorInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				a.checkAll(ctx)
			}
		}
	}()
	a.logger.WithField("interval", a.cfg.MonitorInterval.String()).Info("Database health monitor started")
}

func (a *DatabaseAgent) checkAll(ctx context.Context) {
	g, gctx := errgroup.WithContext(ctx)
	for _, env := range a.initializedEnvironments() {
		env := env
		g.Go(func() error {
			report := a.CheckHealth(gctx, env)
			if report.Status != HealthHealthy {
				a.logger.WithFields(map[string]interface{}{
					"environment": env,
					"status":      report.Status,
					"errors":      report.Errors,
				}).Warn("Database health degraded")
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (a *DatabaseAgent) stopMonitor() {
	a.monitorMu.Lock()
	cancel, done := a.monitorCancel, a.monitorDone
	a.monitorCancel, a.monitorDone = nil, nil
	a.monitorMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	a.logger.Info("Database health monitor stopped")
}

// CloseConnections closes the pool of one environment, or of every environment
// and the health monitor when environment is empty
func (a *DatabaseAgent) CloseConnections(environment string) error {
	if environment == "" {
		a.stopMonitor()
		for _, env := range a.initializedEnvironments() {
			a.closePool(env)
		}
		return nil
	}

	if _, err := a.pool(environment); err != nil {
		return err
	}
	a.closePool(environment)
	return nil
}

func (a *DatabaseAgent) closePool(environment string) {
	a.mu.Lock()
	p, ok := a.pools[environment]
	delete(a.pools, environment)
	if ok {
		a.states[environment] = PoolClosed
	}
	a.mu.Unlock()

	if ok {
		p.pool.Close()
		a.logger.WithField("environment", environment).Info("Database connection pool closed")
	}
}
