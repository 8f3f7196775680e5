//go:build integration

package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"ops-agent-backend/internal/config"
	apperrors "ops-agent-backend/internal/errors"
	"ops-agent-backend/internal/logger"
	"ops-agent-backend/internal/process"
	"ops-agent-backend/internal/service"
	"ops-agent-backend/internal/testutils"

	"github.com/prometheus/client_golang/prometheus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/suite"
)

func TestMain(m *testing.M) {
	code := m.Run()
	testutils.CleanupSharedContainer()
	os.Exit(code)
}

// DatabaseAgentIntegrationSuite runs the database agent against a real Postgres
type DatabaseAgentIntegrationSuite struct {
	suite.Suite
	base          *testutils.BaseTestSuite
	settings      config.EnvironmentDatabase
	migrationsDir string
	agent         *service.DatabaseAgent
}

func (s *DatabaseAgentIntegrationSuite) SetupSuite() {
	s.base = testutils.SetupTestSuite(s.T())
}

func (s *DatabaseAgentIntegrationSuite) SetupTest() {
	s.settings = s.base.CreateDatabase(s.T())
	s.migrationsDir = s.T().TempDir()

	nullLogger, _ := logrustest.NewNullLogger()
	s.agent = service.NewDatabaseAgent(
		config.DatabaseConfig{MigrationsDir: s.migrationsDir, BackupDir: s.T().TempDir(), MonitorInterval: time.Minute},
		func(string) config.EnvironmentDatabase { return s.settings },
		process.NewExecRunner(),
		logger.NewFromLogrus(nullLogger),
		service.WithDatabaseRegisterer(prometheus.NewRegistry()),
	)
	s.Require().NoError(s.agent.Initialize(context.Background(), "staging", nil))
}

func (s *DatabaseAgentIntegrationSuite) TearDownTest() {
	s.NoError(s.agent.CloseConnections(""))
}

func (s *DatabaseAgentIntegrationSuite) writeMigration(name, body string) {
	s.Require().NoError(os.WriteFile(filepath.Join(s.migrationsDir, name), []byte(body), 0o644))
}

func (s *DatabaseAgentIntegrationSuite) TestMigrationsStopAtFirstFailureAndResume() {
	ctx := context.Background()
	s.writeMigration("001_create_users.sql", `CREATE TABLE users (id SERIAL PRIMARY KEY, email TEXT NOT NULL);`)
	s.writeMigration("002_add_name.sql", `ALTER TABLE missing_table ADD COLUMN name TEXT;`)
	s.writeMigration("003_index_email.sql", `CREATE INDEX idx_users_email ON users (email);`)

	statuses, err := s.agent.RunMigrations(ctx, "staging")
	s.True(errors.Is(err, apperrors.ErrMigrationFailed))
	s.Require().Len(statuses, 2)
	s.Equal("001_create_users.sql", statuses[0].Name)
	s.True(statuses[0].Executed)
	s.Equal(1, statuses[0].Batch)
	s.Equal("002_add_name.sql", statuses[1].Name)
	s.False(statuses[1].Executed)
	s.NotEmpty(statuses[1].Error)

	rows, err := s.agent.ExecuteQuery(ctx, "staging", `SELECT name FROM schema_migrations ORDER BY id`)
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	s.Equal("001_create_users.sql", rows[0]["name"])

	s.writeMigration("002_add_name.sql", `ALTER TABLE users ADD COLUMN name TEXT;`)
	statuses, err = s.agent.RunMigrations(ctx, "staging")
	s.Require().NoError(err)
	s.Require().Len(statuses, 2)
	s.Equal("002_add_name.sql", statuses[0].Name)
	s.Equal("003_index_email.sql", statuses[1].Name)
	s.Equal(2, statuses[1].Batch)

	statuses, err = s.agent.RunMigrations(ctx, "staging")
	s.Require().NoError(err)
	s.Empty(statuses)
}

func (s *DatabaseAgentIntegrationSuite) TestConcurrentQueriesReleaseConnections() {
	ctx := context.Background()
	_, err := s.agent.ExecuteQuery(ctx, "staging", "SELECT 1")
	s.Require().NoError(err)

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			rows, err := s.agent.ExecuteQuery(ctx, "staging", "SELECT $1::int AS n FROM pg_sleep(0.02)", n)
			if err == nil && len(rows) != 1 {
				err = errors.New("expected one row")
			}
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		s.NoError(err)
	}

	stat, err := s.agent.PoolStats("staging")
	s.Require().NoError(err)
	s.Equal(int32(0), stat.AcquiredConns())
	s.Equal(stat.TotalConns(), stat.IdleConns())
	s.LessOrEqual(stat.TotalConns(), int32(s.settings.PoolMax))
	s.NotEmpty(s.agent.Metrics("staging", 1))
}

func (s *DatabaseAgentIntegrationSuite) TestHealthAndOptimize() {
	ctx := context.Background()
	s.writeMigration("001_create_orders.sql", `
		CREATE TABLE orders (id SERIAL PRIMARY KEY, total NUMERIC NOT NULL);
		CREATE INDEX idx_orders_total ON orders (total);
	`)
	_, err := s.agent.RunMigrations(ctx, "staging")
	s.Require().NoError(err)

	report := s.agent.CheckHealth(ctx, "staging")
	s.NotEqual(service.HealthUnhealthy, report.Status)
	s.Equal(service.PoolReady, report.PoolState)
	s.GreaterOrEqual(report.TotalConnections, 1)

	opt, err := s.agent.OptimizeDatabase(ctx, "staging")
	s.Require().NoError(err)
	s.True(opt.StatisticsUpdated)

	vacuumed := map[string]bool{}
	for _, r := range opt.VacuumResults {
		vacuumed[r.Object] = r.Success
	}
	s.True(vacuumed["orders"])
	s.True(vacuumed["schema_migrations"])

	reindexed := map[string]bool{}
	for _, r := range opt.ReindexResults {
		reindexed[r.Object] = r.Success
	}
	s.True(reindexed["idx_orders_total"])
	s.True(reindexed["orders_pkey"])
}

func (s *DatabaseAgentIntegrationSuite) TestReinitializeAndClose() {
	ctx := context.Background()
	s.Require().NoError(s.agent.Initialize(ctx, "staging", &service.InitializeDatabaseRequest{PoolMax: 2}))
	s.Equal(service.PoolReady, s.agent.PoolState("staging"))

	stat, err := s.agent.PoolStats("staging")
	s.Require().NoError(err)
	s.Equal(int32(2), stat.MaxConns())

	s.Require().NoError(s.agent.CloseConnections("staging"))
	s.Equal(service.PoolClosed, s.agent.PoolState("staging"))

	_, err = s.agent.ExecuteQuery(ctx, "staging", "SELECT 1")
	s.True(errors.Is(err, apperrors.ErrNoConnectionPool))
}

func TestDatabaseAgentIntegrationSuite(t *testing.T) {
	suite.Run(t, new(DatabaseAgentIntegrationSuite))
}
