package testutils

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"
	"testing"
	"time"

	"ops-agent-backend/internal/config"
	"ops-agent-backend/internal/database"

	"github.com/jackc/pgx/v5"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

const (
	pgUser     = "testuser"
	pgPassword = "testpass"
	pgDatabase = "testdb"
)

// ------------------------------
// Shared, process-wide resources
// ------------------------------
var (
	sharedOnce     sync.Once
	sharedInitErr  error
	sharedPool     *dockertest.Pool
	sharedResource *dockertest.Resource
	sharedDB       *gorm.DB
	sharedSettings config.EnvironmentDatabase
)

// BaseTestSuite gives integration suites a live Postgres server
type BaseTestSuite struct {
	suite.Suite
	DB       *gorm.DB
	Settings config.EnvironmentDatabase
}

// SetupTestSuite initializes (once) the shared Postgres container and returns a per-suite wrapper.
func SetupTestSuite(t *testing.T) *BaseTestSuite {
	sharedOnce.Do(func() { sharedInitErr = initSharedPGContainer() })
	if sharedInitErr != nil {
		t.Fatalf("failed to initialize shared test container: %v", sharedInitErr)
	}
	return &BaseTestSuite{
		DB:       sharedDB,
		Settings: sharedSettings,
	}
}

// CleanupSharedContainer tears down Docker resources when the whole test run ends.
// Call it from TestMain of packages that use SetupTestSuite.
func CleanupSharedContainer() {
	if sharedDB != nil {
		if sqlDB, err := sharedDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if sharedPool != nil && sharedResource != nil {
		log.Printf("Purging Docker container: %s", sharedResource.Container.Name)
		if err := sharedPool.Purge(sharedResource); err != nil {
			log.Printf("WARN: could not purge shared resource: %v", err)
		}
		sharedResource = nil
		sharedPool = nil
		sharedDB = nil
	}
}

// CleanTestDB truncates the archive tables
func (s *BaseTestSuite) CleanTestDB() {
	if s.DB == nil {
		return
	}
	m := s.DB.Migrator()
	for _, t := range []string{"deployment_records", "backup_records"} {
		if m.HasTable(t) {
			s.DB.Exec(`TRUNCATE TABLE "` + t + `"`)
		}
	}
}

// CreateDatabase creates a fresh database on the shared server and returns
// settings pointing at it. Each call gets an empty schema.
func (s *BaseTestSuite) CreateDatabase(t *testing.T) config.EnvironmentDatabase {
	name := fmt.Sprintf("it_%d", time.Now().UnixNano())
	if err := s.DB.Exec("CREATE DATABASE " + pgx.Identifier{name}.Sanitize()).Error; err != nil {
		t.Fatalf("failed to create database %s: %v", name, err)
	}

	settings := s.Settings
	settings.Database = name
	return settings
}

// ------------------------------
// Shared Postgres container init
// ------------------------------

func initSharedPGContainer() error {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return fmt.Errorf("could not connect to docker: %w", err)
	}
	sharedPool = pool

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "15-alpine",
		Env: []string{
			"POSTGRES_PASSWORD=" + pgPassword,
			"POSTGRES_USER=" + pgUser,
			"POSTGRES_DB=" + pgDatabase,
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return fmt.Errorf("could not start postgres: %w", err)
	}
	sharedResource = resource

	port, err := strconv.Atoi(resource.GetPort("5432/tcp"))
	if err != nil {
		return fmt.Errorf("invalid mapped port: %w", err)
	}
	dsn := fmt.Sprintf("postgres://%s:%s@127.0.0.1:%d/%s?sslmode=disable", pgUser, pgPassword, port, pgDatabase)

	pool.MaxWait = 2 * time.Minute
	if err := pool.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		// readiness ping before gorm runs its migrations
		conn, err := pgx.Connect(ctx, dsn)
		if err != nil {
			return err
		}
		if err := conn.Ping(ctx); err != nil {
			_ = conn.Close(ctx)
			return err
		}
		_ = conn.Close(ctx)

		gdb, err := database.Initialize(dsn, nil)
		if err != nil {
			return err
		}
		sharedDB = gdb
		return nil
	}); err != nil {
		return fmt.Errorf("could not connect to docker database: %w", err)
	}

	sharedSettings = config.EnvironmentDatabase{
		Host:              "127.0.0.1",
		Port:              port,
		Database:          pgDatabase,
		Username:          pgUser,
		Password:          pgPassword,
		PoolMin:           1,
		PoolMax:           5,
		ConnectionTimeout: 10 * time.Second,
		IdleTimeout:       10 * time.Second,
	}

	log.Printf("Shared Postgres ready on port %d", port)
	return nil
}
