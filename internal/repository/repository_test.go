package repository

import (
	"context"
	"testing"
	"time"

	"ops-agent-backend/internal/database"
	"ops-agent-backend/internal/database/models"
	apperrors "ops-agent-backend/internal/errors"

	"github.com/stretchr/testify/suite"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// RecordRepositoryTestSuite runs the archive repositories against an in-memory SQLite database
type RecordRepositoryTestSuite struct {
	suite.Suite
	db          *gorm.DB
	deployments *DeploymentRecordRepository
	backups     *BackupRecordRepository
	ctx         context.Context
}

// SetupTest opens a fresh database for each test
func (suite *RecordRepositoryTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	suite.Require().NoError(err)

	// a single connection keeps every query on the same in-memory database
	db, err = database.Configure(db, &database.Options{MaxOpenConns: 1, MaxIdleConns: 1})
	suite.Require().NoError(err)

	suite.db = db
	suite.deployments = NewDeploymentRecordRepository(db)
	suite.backups = NewBackupRecordRepository(db)
	suite.ctx = context.Background()
}

// TearDownTest closes the database
func (suite *RecordRepositoryTestSuite) TearDownTest() {
	if sqlDB, err := suite.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func (suite *RecordRepositoryTestSuite) record(id string, ts time.Time, status string) *models.DeploymentRecord {
	return &models.DeploymentRecord{
		ID:          id,
		Status:      status,
		Platform:    "manual",
		Environment: "staging",
		Version:     "1.0.0",
		Timestamp:   ts,
		Logs:        datatypes.JSON(`[{"timestamp":"2026-01-01T00:00:00Z","message":"Deployment started"}]`),
		Metrics:     datatypes.JSON(`{"deploy_time":1200}`),
	}
}

// TestSaveAndGet tests storing and loading a record
func (suite *RecordRepositoryTestSuite) TestSaveAndGet() {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	suite.Require().NoError(suite.deployments.Save(suite.ctx, suite.record("dep-1", base, "success")))

	found, err := suite.deployments.GetByID(suite.ctx, "dep-1")
	suite.Require().NoError(err)
	suite.Equal("success", found.Status)
	suite.Equal("staging", found.Environment)
	suite.JSONEq(`{"deploy_time":1200}`, string(found.Metrics))
}

// TestSaveOverwrites tests that saving the same ID replaces the stored copy
func (suite *RecordRepositoryTestSuite) TestSaveOverwrites() {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	suite.Require().NoError(suite.deployments.Save(suite.ctx, suite.record("dep-1", base, "building")))
	suite.Require().NoError(suite.deployments.Save(suite.ctx, suite.record("dep-1", base, "error")))

	found, err := suite.deployments.GetByID(suite.ctx, "dep-1")
	suite.Require().NoError(err)
	suite.Equal("error", found.Status)

	var count int64
	suite.Require().NoError(suite.db.Model(&models.DeploymentRecord{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

// TestGetByIDNotFound tests the not found mapping
func (suite *RecordRepositoryTestSuite) TestGetByIDNotFound() {
	found, err := suite.deployments.GetByID(suite.ctx, "missing")
	suite.Nil(found)
	suite.ErrorIs(err, apperrors.ErrDeploymentNotFound)
}

// TestListRecent tests newest-first ordering and the limit
func (suite *RecordRepositoryTestSuite) TestListRecent() {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"dep-a", "dep-b", "dep-c"} {
		suite.Require().NoError(suite.deployments.Save(suite.ctx, suite.record(id, base.Add(time.Duration(i)*time.Minute), "success")))
	}

	records, err := suite.deployments.ListRecent(suite.ctx, 2)
	suite.Require().NoError(err)
	suite.Require().Len(records, 2)
	suite.Equal("dep-c", records[0].ID)
	suite.Equal("dep-b", records[1].ID)
}

// TestBackupsByEnvironment tests the backup archive filter
func (suite *RecordRepositoryTestSuite) TestBackupsByEnvironment() {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, env := range []string{"staging", "production", "staging"} {
		suite.Require().NoError(suite.backups.Save(suite.ctx, &models.BackupRecord{
			ID:          "bk-" + string(rune('a'+i)),
			Environment: env,
			Filename:    "app_" + env + ".sql",
			Type:        "full",
			Status:      "completed",
			Timestamp:   base.Add(time.Duration(i) * time.Hour),
		}))
	}

	records, err := suite.backups.ListByEnvironment(suite.ctx, "staging", 10)
	suite.Require().NoError(err)
	suite.Require().Len(records, 2)
	suite.Equal("bk-c", records[0].ID)
	suite.Equal("bk-a", records[1].ID)
}

func TestRecordRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RecordRepositoryTestSuite))
}
