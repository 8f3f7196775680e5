package database

import (
	"fmt"
	"time"

	"ops-agent-backend/internal/database/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Options struct {
	LogLevel        logger.LogLevel
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	SkipMigrate     bool
}

// Initialize opens the Postgres archive database that stores finished
// deployment records and backup records.
func Initialize(dsn string, opts *Options) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig(opts))
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return Configure(db, opts)
}

// Configure applies pool settings and migrates the archive schema on an already opened connection
func Configure(db *gorm.DB, opts *Options) (*gorm.DB, error) {
	opts = withDefaults(opts)

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
		sqlDB.SetConnMaxIdleTime(opts.ConnMaxIdleTime)
	}

	if !opts.SkipMigrate {
		if err := db.AutoMigrate(&models.DeploymentRecord{}, &models.BackupRecord{}); err != nil {
			return nil, fmt.Errorf("auto-migrate: %w", err)
		}
	}

	return db, nil
}

func gormConfig(opts *Options) *gorm.Config {
	opts = withDefaults(opts)
	return &gorm.Config{
		Logger: logger.Default.LogMode(opts.LogLevel),
	}
}

func withDefaults(opts *Options) *Options {
	if opts == nil {
		opts = &Options{}
	}
	out := *opts
	if out.LogLevel == 0 {
		out.LogLevel = logger.Error
	}
	if out.MaxOpenConns == 0 {
		out.MaxOpenConns = 10
	}
	if out.MaxIdleConns == 0 {
		out.MaxIdleConns = 5
	}
	if out.ConnMaxLifetime == 0 {
		out.ConnMaxLifetime = 30 * time.Minute
	}
	if out.ConnMaxIdleTime == 0 {
		out.ConnMaxIdleTime = 10 * time.Minute
	}
	return &out
}
