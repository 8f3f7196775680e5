package service

import "time"

// PoolState is the lifecycle state of an environment's connection pool
type PoolState string

const (
	PoolUninitialized PoolState = "uninitialized"
	PoolInitializing  PoolState = "initializing"
	PoolReady         PoolState = "ready"
	PoolClosed        PoolState = "closed"
)

// HealthStatus classifies a database health check
type HealthStatus string

const (
	HealthHealthy   HealthStatus = "healthy"
	HealthDegraded  HealthStatus = "degraded"
	HealthUnhealthy HealthStatus = "unhealthy"
)

// DatabaseHealth is the result of one health check
type DatabaseHealth struct {
	Environment       string       `json:"environment"`
	Status            HealthStatus `json:"status"`
	ResponseTime      int64        `json:"response_time"`
	ActiveConnections int          `json:"active_connections"`
	TotalConnections  int          `json:"total_connections"`
	PoolState         PoolState    `json:"pool_state"`
	Errors            []string     `json:"errors"`
	LastChecked       time.Time    `json:"last_checked"`
}

// MigrationStatus reports the outcome of one migration file
type MigrationStatus struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Executed   bool       `json:"executed"`
	ExecutedAt *time.Time `json:"executed_at,omitempty"`
	Batch      int        `json:"batch,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// BackupType selects what a backup contains
type BackupType string

const (
	BackupFull        BackupType = "full"
	BackupIncremental BackupType = "incremental"
)

// BackupStatus is the lifecycle state of a backup
type BackupStatus string

const (
	BackupPending   BackupStatus = "pending"
	BackupRunning   BackupStatus = "running"
	BackupCompleted BackupStatus = "completed"
	BackupFailed    BackupStatus = "failed"
)

// BackupInfo describes one backup file
type BackupInfo struct {
	ID             string       `json:"id"`
	Environment    string       `json:"environment"`
	Filename       string       `json:"filename"`
	Size           int64        `json:"size"`
	Timestamp      time.Time    `json:"timestamp"`
	Type           BackupType   `json:"type"`
	Status         BackupStatus `json:"status"`
	Location       string       `json:"location"`
	RemoteLocation string       `json:"remote_location,omitempty"`
	Error          string       `json:"error,omitempty"`
}

// QueryMetric is one sampled query execution
type QueryMetric struct {
	Environment   string    `json:"environment"`
	Timestamp     time.Time `json:"timestamp"`
	Duration      int64     `json:"duration"`
	Slow          bool      `json:"slow"`
	Failed        bool      `json:"failed"`
	Query         string    `json:"query,omitempty"`
	AcquiredConns int32     `json:"acquired_connections"`
	IdleConns     int32     `json:"idle_connections"`
	TotalConns    int32     `json:"total_connections"`
}

// OptimizationResult is the outcome for one table or index
type OptimizationResult struct {
	Object  string `json:"object"`
	Action  string `json:"action"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// OptimizationReport summarizes an optimize run
type OptimizationReport struct {
	Environment       string               `json:"environment"`
	VacuumResults     []OptimizationResult `json:"vacuum_results"`
	ReindexResults    []OptimizationResult `json:"reindex_results"`
	StatisticsUpdated bool                 `json:"statistics_updated"`
}

// InitializeDatabaseRequest overrides the configured connection settings of an environment
type InitializeDatabaseRequest struct {
	Host              string `json:"host,omitempty"`
	Port              int    `json:"port,omitempty" validate:"omitempty,min=1,max=65535"`
	Database          string `json:"database,omitempty"`
	Username          string `json:"username,omitempty"`
	Password          string `json:"password,omitempty"`
	SSL               *bool  `json:"ssl,omitempty"`
	PoolMin           int    `json:"pool_min,omitempty" validate:"omitempty,min=0"`
	PoolMax           int    `json:"pool_max,omitempty" validate:"omitempty,min=1"`
	ConnectionTimeout int    `json:"connection_timeout,omitempty" validate:"omitempty,min=1"`
	IdleTimeout       int    `json:"idle_timeout,omitempty" validate:"omitempty,min=1"`
}

// BackupRequest selects the backup type
type BackupRequest struct {
	Type BackupType `json:"type" validate:"omitempty,oneof=full incremental" example:"full"`
}

// RestoreRequest names the backup to restore, by filename or path inside the backup directory
type RestoreRequest struct {
	BackupPath string `json:"backupPath" validate:"required" example:"app_staging_full_2026-01-02_3f2a9c1b7d4e.sql"`
}
