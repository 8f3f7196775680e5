package service

import (
	"context"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// DeploymentAgentInterface defines the interface for the deployment agent
type DeploymentAgentInterface interface {
	Deploy(ctx context.Context, req DeploymentRequest) (*DeploymentRecord, error)
	Start(ctx context.Context, req DeploymentRequest) (*DeploymentRecord, error)
	Cancel(id string) bool
	Rollback(ctx context.Context, targetID string, req RollbackRequest) (*DeploymentRecord, error)
	Get(ctx context.Context, id string) (*DeploymentRecord, error)
	History(filter HistoryFilter) []DeploymentRecord
	Metrics() DeploymentMetricsSummary
	Subscribe(id string) ([]LogEntry, <-chan LogEntry, func(), error)
	BranchDeploymentRequest(branch, platform, fallbackEnvironment string) DeploymentRequest
	Trigger(ctx context.Context, req TriggerRequest) (*DeploymentRecord, error)
	Schedule(ctx context.Context, req ScheduleRequest) (*ScheduledDeployment, error)
	Schedules() []ScheduledDeployment
	CancelSchedule(id string) error
}

// DatabaseAgentInterface defines the interface for the database agent
type DatabaseAgentInterface interface {
	Initialize(ctx context.Context, environment string, override *InitializeDatabaseRequest) error
	PoolState(environment string) PoolState
	CheckHealth(ctx context.Context, environment string) DatabaseHealth
	LastHealth() []DatabaseHealth
	RunMigrations(ctx context.Context, environment string) ([]MigrationStatus, error)
	CreateBackup(ctx context.Context, environment string, backupType BackupType) (*BackupInfo, error)
	Backups(ctx context.Context, environment string) ([]BackupInfo, error)
	RestoreBackup(ctx context.Context, environment, backupPath string) error
	OptimizeDatabase(ctx context.Context, environment string) (*OptimizationReport, error)
	Metrics(environment string, hours int) []QueryMetric
	CloseConnections(environment string) error
}

var (
	_ DeploymentAgentInterface = (*DeploymentAgent)(nil)
	_ DatabaseAgentInterface   = (*DatabaseAgent)(nil)
)
