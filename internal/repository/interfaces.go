package repository

import (
	"context"

	"ops-agent-backend/internal/database/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// DeploymentRecordRepositoryInterface defines the interface for archived deployment records
type DeploymentRecordRepositoryInterface interface {
	Save(ctx context.Context, record *models.DeploymentRecord) error
	GetByID(ctx context.Context, id string) (*models.DeploymentRecord, error)
	ListRecent(ctx context.Context, limit int) ([]models.DeploymentRecord, error)
}

// BackupRecordRepositoryInterface defines the interface for archived backup records
type BackupRecordRepositoryInterface interface {
	Save(ctx context.Context, record *models.BackupRecord) error
	ListByEnvironment(ctx context.Context, environment string, limit int) ([]models.BackupRecord, error)
}
