package repository

import (
	"context"
	"errors"

	"ops-agent-backend/internal/database/models"
	apperrors "ops-agent-backend/internal/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DeploymentRecordRepository handles database operations for archived deployment records
type DeploymentRecordRepository struct {
	db *gorm.DB
}

// NewDeploymentRecordRepository creates a new deployment record repository
func NewDeploymentRecordRepository(db *gorm.DB) *DeploymentRecordRepository {
	return &DeploymentRecordRepository{db: db}
}

// Save inserts the record or overwrites the stored copy with the same ID
func (r *DeploymentRecordRepository) Save(ctx context.Context, record *models.DeploymentRecord) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(record).Error
}

// GetByID retrieves a deployment record by ID
func (r *DeploymentRecordRepository) GetByID(ctx context.Context, id string) (*models.DeploymentRecord, error) {
	var record models.DeploymentRecord
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDeploymentNotFound
		}
		return nil, err
	}
	return &record, nil
}

// ListRecent returns up to limit records, newest first
func (r *DeploymentRecordRepository) ListRecent(ctx context.Context, limit int) ([]models.DeploymentRecord, error) {
	var records []models.DeploymentRecord
	err := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Order("sequence DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
