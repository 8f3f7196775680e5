package repository

import (
	"context"

	"ops-agent-backend/internal/database/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BackupRecordRepository handles database operations for archived backup records
type BackupRecordRepository struct {
	db *gorm.DB
}

// NewBackupRecordRepository creates a new backup record repository
func NewBackupRecordRepository(db *gorm.DB) *BackupRecordRepository {
	return &BackupRecordRepository{db: db}
}

// Save inserts the record or overwrites the stored copy with the same ID
func (r *BackupRecordRepository) Save(ctx context.Context, record *models.BackupRecord) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(record).Error
}

// ListByEnvironment returns the newest backups of one environment
func (r *BackupRecordRepository) ListByEnvironment(ctx context.Context, environment string, limit int) ([]models.BackupRecord, error) {
	var records []models.BackupRecord
	err := r.db.WithContext(ctx).
		Where("environment = ?", environment).
		Order("timestamp DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
