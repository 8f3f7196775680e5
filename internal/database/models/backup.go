package models

import "time"

// BackupRecord is the archived form of a database backup
type BackupRecord struct {
	ID             string    `json:"id" gorm:"primaryKey;size:64"`
	Environment    string    `json:"environment" gorm:"size:20;not null;index"`
	Filename       string    `json:"filename" gorm:"size:255;not null"`
	Size           int64     `json:"size"`
	Type           string    `json:"type" gorm:"size:20;not null"`
	Status         string    `json:"status" gorm:"size:20;not null"`
	Location       string    `json:"location" gorm:"size:500"`
	RemoteLocation string    `json:"remote_location" gorm:"size:500"`
	Error          string    `json:"error,omitempty" gorm:"size:1000"`
	Timestamp      time.Time `json:"timestamp" gorm:"not null;index"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName returns the table name for BackupRecord
func (BackupRecord) TableName() string {
	return "backup_records"
}
