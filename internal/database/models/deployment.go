package models

import (
	"time"

	"gorm.io/datatypes"
)

// DeploymentRecord is the archived form of a finished deployment
type DeploymentRecord struct {
	ID          string         `json:"id" gorm:"primaryKey;size:64"`
	Status      string         `json:"status" gorm:"size:20;not null;index"`
	Platform    string         `json:"platform" gorm:"size:20;not null;index"`
	Environment string         `json:"environment" gorm:"size:20;not null;index"`
	Version     string         `json:"version" gorm:"size:100"`
	Branch      string         `json:"branch" gorm:"size:200"`
	RollbackOf  string         `json:"rollback_of,omitempty" gorm:"size:64"`
	Timestamp   time.Time      `json:"timestamp" gorm:"not null;index"`
	Sequence    uint64         `json:"-" gorm:"not null;default:0"`
	FinishedAt  *time.Time     `json:"finished_at"`
	Logs        datatypes.JSON `json:"logs"`
	Metrics     datatypes.JSON `json:"metrics"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// TableName returns the table name for DeploymentRecord
func (DeploymentRecord) TableName() string {
	return "deployment_records"
}
