package service

import (
	"time"
)

// DeploymentStatus is the lifecycle state of a deployment record
type DeploymentStatus string

const (
	StatusPending   DeploymentStatus = "pending"
	StatusBuilding  DeploymentStatus = "building"
	StatusSuccess   DeploymentStatus = "success"
	StatusError     DeploymentStatus = "error"
	StatusCancelled DeploymentStatus = "cancelled"
)

// IsTerminal reports whether no further transition is allowed from this status
func (s DeploymentStatus) IsTerminal() bool {
	return s == StatusSuccess || s == StatusError || s == StatusCancelled
}

// Supported deployment platforms
const (
	PlatformVercel = "vercel"
	PlatformDocker = "docker"
	PlatformManual = "manual"
)

// LogEntry is one timestamped line of a deployment log
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// DeploymentMetrics holds phase measurements, populated as phases complete.
// Times are in milliseconds, sizes in bytes.
type DeploymentMetrics struct {
	BuildTime  *int64 `json:"build_time,omitempty"`
	DeployTime *int64 `json:"deploy_time,omitempty"`
	BundleSize *int64 `json:"bundle_size,omitempty"`
}

// DeploymentRecord is a snapshot of one deployment attempt
type DeploymentRecord struct {
	ID          string            `json:"id"`
	Status      DeploymentStatus  `json:"status"`
	Platform    string            `json:"platform"`
	Environment string            `json:"environment"`
	Version     string            `json:"version"`
	Branch      string            `json:"branch,omitempty"`
	RollbackOf  string            `json:"rollback_of,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
	FinishedAt  *time.Time        `json:"finished_at,omitempty"`
	Logs        []LogEntry        `json:"logs"`
	Metrics     DeploymentMetrics `json:"metrics"`

	seq uint64
}

// DeploymentRequest represents the request to start a deployment
type DeploymentRequest struct {
	Platform             string            `json:"platform" validate:"required,oneof=vercel docker manual" example:"manual"`
	Environment          string            `json:"environment" validate:"required,oneof=development staging production" example:"staging"`
	Branch               string            `json:"branch,omitempty" validate:"max=200"`
	AutoPromote          bool              `json:"autoPromote,omitempty"`
	HealthCheckURL       string            `json:"healthCheckUrl,omitempty" validate:"omitempty,url"`
	EnvironmentVariables map[string]string `json:"environmentVariables,omitempty"`

	rollbackOf string
}

// RollbackRequest represents the request to roll back to a previous deployment.
// Empty platform and environment default to the target deployment's values.
type RollbackRequest struct {
	Platform             string            `json:"platform,omitempty" validate:"omitempty,oneof=vercel docker manual"`
	Environment          string            `json:"environment,omitempty" validate:"omitempty,oneof=development staging production"`
	HealthCheckURL       string            `json:"healthCheckUrl,omitempty" validate:"omitempty,url"`
	EnvironmentVariables map[string]string `json:"environmentVariables,omitempty"`
}

// HistoryFilter narrows a history listing
type HistoryFilter struct {
	Limit       int    `form:"limit"`
	Environment string `form:"environment"`
	Platform    string `form:"platform"`
	Status      string `form:"status"`
}

// DeploymentMetricsSummary is the aggregate view over the retained history
type DeploymentMetricsSummary struct {
	TotalDeployments      int            `json:"total_deployments"`
	SuccessfulDeployments int            `json:"successful_deployments"`
	FailedDeployments     int            `json:"failed_deployments"`
	SuccessRate           float64        `json:"success_rate"`
	AverageBuildTime      float64        `json:"average_build_time"`
	AverageDeployTime     float64        `json:"average_deploy_time"`
	PlatformBreakdown     map[string]int `json:"platform_breakdown"`
	EnvironmentBreakdown  map[string]int `json:"environment_breakdown"`
}

// TriggerRequest represents an automated deployment request from a webhook or CI job
type TriggerRequest struct {
	Source      string `json:"source,omitempty" example:"webhook"`
	Branch      string `json:"branch" validate:"required" example:"main"`
	Platform    string `json:"platform,omitempty" validate:"omitempty,oneof=vercel docker manual"`
	Environment string `json:"environment,omitempty" validate:"omitempty,oneof=development staging production"`
}

// ScheduleRequest represents the request to run a deployment at a later time
type ScheduleRequest struct {
	ScheduledAt time.Time `json:"scheduledTime" validate:"required"`
	DeploymentRequest
}

// ScheduledDeployment describes a pending scheduled deployment
type ScheduledDeployment struct {
	ID          string            `json:"schedule_id"`
	ScheduledAt time.Time         `json:"scheduled_time"`
	Request     DeploymentRequest `json:"request"`
}
