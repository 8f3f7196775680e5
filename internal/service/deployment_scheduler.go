package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	apperrors "ops-agent-backend/internal/errors"

	"github.com/google/uuid"
)

// EnvironmentForBranch maps a git branch to the environment it deploys to
func EnvironmentForBranch(branch string) (string, bool) {
	switch strings.TrimPrefix(branch, "refs/heads/") {
	case "main", "master":
		return "production", true
	case "develop", "development":
		return "development", true
	case "staging":
		return "staging", true
	default:
		return "", false
	}
}

// BranchDeploymentRequest builds the deployment for a branch push. Unknown
// branches fall back to fallbackEnvironment, or staging when that is empty.
func (a *DeploymentAgent) BranchDeploymentRequest(branch, platform, fallbackEnvironment string) DeploymentRequest {
	branch = strings.TrimPrefix(branch, "refs/heads/")

	environment, ok := EnvironmentForBranch(branch)
	if !ok {
		environment = fallbackEnvironment
		if environment == "" {
			environment = "staging"
		}
	}
	if platform == "" {
		platform = PlatformVercel
	}

	return DeploymentRequest{
		Platform:       platform,
		Environment:    environment,
		Branch:         branch,
		AutoPromote:    branch == "main" || branch == "master",
		HealthCheckURL: a.cfg.HealthCheckURL(environment),
		EnvironmentVariables: map[string]string{
			"NODE_ENV":        environment,
			"APP_ENVIRONMENT": environment,
		},
	}
}

// Trigger starts an automated deployment for a branch in the background
func (a *DeploymentAgent) Trigger(ctx context.Context, req TriggerRequest) (*DeploymentRecord, error) {
	if a.validator != nil {
		if err := a.validator.Struct(req); err != nil {
			return nil, apperrors.NewValidationError("trigger", err.Error())
		}
	}

	a.logger.WithFields(map[string]interface{}{
		"source":   req.Source,
		"branch":   req.Branch,
		"platform": req.Platform,
	}).Info("Automated deployment triggered")

	return a.Start(ctx, a.BranchDeploymentRequest(req.Branch, req.Platform, req.Environment))
}

// Schedule runs the deployment at the requested time
func (a *DeploymentAgent) Schedule(ctx context.Context, req ScheduleRequest) (*ScheduledDeployment, error) {
	if req.ScheduledAt.IsZero() {
		return nil, apperrors.NewValidationError("scheduledTime", "is required")
	}
	if _, ok := a.deployers[req.Platform]; !ok {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedPlatform, req.Platform)
	}
	if a.validator != nil {
		if err := a.validator.Struct(req.DeploymentRequest); err != nil {
			return nil, apperrors.NewValidationError("deployment", err.Error())
		}
	}

	delay := req.ScheduledAt.Sub(a.clock())
	if delay <= 0 {
		return nil, apperrors.ErrScheduleInPast
	}

	info := ScheduledDeployment{
		ID:          fmt.Sprintf("schedule_%s", uuid.NewString()),
		ScheduledAt: req.ScheduledAt,
		Request:     req.DeploymentRequest,
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return nil, ErrAgentShuttingDown
	}

	runCtx := context.WithoutCancel(ctx)
	run := &scheduledRun{info: info}
	run.timer = time.AfterFunc(delay, func() {
		a.mu.Lock()
		_, pending := a.schedules[info.ID]
		delete(a.schedules, info.ID)
		a.mu.Unlock()
		if !pending {
			return
		}

		log := a.logger.WithField("schedule_id", info.ID)
		rec, err := a.Start(runCtx, info.Request)
		if err != nil {
			log.WithError(err).Error("Scheduled deployment failed to start")
			return
		}
		log.WithField("deployment_id", rec.ID).Info("Scheduled deployment started")
	})
	a.schedules[info.ID] = run

	a.logger.WithFields(map[string]interface{}{
		"schedule_id":    info.ID,
		"scheduled_time": info.ScheduledAt,
		"environment":    info.Request.Environment,
		"platform":       info.Request.Platform,
	}).Info("Deployment scheduled")
	return &info, nil
}

// Schedules lists pending scheduled deployments, soonest first
func (a *DeploymentAgent) Schedules() []ScheduledDeployment {
	a.mu.RLock()
	out := make([]ScheduledDeployment, 0, len(a.schedules))
	for _, run := range a.schedules {
		out = append(out, run.info)
	}
	a.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledAt.Before(out[j].ScheduledAt) })
	return out
}

// CancelSchedule drops a pending scheduled deployment
func (a *DeploymentAgent) CancelSchedule(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	run, ok := a.schedules[id]
	if !ok {
		return apperrors.ErrScheduleNotFound
	}
	run.timer.Stop()
	delete(a.schedules, id)
	return nil
}
