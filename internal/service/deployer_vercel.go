package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"ops-agent-backend/internal/config"
	"ops-agent-backend/internal/process"
)

var deploymentURLPattern = regexp.MustCompile(`https://[^\s]+`)

// vercelDeployer builds locally and publishes through the Vercel CLI
type vercelDeployer struct {
	cfg    config.DeployConfig
	runner process.Runner
}

func newVercelDeployer(cfg config.DeployConfig, runner process.Runner) *vercelDeployer {
	return &vercelDeployer{cfg: cfg, runner: runner}
}

func (v *vercelDeployer) Deploy(ctx context.Context, d *deploymentState, req DeploymentRequest) error {
	d.logf("Building application...")

	build := splitCommand(v.cfg.BuildCommand)
	build.Dir = v.cfg.SourceDir
	build.Timeout = buildTimeout

	started := time.Now()
	res, err := runLogged(ctx, v.runner, d, build)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	d.setBuildTime(time.Since(started))

	if warnings := strings.TrimSpace(res.Stderr); warnings != "" {
		d.logf("Build warnings: %s", summarize(warnings))
	}
	d.logf("Build output: %s", summarize(res.Stdout))

	if len(req.EnvironmentVariables) > 0 {
		d.logf("Setting environment variables...")
		steps := make([]step, 0, len(req.EnvironmentVariables))
		for _, key := range sortedKeys(req.EnvironmentVariables) {
			key, value := key, req.EnvironmentVariables[key]
			steps = append(steps, step{name: key, run: func() error {
				return v.setEnvironmentVariable(ctx, key, value, req.Environment)
			}})
		}
		outcomes, _ := runSteps(envVariablePolicy, steps)
		for _, o := range outcomes {
			if o.err != nil {
				d.logf("Warning: Could not set %s: %v", o.name, o.err)
			}
		}
	}

	d.logf("Deploying to Vercel...")
	args := []string{}
	if req.Environment == "production" {
		args = append(args, "--prod")
	}
	args = append(args, "--yes")

	deploy := splitCommand(v.cfg.VercelCommand, args...)
	deploy.Dir = v.cfg.SourceDir
	deploy.Timeout = vercelDeployTimeout

	res, err = runLogged(ctx, v.runner, d, deploy)
	if err != nil {
		return fmt.Errorf("vercel deploy failed: %w", err)
	}
	d.logf("Vercel deployment output: %s", summarize(res.Stdout))

	if url := deploymentURLPattern.FindString(res.Stdout); url != "" {
		d.logf("Deployment URL: %s", url)
	}
	return nil
}

// setEnvironmentVariable adds a variable, replacing it when it already exists
func (v *vercelDeployer) setEnvironmentVariable(ctx context.Context, key, value, environment string) error {
	add := splitCommand(v.cfg.VercelCommand, "env", "add", key, environment, "-y")
	add.Dir = v.cfg.SourceDir
	add.Stdin = value
	add.Timeout = vercelEnvTimeout

	if _, err := v.runner.Run(ctx, add); err == nil {
		return nil
	}

	remove := splitCommand(v.cfg.VercelCommand, "env", "rm", key, environment, "-y")
	remove.Dir = v.cfg.SourceDir
	remove.Timeout = vercelEnvTimeout

	if _, err := v.runner.Run(ctx, remove); err != nil {
		return err
	}
	_, err := v.runner.Run(ctx, add)
	return err
}
