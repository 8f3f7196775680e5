package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ops-agent-backend/internal/config"
	"ops-agent-backend/internal/process"
)

// dockerDeployer builds an image and replaces the environment's container
type dockerDeployer struct {
	cfg    config.DeployConfig
	runner process.Runner
}

func newDockerDeployer(cfg config.DeployConfig, runner process.Runner) *dockerDeployer {
	return &dockerDeployer{cfg: cfg, runner: runner}
}

func (k *dockerDeployer) imageName(environment, version string) string {
	return fmt.Sprintf("%s:%s-%s", k.cfg.AppName, environment, version)
}

func (k *dockerDeployer) containerName(environment string) string {
	return fmt.Sprintf("%s-%s", k.cfg.AppName, environment)
}

func (k *dockerDeployer) Deploy(ctx context.Context, d *deploymentState, req DeploymentRequest) error {
	d.logf("Building Docker image...")

	image := k.imageName(req.Environment, d.snapshot().Version)
	started := time.Now()
	res, err := runLogged(ctx, k.runner, d, process.Command{
		Name:    "docker",
		Args:    []string{"build", "-t", image, "."},
		Dir:     k.cfg.SourceDir,
		Timeout: dockerBuildTimeout,
	})
	if err != nil {
		return fmt.Errorf("docker build failed: %w", err)
	}
	d.setBuildTime(time.Since(started))
	d.logf("Docker build output: %s", summarize(res.Stdout))

	// a missing container is expected on first deploy
	container := k.containerName(req.Environment)
	_, stopErr := runLogged(ctx, k.runner, d, process.Command{Name: "docker", Args: []string{"stop", container}, Timeout: dockerStopTimeout})
	_, rmErr := runLogged(ctx, k.runner, d, process.Command{Name: "docker", Args: []string{"rm", container}, Timeout: dockerStopTimeout})
	if stopErr == nil && rmErr == nil {
		d.logf("Stopped existing container")
	} else {
		d.logf("No existing container to stop")
	}

	args := []string{
		"run", "-d",
		"--name", container,
		"-p", fmt.Sprintf("%d:%d", k.cfg.DockerPort(req.Environment), k.cfg.ContainerPort),
	}
	for _, key := range sortedKeys(req.EnvironmentVariables) {
		args = append(args, "-e", key+"="+req.EnvironmentVariables[key])
	}
	args = append(args, image)

	res, err = runLogged(ctx, k.runner, d, process.Command{
		Name:    "docker",
		Args:    args,
		Timeout: dockerRunTimeout,
	})
	if err != nil {
		return fmt.Errorf("docker run failed: %w", err)
	}
	d.logf("Container started: %s", strings.TrimSpace(res.Stdout))
	return nil
}
