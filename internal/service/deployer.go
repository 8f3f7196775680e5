package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	apperrors "ops-agent-backend/internal/errors"
	"ops-agent-backend/internal/process"
)

const (
	buildTimeout        = 10 * time.Minute
	vercelDeployTimeout = 10 * time.Minute
	vercelEnvTimeout    = 30 * time.Second
	dockerBuildTimeout  = 15 * time.Minute
	dockerStopTimeout   = time.Minute
	dockerRunTimeout    = time.Minute
	packageTimeout      = 5 * time.Minute
	maxOutputLogLength  = 2000
)

// platformDeployer builds and publishes the application to one target runtime
type platformDeployer interface {
	Deploy(ctx context.Context, d *deploymentState, req DeploymentRequest) error
}

// runLogged runs a command, streaming its output to the deployment's subscribers.
// Nothing is started once the deployment has been cancelled.
func runLogged(ctx context.Context, runner process.Runner, d *deploymentState, cmd process.Command) (*process.Result, error) {
	if d.status() == StatusCancelled {
		return &process.Result{}, fmt.Errorf("%w: %s not started", apperrors.ErrDeploymentCancelled, cmd.Name)
	}
	cmd.Stream = func(line string, _ bool) {
		d.stream(line)
	}
	res, err := runner.Run(ctx, cmd)
	if res == nil {
		res = &process.Result{}
	}
	return res, err
}

// splitCommand turns a configured command line into a process command
func splitCommand(line string, extra ...string) process.Command {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return process.Command{Args: extra}
	}
	return process.Command{
		Name: fields[0],
		Args: append(fields[1:len(fields):len(fields)], extra...),
	}
}

// summarize trims command output to something that fits in one log line
func summarize(output string) string {
	output = strings.TrimSpace(output)
	if len(output) <= maxOutputLogLength {
		return output
	}
	return "..." + output[len(output)-maxOutputLogLength:]
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
