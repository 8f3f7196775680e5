package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ops-agent-backend/internal/config"
	"ops-agent-backend/internal/process"

	"gopkg.in/yaml.v3"
)

const defaultInstructionsHealthURL = "http://localhost:3000/api/health"

var packageExcludes = []string{"node_modules", ".git", ".next", "dist"}

// manualDeployer packages the source tree and documents how to install it by hand
type manualDeployer struct {
	cfg    config.DeployConfig
	runner process.Runner
}

func newManualDeployer(cfg config.DeployConfig, runner process.Runner) *manualDeployer {
	return &manualDeployer{cfg: cfg, runner: runner}
}

// packageManifest is written next to the archive for operators and tooling
type packageManifest struct {
	DeploymentID string            `yaml:"deployment_id"`
	Application  string            `yaml:"application"`
	Environment  string            `yaml:"environment"`
	Version      string            `yaml:"version"`
	Branch       string            `yaml:"branch,omitempty"`
	Package      string            `yaml:"package"`
	SizeBytes    int64             `yaml:"size_bytes,omitempty"`
	CreatedAt    time.Time         `yaml:"created_at"`
	HealthCheck  string            `yaml:"health_check"`
	Variables    map[string]string `yaml:"environment_variables,omitempty"`
	Steps        []string          `yaml:"steps"`
}

func (m *manualDeployer) Deploy(ctx context.Context, d *deploymentState, req DeploymentRequest) error {
	d.logf("Starting manual deployment process...")

	rec := d.snapshot()
	packageName := fmt.Sprintf("%s-deployment-%s.tar.gz", m.cfg.AppName, rec.ID)
	distDir, err := filepath.Abs(m.cfg.DistDir)
	if err != nil {
		return fmt.Errorf("resolve package directory: %w", err)
	}
	if err := os.MkdirAll(distDir, 0o755); err != nil {
		return fmt.Errorf("create package directory: %w", err)
	}
	packagePath := filepath.Join(distDir, packageName)

	args := []string{"-czf", packagePath, "--exclude=" + packageName}
	for _, exclude := range packageExcludes {
		args = append(args, "--exclude="+exclude)
	}
	args = append(args, ".")

	started := time.Now()
	if _, err := runLogged(ctx, m.runner, d, process.Command{
		Name:    "tar",
		Args:    args,
		Dir:     m.cfg.SourceDir,
		Timeout: packageTimeout,
	}); err != nil {
		return fmt.Errorf("package creation failed: %w", err)
	}
	d.setBuildTime(time.Since(started))
	d.logf("Created deployment package: %s", packagePath)

	var size int64
	if info, err := os.Stat(packagePath); err == nil {
		size = info.Size()
		d.setBundleSize(size)
	}

	healthURL := req.HealthCheckURL
	if healthURL == "" {
		healthURL = defaultInstructionsHealthURL
	}
	steps := manualSteps(req, packagePath, healthURL)

	manifest := packageManifest{
		DeploymentID: rec.ID,
		Application:  m.cfg.AppName,
		Environment:  req.Environment,
		Version:      rec.Version,
		Branch:       req.Branch,
		Package:      packagePath,
		SizeBytes:    size,
		CreatedAt:    rec.Timestamp,
		HealthCheck:  healthURL,
		Variables:    req.EnvironmentVariables,
		Steps:        steps,
	}
	manifestPath := strings.TrimSuffix(packagePath, ".tar.gz") + ".yaml"
	if err := writeManifest(manifestPath, manifest); err != nil {
		d.logf("Warning: could not write deployment manifest: %v", err)
	} else {
		d.logf("Deployment manifest written: %s", manifestPath)
	}

	d.logf("Manual deployment instructions generated")
	d.logf("Instructions: %s", renderInstructions(req.Environment, steps))
	return nil
}

func manualSteps(req DeploymentRequest, packagePath, healthURL string) []string {
	exports := "No environment variables specified"
	if len(req.EnvironmentVariables) > 0 {
		lines := make([]string, 0, len(req.EnvironmentVariables))
		for _, key := range sortedKeys(req.EnvironmentVariables) {
			lines = append(lines, fmt.Sprintf("export %s=%q", key, req.EnvironmentVariables[key]))
		}
		exports = strings.Join(lines, "\n   ")
	}

	return []string{
		"Extract the deployment package:\n   tar -xzf " + packagePath,
		"Install dependencies:\n   npm install",
		"Set environment variables:\n   " + exports,
		"Build the application:\n   npm run build",
		"Start the application:\n   npm start",
		fmt.Sprintf("Verify deployment:\n   curl -f %s || echo \"Health check failed\"", healthURL),
	}
}

func renderInstructions(environment string, steps []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Manual Deployment Instructions for %s:\n", environment)
	for i, step := range steps {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, step)
	}
	return b.String()
}

func writeManifest(path string, manifest packageManifest) error {
	out, err := yaml.Marshal(manifest)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}
