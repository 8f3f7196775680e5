package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"ops-agent-backend/internal/config"
	"ops-agent-backend/internal/database/models"
	apperrors "ops-agent-backend/internal/errors"
	"ops-agent-backend/internal/process"

	"github.com/google/uuid"
)

const (
	backupTimeout     = 30 * time.Minute
	restoreTimeout    = 10 * time.Minute
	backupListLimit   = 100
	backupFileIDChars = 12
)

// CreateBackup dumps the environment's database with pg_dump. Incremental
// backups contain data only. A completed backup is uploaded to object storage
// when one is configured; an upload failure leaves the local backup completed.
func (a *DatabaseAgent) CreateBackup(ctx context.Context, environment string, backupType BackupType) (*BackupInfo, error) {
	if !config.IsValidEnvironment(environment) {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidEnvironment, environment)
	}
	if backupType == "" {
		backupType = BackupFull
	}
	if backupType != BackupFull && backupType != BackupIncremental {
		return nil, apperrors.NewValidationError("type", "must be full or incremental")
	}

	dir, err := filepath.Abs(a.cfg.BackupDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrBackupFailed, err)
	}

	now := a.clock()
	id := uuid.NewString()
	filename := fmt.Sprintf("%s_%s_%s_%s_%s.sql",
		a.cfg.BackupPrefix, environment, backupType, now.Format("2006-01-02"),
		strings.ReplaceAll(id, "-", "")[:backupFileIDChars])

	info := &BackupInfo{
		ID:          id,
		Environment: environment,
		Filename:    filename,
		Timestamp:   now,
		Type:        backupType,
		Status:      BackupPending,
		Location:    filepath.Join(dir, filename),
	}
	a.storeBackup(ctx, info)

	log := a.logger.WithFields(map[string]interface{}{
		"environment": environment,
		"backup_id":   id,
		"type":        backupType,
	})
	log.Info("Creating database backup")

	info.Status = BackupRunning
	a.storeBackup(ctx, info)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return a.failBackup(ctx, info, err)
	}

	settings := a.connectionSettings(environment)
	args := append(connectionArgs(settings), "-f", info.Location, "--no-password")
	if backupType == BackupIncremental {
		args = append(args, "--data-only")
	}

	if _, err := a.runner.Run(ctx, process.Command{
		Name:    "pg_dump",
		Args:    args,
		Env:     passwordEnv(settings),
		Timeout: backupTimeout,
	}); err != nil {
		return a.failBackup(ctx, info, err)
	}

	if stat, err := os.Stat(info.Location); err == nil {
		info.Size = stat.Size()
	}
	info.Status = BackupCompleted

	if a.storage != nil {
		object := path.Join("backups", environment, filename)
		remote, err := a.storage.Upload(ctx, object, info.Location)
		if err != nil {
			log.WithError(err).Warn("Failed to upload backup to object storage")
		} else {
			info.RemoteLocation = remote
		}
	}

	a.storeBackup(ctx, info)
	a.metrics.Backups.WithLabelValues(environment, string(BackupCompleted)).Inc()
	log.WithFields(map[string]interface{}{
		"filename": filename,
		"size":     info.Size,
	}).Info("Database backup completed")

	out := *info
	return &out, nil
}

func (a *DatabaseAgent) failBackup(ctx context.Context, info *BackupInfo, cause error) (*BackupInfo, error) {
	info.Status = BackupFailed
	info.Error = cause.Error()
	a.storeBackup(ctx, info)
	a.metrics.Backups.WithLabelValues(info.Environment, string(BackupFailed)).Inc()

	a.logger.WithFields(map[string]interface{}{
		"environment": info.Environment,
		"backup_id":   info.ID,
	}).WithError(cause).Error("Database backup failed")

	out := *info
	return &out, fmt.Errorf("%w: %v", apperrors.ErrBackupFailed, cause)
}

func (a *DatabaseAgent) storeBackup(ctx context.Context, info *BackupInfo) {
	a.mu.Lock()
	a.backups[info.ID] = *info
	a.mu.Unlock()

	if a.archive == nil {
		return
	}
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), archiveTimeout)
	defer cancel()
	if err := a.archive.Save(saveCtx, backupToModel(*info)); err != nil {
		a.logger.WithError(err).WithField("backup_id", info.ID).Warn("Failed to archive backup record")
	}
}

// Backups lists the backups of an environment, newest first
func (a *DatabaseAgent) Backups(ctx context.Context, environment string) ([]BackupInfo, error) {
	if !config.IsValidEnvironment(environment) {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidEnvironment, environment)
	}

	if a.archive != nil {
		records, err := a.archive.ListByEnvironment(ctx, environment, backupListLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to list backups: %w", err)
		}
		out := make([]BackupInfo, 0, len(records))
		for _, r := range records {
			out = append(out, backupFromModel(r))
		}
		return out, nil
	}

	a.mu.RLock()
	out := make([]BackupInfo, 0)
	for _, b := range a.backups {
		if b.Environment == environment {
			out = append(out, b)
		}
	}
	a.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

// RestoreBackup replays a backup file into the environment's database with
// psql. The path may be a bare filename and must resolve inside the backup
// directory.
func (a *DatabaseAgent) RestoreBackup(ctx context.Context, environment, backupPath string) error {
	if !config.IsValidEnvironment(environment) {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidEnvironment, environment)
	}

	file, err := a.resolveBackupPath(backupPath)
	if err != nil {
		return err
	}
	if _, err := os.Stat(file); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", apperrors.ErrBackupNotFound, filepath.Base(file))
	} else if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrRestoreFailed, err)
	}

	log := a.logger.WithFields(map[string]interface{}{
		"environment": environment,
		"backup":      filepath.Base(file),
	})
	log.Info("Restoring database backup")

	settings := a.connectionSettings(environment)
	args := append(connectionArgs(settings), "-v", "ON_ERROR_STOP=1", "-f", file, "--no-password")

	if _, err := a.runner.Run(ctx, process.Command{
		Name:    "psql",
		Args:    args,
		Env:     passwordEnv(settings),
		Timeout: restoreTimeout,
	}); err != nil {
		log.WithError(err).Error("Database restore failed")
		return fmt.Errorf("%w: %v", apperrors.ErrRestoreFailed, err)
	}

	log.Info("Database restore completed")
	return nil
}

func (a *DatabaseAgent) resolveBackupPath(backupPath string) (string, error) {
	dir, err := filepath.Abs(a.cfg.BackupDir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrRestoreFailed, err)
	}

	file := backupPath
	if !filepath.IsAbs(file) {
		file = filepath.Join(dir, file)
	}
	file = filepath.Clean(file)

	rel, err := filepath.Rel(dir, file)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", apperrors.NewValidationError("backupPath", "must be inside the backup directory")
	}
	return file, nil
}

func connectionArgs(s config.EnvironmentDatabase) []string {
	return []string{
		"-h", s.Host,
		"-p", strconv.Itoa(s.Port),
		"-U", s.Username,
		"-d", s.Database,
	}
}

func passwordEnv(s config.EnvironmentDatabase) map[string]string {
	env := map[string]string{"PGPASSWORD": s.Password}
	if s.SSL {
		env["PGSSLMODE"] = "require"
	}
	return env
}

func backupToModel(b BackupInfo) *models.BackupRecord {
	return &models.BackupRecord{
		ID:             b.ID,
		Environment:    b.Environment,
		Filename:       b.Filename,
		Size:           b.Size,
		Type:           string(b.Type),
		Status:         string(b.Status),
		Location:       b.Location,
		RemoteLocation: b.RemoteLocation,
		Error:          b.Error,
		Timestamp:      b.Timestamp,
	}
}

func backupFromModel(m models.BackupRecord) BackupInfo {
	return BackupInfo{
		ID:             m.ID,
		Environment:    m.Environment,
		Filename:       m.Filename,
		Size:           m.Size,
		Timestamp:      m.Timestamp,
		Type:           BackupType(m.Type),
		Status:         BackupStatus(m.Status),
		Location:       m.Location,
		RemoteLocation: m.RemoteLocation,
		Error:          m.Error,
	}
}
