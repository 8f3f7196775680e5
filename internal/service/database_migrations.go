package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	apperrors "ops-agent-backend/internal/errors"

	"github.com/jackc/pgx/v5"
)

const createMigrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	id SERIAL PRIMARY KEY,
	name VARCHAR(255) NOT NULL UNIQUE,
	batch INTEGER NOT NULL,
	migration_time TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// RunMigrations applies the pending .sql files of the migrations directory in
// filename order. Each file runs in its own transaction together with its
// tracking row. The run stops at the first failing file; the returned statuses
// cover the files attempted, ending with the failure.
func (a *DatabaseAgent) RunMigrations(ctx context.Context, environment string) ([]MigrationStatus, error) {
	p, err := a.pool(environment)
	if err != nil {
		return nil, err
	}

	log := a.logger.WithField("environment", environment)
	log.Info("Running database migrations")

	if err := a.exec(ctx, environment, createMigrationsTable); err != nil {
		return nil, fmt.Errorf("%w: tracking table: %v", apperrors.ErrMigrationFailed, err)
	}

	files, err := migrationFiles(a.cfg.MigrationsDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrMigrationFailed, err)
	}

	rows, err := a.ExecuteQuery(ctx, environment, `SELECT name, batch FROM schema_migrations ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrMigrationFailed, err)
	}
	applied := make(map[string]bool, len(rows))
	lastBatch := 0
	for _, row := range rows {
		if name, ok := row["name"].(string); ok {
			applied[name] = true
		}
		if b := toInt(row["batch"]); b > lastBatch {
			lastBatch = b
		}
	}
	batch := lastBatch + 1

	statuses := make([]MigrationStatus, 0)
	steps := make([]step, 0, len(files))
	for _, file := range files {
		if applied[file] {
			continue
		}
		file := file
		steps = append(steps, step{name: file, run: func() error {
			started := time.Now()
			err := a.applyMigration(ctx, p.pool.Begin, file, batch)
			a.observe(environment, "migration "+file, time.Since(started), p.pool.Stat(), err)

			status := MigrationStatus{ID: file, Name: file}
			if err != nil {
				status.Error = err.Error()
				log.WithError(err).WithField("migration", file).Error("Migration failed")
			} else {
				executedAt := a.clock()
				status.Executed = true
				status.ExecutedAt = &executedAt
				status.Batch = batch
				log.WithField("migration", file).Info("Migration executed")
			}
			statuses = append(statuses, status)
			return err
		}})
	}

	if _, err := runSteps(migrationPolicy, steps); err != nil {
		return statuses, fmt.Errorf("%w: %s: %v", apperrors.ErrMigrationFailed, statuses[len(statuses)-1].Name, err)
	}

	log.WithField("executed", len(statuses)).Info("Database migrations completed")
	return statuses, nil
}

func (a *DatabaseAgent) applyMigration(ctx context.Context, begin func(context.Context) (pgx.Tx, error), file string, batch int) error {
	script, err := os.ReadFile(filepath.Join(a.cfg.MigrationsDir, file))
	if err != nil {
		return err
	}

	tx, err := begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, string(script)); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (name, batch) VALUES ($1, $2)`, file, batch); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// migrationFiles lists the .sql files of dir sorted by name. A missing
// directory has no migrations.
func migrationFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}
