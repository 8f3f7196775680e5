package service

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const (
	listTablesQuery = `SELECT table_name FROM information_schema.tables
		WHERE table_schema = 'public' AND table_type = 'BASE TABLE' ORDER BY table_name`
	listIndexesQuery = `SELECT indexname FROM pg_indexes WHERE schemaname = 'public' ORDER BY indexname`
)

// OptimizeDatabase vacuums every public table, rebuilds every public index and
// refreshes planner statistics. A failing object is reported and the run
// continues with the next one.
func (a *DatabaseAgent) OptimizeDatabase(ctx context.Context, environment string) (*OptimizationReport, error) {
	if _, err := a.pool(environment); err != nil {
		return nil, err
	}

	log := a.logger.WithField("environment", environment)
	log.Info("Optimizing database")

	tables, err := a.objectNames(ctx, environment, listTablesQuery, "table_name")
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	indexes, err := a.objectNames(ctx, environment, listIndexesQuery, "indexname")
	if err != nil {
		return nil, fmt.Errorf("failed to list indexes: %w", err)
	}

	exec := func(statement string) error {
		return a.exec(ctx, environment, statement)
	}
	report := &OptimizationReport{
		Environment:    environment,
		VacuumResults:  maintain("VACUUM ANALYZE", "VACUUM ANALYZE", tables, exec),
		ReindexResults: maintain("REINDEX", "REINDEX INDEX", indexes, exec),
	}

	if err := a.exec(ctx, environment, "ANALYZE"); err != nil {
		log.WithError(err).Error("Failed to update statistics")
	} else {
		report.StatisticsUpdated = true
	}

	log.WithFields(map[string]interface{}{
		"tables":  len(tables),
		"indexes": len(indexes),
	}).Info("Database optimization completed")
	return report, nil
}

func (a *DatabaseAgent) objectNames(ctx context.Context, environment, query, column string) ([]string, error) {
	rows, err := a.ExecuteQuery(ctx, environment, query)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		if name, ok := row[column].(string); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

// maintain runs command once per object and reports each outcome
func maintain(action, command string, objects []string, exec func(statement string) error) []OptimizationResult {
	steps := make([]step, 0, len(objects))
	for _, name := range objects {
		statement := command + " " + pgx.Identifier{"public", name}.Sanitize()
		steps = append(steps, step{name: name, run: func() error {
			return exec(statement)
		}})
	}

	outcomes, _ := runSteps(optimizePolicy, steps)
	results := make([]OptimizationResult, 0, len(outcomes))
	for _, o := range outcomes {
		result := OptimizationResult{Object: o.name, Action: action, Success: o.err == nil}
		if o.err != nil {
			result.Message = fmt.Sprintf("%s failed for %s: %v", action, o.name, o.err)
		} else {
			result.Message = fmt.Sprintf("%s completed for %s", action, o.name)
		}
		results = append(results, result)
	}
	return results
}
