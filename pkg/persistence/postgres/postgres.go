// Package postgres provides the PostgreSQL persistence implementation
// for all opsdeck repositories.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	// PostgreSQL driver.
	_ "github.com/lib/pq"

	"github.com/opsdeck/opsdeck/pkg/persistence"
	"github.com/opsdeck/opsdeck/pkg/persistence/sqlbase"
)

// Persistence implements persistence.Persistence on top of a single
// PostgreSQL connection pool.
type Persistence struct {
	db     *sql.DB
	logger *slog.Logger

	workflows    *WorkflowRepository
	runs         *RunRepository
	teams        *TeamRepository
	engineers    *EngineerRepository
	runbooks     *RunbookRepository
	projects     *ProjectRepository
	slackConfigs *SlackConfigRepository
}

// NewPersistence opens the database, runs pending migrations and wires
// every repository.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) (*Persistence, error) {
	database, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	err = database.PingContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	migrationManager := sqlbase.NewMigrationManager(logger, database, migrations())

	err = migrationManager.RunMigrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Persistence{
		db:           database,
		logger:       logger,
		workflows:    &WorkflowRepository{db: database, logger: logger},
		runs:         &RunRepository{db: database, logger: logger},
		teams:        &TeamRepository{db: database, logger: logger},
		engineers:    &EngineerRepository{db: database, logger: logger},
		runbooks:     &RunbookRepository{db: database, logger: logger},
		projects:     &ProjectRepository{db: database, logger: logger},
		slackConfigs: &SlackConfigRepository{db: database, logger: logger},
	}, nil
}

// Close closes the database connection pool.
func (p *Persistence) Close(ctx context.Context) error {
	if p.db == nil {
		return nil
	}

	err := p.db.Close()
	if err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	return nil
}

// HealthCheck verifies the database connection is healthy.
func (p *Persistence) HealthCheck(ctx context.Context) error {
	err := p.db.PingContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}

func (p *Persistence) WorkflowRepository() persistence.WorkflowRepository {
	return p.workflows
}

func (p *Persistence) RunRepository() persistence.RunRepository {
	return p.runs
}

func (p *Persistence) TeamRepository() persistence.TeamRepository {
	return p.teams
}

func (p *Persistence) EngineerRepository() persistence.EngineerRepository {
	return p.engineers
}

func (p *Persistence) RunbookRepository() persistence.RunbookRepository {
	return p.runbooks
}

func (p *Persistence) ProjectRepository() persistence.ProjectRepository {
	return p.projects
}

func (p *Persistence) SlackConfigRepository() persistence.SlackConfigRepository {
	return p.slackConfigs
}
