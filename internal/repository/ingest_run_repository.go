package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/match-point/internal/database"
	"github.com/yourusername/match-point/internal/models"
)

// PostgresIngestRunRepository implements IngestRunRepository for PostgreSQL
type PostgresIngestRunRepository struct {
	db *database.DB
}

// NewPostgresIngestRunRepository creates a new ingest run repository
func NewPostgresIngestRunRepository(db *database.DB) IngestRunRepository {
	return &PostgresIngestRunRepository{db: db}
}

// Create inserts a new ingest run record
func (r *PostgresIngestRunRepository) Create(ctx context.Context, run *models.IngestRun) error {
	query := `
		INSERT INTO ingest_runs (id, started_at, start_year, end_year, rows_loaded, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		run.ID, run.StartedAt, run.StartYear, run.EndYear, run.RowsLoaded, run.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create ingest run: %w", err)
	}

	return nil
}

// Complete marks an ingest run as finished with its final row count
func (r *PostgresIngestRunRepository) Complete(ctx context.Context, run *models.IngestRun) error {
	now := time.Now().UTC()
	run.CompletedAt = &now

	query := `
		UPDATE ingest_runs SET
			completed_at = $2, rows_loaded = $3, status = $4
		WHERE id = $1
	`

	commandTag, err := r.db.GetPool().Exec(ctx, query,
		run.ID, run.CompletedAt, run.RowsLoaded, run.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to complete ingest run: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// GetByID retrieves an ingest run by ID
func (r *PostgresIngestRunRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.IngestRun, error) {
	query := `
		SELECT id, started_at, completed_at, start_year, end_year, rows_loaded, status
		FROM ingest_runs WHERE id = $1
	`

	run := &models.IngestRun{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(
		&run.ID, &run.StartedAt, &run.CompletedAt, &run.StartYear,
		&run.EndYear, &run.RowsLoaded, &run.Status,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ingest run: %w", err)
	}

	return run, nil
}
