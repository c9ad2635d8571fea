// Package repository persists raw matches and ingest runs in the archive
// database.
package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yourusername/match-point/internal/database"
	"github.com/yourusername/match-point/internal/models"
)

// MatchRepository stores and retrieves archived raw matches.
type MatchRepository interface {
	Upsert(ctx context.Context, matches []models.RawMatch) (int, error)
	ListChronological(ctx context.Context, startYear, endYear int) ([]models.RawMatch, error)
	CountByYear(ctx context.Context, year int) (int, error)
}

// IngestRunRepository records ingest run history.
type IngestRunRepository interface {
	Create(ctx context.Context, run *models.IngestRun) error
	Complete(ctx context.Context, run *models.IngestRun) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.IngestRun, error)
}

// Repositories holds all repository implementations
type Repositories struct {
	Match     MatchRepository
	IngestRun IngestRunRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Match:     NewPostgresMatchRepository(db),
		IngestRun: NewPostgresIngestRunRepository(db),
	}, nil
}
