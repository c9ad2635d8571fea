package models

import (
	"time"

	"github.com/google/uuid"
)

// Ingest run statuses.
const (
	IngestRunning   = "running"
	IngestCompleted = "completed"
	IngestFailed    = "failed"
)

// IngestRun records one pass of loading yearly files into the archive.
type IngestRun struct {
	ID          uuid.UUID
	StartedAt   time.Time
	CompletedAt *time.Time
	StartYear   int
	EndYear     int
	RowsLoaded  int
	Status      string
}

// NewIngestRun starts a new ingest run record.
func NewIngestRun(startYear, endYear int) *IngestRun {
	return &IngestRun{
		ID:        uuid.New(),
		StartedAt: time.Now().UTC(),
		StartYear: startYear,
		EndYear:   endYear,
		Status:    IngestRunning,
	}
}
