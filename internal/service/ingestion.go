// Package service implements the dataset ingestion workflow: downloading
// yearly match files, parsing them and archiving the rows.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/match-point/internal/dataset"
	"github.com/yourusername/match-point/internal/models"
	"github.com/yourusername/match-point/internal/repository"
)

// IngestionService handles the data ingestion workflow
type IngestionService struct {
	downloader *dataset.Downloader
	reader     *dataset.Reader
	repos      *repository.Repositories
	logger     *logrus.Logger
	dataDir    string
}

// NewIngestionService creates a new ingestion service. repos may be nil when
// no archive database is configured; ingestion then stops at the data
// directory.
func NewIngestionService(
	downloader *dataset.Downloader,
	reader *dataset.Reader,
	repos *repository.Repositories,
	dataDir string,
	logger *logrus.Logger,
) *IngestionService {
	return &IngestionService{
		downloader: downloader,
		reader:     reader,
		repos:      repos,
		dataDir:    dataDir,
		logger:     logger,
	}
}

// Ingest downloads, parses and archives the yearly files for a year range.
func (s *IngestionService) Ingest(ctx context.Context, startYear, endYear int) (*models.IngestRun, error) {
	start := time.Now()
	run := models.NewIngestRun(startYear, endYear)

	s.logger.WithFields(logrus.Fields{
		"run_id":     run.ID,
		"start_year": startYear,
		"end_year":   endYear,
	}).Info("Starting dataset ingestion")

	if s.repos != nil {
		if err := s.repos.IngestRun.Create(ctx, run); err != nil {
			return nil, err
		}
	}

	err := s.ingest(ctx, run)
	run.Status = models.IngestCompleted
	if err != nil {
		run.Status = models.IngestFailed
	}

	if s.repos != nil {
		if completeErr := s.repos.IngestRun.Complete(ctx, run); completeErr != nil {
			s.logger.WithError(completeErr).Warn("Failed to record ingest run completion")
		}
	}

	if err != nil {
		return run, err
	}

	s.logger.WithFields(logrus.Fields{
		"run_id":   run.ID,
		"rows":     run.RowsLoaded,
		"duration": time.Since(start).String(),
	}).Info("Dataset ingestion complete")
	return run, nil
}

func (s *IngestionService) ingest(ctx context.Context, run *models.IngestRun) error {
	if s.downloader != nil {
		if err := s.downloader.FetchRange(ctx, run.StartYear, run.EndYear); err != nil {
			return fmt.Errorf("downloading yearly files: %w", err)
		}
	}

	matches, err := s.reader.LoadYearly(s.dataDir, run.StartYear, run.EndYear)
	if err != nil {
		return err
	}
	run.RowsLoaded = len(matches)

	if s.repos == nil {
		return nil
	}

	written, err := s.repos.Match.Upsert(ctx, matches)
	if err != nil {
		return fmt.Errorf("archiving matches: %w", err)
	}
	s.logger.WithField("rows", written).Debug("Matches archived")
	return nil
}
