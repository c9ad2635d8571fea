package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/match-point/internal/dataset"
	"github.com/yourusername/match-point/internal/models"
)

const yearlyCSV = `tourney_id,tourney_name,surface,draw_size,tourney_level,tourney_date,match_num,winner_id,winner_name,winner_hand,winner_ioc,loser_id,loser_name,loser_hand,loser_ioc
2020-1,Test Open,Hard,32,A,20200110,1,101,Winner,R,ESP,202,Loser,L,USA
2020-1,Test Open,Hard,32,A,20200110,2,101,Winner,R,ESP,303,Other,R,FRA
`

func TestIngestFromLocalFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, dataset.YearlyFileName(2020))
	if err := os.WriteFile(path, []byte(yearlyCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	// No downloader and no archive database: ingestion only parses what is
	// already on disk.
	svc := NewIngestionService(nil, dataset.NewReader(nil), nil, dir, logrus.New())
	run, err := svc.Ingest(context.Background(), 2020, 2020)
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	if run.RowsLoaded != 2 {
		t.Fatalf("loaded %d rows, want 2", run.RowsLoaded)
	}
	if run.Status != models.IngestCompleted {
		t.Fatalf("status %q, want completed", run.Status)
	}
	if run.ID.String() == "" {
		t.Fatalf("run has no id")
	}
}

func TestIngestNoFiles(t *testing.T) {
	svc := NewIngestionService(nil, dataset.NewReader(nil), nil, t.TempDir(), logrus.New())
	run, err := svc.Ingest(context.Background(), 2020, 2020)
	if err == nil {
		t.Fatalf("expected error when no yearly files exist")
	}
	if run.Status != models.IngestFailed {
		t.Fatalf("status %q, want failed", run.Status)
	}
}
