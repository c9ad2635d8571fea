package scheduler

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func newTestScheduler() *Scheduler {
	return NewScheduler(nil, logrus.New())
}

func TestScheduleRefreshInvalidExpression(t *testing.T) {
	s := newTestScheduler()
	if err := s.ScheduleRefresh("not a cron", 2000); err == nil {
		t.Fatalf("expected error for invalid cron expression")
	}
}

func TestStartWithoutJobs(t *testing.T) {
	s := newTestScheduler()
	if err := s.Start(); err == nil {
		t.Fatalf("expected error starting with no jobs")
	}
}

func TestStartStop(t *testing.T) {
	s := newTestScheduler()
	if err := s.ScheduleRefresh("0 3 * * *", 2000); err != nil {
		t.Fatalf("schedule failed: %v", err)
	}
	if s.IsRunning() {
		t.Fatalf("scheduler should not run before Start")
	}

	if err := s.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if !s.IsRunning() {
		t.Fatalf("scheduler should be running")
	}
	if err := s.Start(); err == nil {
		t.Fatalf("expected error starting twice")
	}

	next := s.GetNextRun()
	if next.IsZero() || !next.After(time.Now().UTC().Add(-time.Minute)) {
		t.Fatalf("next run %v not in the future", next)
	}

	if err := s.Stop(); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	if s.IsRunning() {
		t.Fatalf("scheduler should be stopped")
	}
	// Stopping twice is a no-op.
	if err := s.Stop(); err != nil {
		t.Fatalf("second stop failed: %v", err)
	}
}

func TestScheduleWhileRunning(t *testing.T) {
	s := newTestScheduler()
	if err := s.ScheduleRefresh("@hourly", 2000); err != nil {
		t.Fatalf("schedule failed: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	defer s.Stop()

	if err := s.ScheduleRefresh("@daily", 2000); err == nil {
		t.Fatalf("expected error scheduling while running")
	}
}
