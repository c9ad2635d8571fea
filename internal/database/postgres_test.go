package database

import (
	"context"
	"testing"
)

func TestHealthPinger(t *testing.T) {
	db := SetupTestDB(t)
	defer TeardownTestDB(t, db)

	if err := (HealthPinger{DB: db}).Ping(context.Background()); err != nil {
		t.Fatalf("health ping failed: %v", err)
	}
}
