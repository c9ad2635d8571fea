package database

import (
	"context"
	"fmt"

	"github.com/yourusername/match-point/internal/config"
)

// schema holds the archive tables. CREATE IF NOT EXISTS keeps startup
// idempotent without a separate migration step.
const schema = `
CREATE TABLE IF NOT EXISTS matches (
	tourney_id    TEXT    NOT NULL,
	match_num     INTEGER NOT NULL,
	tourney_name  TEXT,
	surface       TEXT,
	draw_size     DOUBLE PRECISION,
	tourney_level TEXT,
	tourney_date  INTEGER NOT NULL,
	winner_id     INTEGER NOT NULL,
	winner_name   TEXT,
	loser_id      INTEGER NOT NULL,
	loser_name    TEXT,
	score         TEXT,
	raw           JSONB   NOT NULL,
	PRIMARY KEY (tourney_id, match_num)
);
CREATE INDEX IF NOT EXISTS matches_tourney_date_idx ON matches (tourney_date);

CREATE TABLE IF NOT EXISTS ingest_runs (
	id           UUID        PRIMARY KEY,
	started_at   TIMESTAMPTZ NOT NULL,
	completed_at TIMESTAMPTZ,
	start_year   INTEGER     NOT NULL,
	end_year     INTEGER     NOT NULL,
	rows_loaded  INTEGER     NOT NULL DEFAULT 0,
	status       TEXT        NOT NULL
);
`

// Initialize creates a database connection pool and ensures the archive
// schema exists.
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// EnsureSchema creates the archive tables on an existing connection.
func EnsureSchema(ctx context.Context, db *DB) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensuring archive schema: %w", err)
	}
	return nil
}
