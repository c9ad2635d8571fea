package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/match-point/internal/database"
	"github.com/yourusername/match-point/internal/models"
)

// PostgresMatchRepository implements MatchRepository for PostgreSQL
type PostgresMatchRepository struct {
	db *database.DB
}

// NewPostgresMatchRepository creates a new match repository
func NewPostgresMatchRepository(db *database.DB) MatchRepository {
	return &PostgresMatchRepository{db: db}
}

// Upsert inserts or replaces archived matches and returns the number of rows
// written. The full row is kept as JSONB so the archive survives schema
// additions in the source files.
func (r *PostgresMatchRepository) Upsert(ctx context.Context, matches []models.RawMatch) (int, error) {
	query := `
		INSERT INTO matches (
			tourney_id, match_num, tourney_name, surface, draw_size,
			tourney_level, tourney_date, winner_id, winner_name,
			loser_id, loser_name, score, raw
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (tourney_id, match_num) DO UPDATE SET raw = EXCLUDED.raw
	`

	batch := &pgx.Batch{}
	for i := range matches {
		m := &matches[i]
		raw, err := json.Marshal(m)
		if err != nil {
			return 0, fmt.Errorf("encoding match %s/%d: %w", m.TourneyID, m.MatchNum, err)
		}
		batch.Queue(query,
			m.TourneyID, m.MatchNum, m.TourneyName, m.Surface, m.DrawSize,
			m.TourneyLevel, m.TourneyDate, m.WinnerID, m.WinnerName,
			m.LoserID, m.LoserName, m.Score, raw,
		)
	}

	results := r.db.GetPool().SendBatch(ctx, batch)
	defer results.Close()

	written := 0
	for range matches {
		if _, err := results.Exec(); err != nil {
			return written, fmt.Errorf("failed to upsert match: %w", err)
		}
		written++
	}

	return written, nil
}

// ListChronological retrieves archived matches for a year range ordered by
// tournament date and match number.
func (r *PostgresMatchRepository) ListChronological(ctx context.Context, startYear, endYear int) ([]models.RawMatch, error) {
	query := `
		SELECT raw
		FROM matches
		WHERE tourney_date >= $1 AND tourney_date <= $2
		ORDER BY tourney_date ASC, match_num ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, startYear*10000, endYear*10000+1231)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var matches []models.RawMatch
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		var m models.RawMatch
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("decoding archived match: %w", err)
		}
		matches = append(matches, m)
	}

	return matches, rows.Err()
}

// CountByYear returns the number of archived matches for a year.
func (r *PostgresMatchRepository) CountByYear(ctx context.Context, year int) (int, error) {
	query := "SELECT COUNT(*) FROM matches WHERE tourney_date >= $1 AND tourney_date <= $2"

	var count int
	err := r.db.GetPool().QueryRow(ctx, query, year*10000, year*10000+1231).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count matches: %w", err)
	}
	return count, nil
}
