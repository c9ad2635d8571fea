// Package dataset reads and writes the CSV artifacts the pipeline consumes:
// the yearly raw match files and the engineered feature frames.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/match-point/internal/metrics"
	"github.com/yourusername/match-point/internal/models"
)

// requiredColumns must be present in every yearly file header.
var requiredColumns = []string{
	"surface", "draw_size", "tourney_level", "tourney_date",
	"winner_id", "winner_name", "winner_hand", "winner_ioc",
	"loser_id", "loser_name", "loser_hand", "loser_ioc",
}

// YearlyFileName returns the conventional name of a yearly match file.
func YearlyFileName(year int) string {
	return fmt.Sprintf("atp_matches_%d.csv", year)
}

// Reader parses yearly ATP match files into raw match rows.
type Reader struct {
	logger *logrus.Logger
	header []string
}

// NewReader creates a dataset reader
func NewReader(logger *logrus.Logger) *Reader {
	if logger == nil {
		logger = logrus.New()
	}
	return &Reader{logger: logger}
}

// Header returns the header row of the first file read.
func (r *Reader) Header() []string {
	return r.header
}

// ReadFile reads a single yearly CSV file.
func (r *Reader) ReadFile(path string) ([]models.RawMatch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	matches, err := r.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	return matches, nil
}

// Read parses raw matches from a CSV stream. The header row drives column
// lookup so yearly files with extra or reordered columns still parse.
func (r *Reader) Read(src io.Reader) ([]models.RawMatch, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	if r.header == nil {
		r.header = append([]string(nil), header...)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing column %s: %w", col, models.ErrSchemaMismatch)
		}
	}

	var matches []models.RawMatch
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		m, err := parseRow(row, idx)
		if err != nil {
			r.logger.WithError(err).WithField("line", line).Warn("Skipping malformed row")
			metrics.RecordRowDropped("malformed")
			continue
		}
		metrics.RecordRowIngested()
		matches = append(matches, *m)
	}

	return matches, nil
}

// LoadYearly reads every yearly file in [startYear, endYear] from dir and
// returns the union. Missing years are skipped with a warning.
func (r *Reader) LoadYearly(dir string, startYear, endYear int) ([]models.RawMatch, error) {
	var all []models.RawMatch
	loaded := 0

	for year := startYear; year <= endYear; year++ {
		path := filepath.Join(dir, YearlyFileName(year))
		if _, err := os.Stat(path); os.IsNotExist(err) {
			r.logger.WithField("year", year).Warn("Yearly file not found, skipping")
			continue
		}

		matches, err := r.ReadFile(path)
		if err != nil {
			return nil, err
		}
		all = append(all, matches...)
		loaded++

		r.logger.WithFields(logrus.Fields{
			"year":    year,
			"matches": len(matches),
		}).Debug("Loaded yearly file")
	}

	if loaded == 0 {
		return nil, fmt.Errorf("no yearly files found in %s for %d-%d", dir, startYear, endYear)
	}

	r.logger.WithFields(logrus.Fields{
		"files":   loaded,
		"matches": len(all),
	}).Info("Dataset loaded")
	return all, nil
}

func parseRow(row []string, idx map[string]int) (*models.RawMatch, error) {
	winnerID, err := intCell(row, idx, "winner_id")
	if err != nil {
		return nil, err
	}
	loserID, err := intCell(row, idx, "loser_id")
	if err != nil {
		return nil, err
	}
	tourneyDate, err := intCell(row, idx, "tourney_date")
	if err != nil {
		return nil, err
	}

	m := &models.RawMatch{
		TourneyID:    cell(row, idx, "tourney_id"),
		TourneyName:  cell(row, idx, "tourney_name"),
		Surface:      cell(row, idx, "surface"),
		DrawSize:     floatCell(row, idx, "draw_size"),
		TourneyLevel: cell(row, idx, "tourney_level"),
		TourneyDate:  tourneyDate,

		WinnerID:         winnerID,
		WinnerSeed:       floatCell(row, idx, "winner_seed"),
		WinnerEntry:      cell(row, idx, "winner_entry"),
		WinnerName:       cell(row, idx, "winner_name"),
		WinnerHand:       cell(row, idx, "winner_hand"),
		WinnerHeight:     floatCell(row, idx, "winner_ht"),
		WinnerIOC:        cell(row, idx, "winner_ioc"),
		WinnerAge:        floatCell(row, idx, "winner_age"),
		WinnerRank:       floatCell(row, idx, "winner_rank"),
		WinnerRankPoints: floatCell(row, idx, "winner_rank_points"),

		LoserID:         loserID,
		LoserSeed:       floatCell(row, idx, "loser_seed"),
		LoserEntry:      cell(row, idx, "loser_entry"),
		LoserName:       cell(row, idx, "loser_name"),
		LoserHand:       cell(row, idx, "loser_hand"),
		LoserHeight:     floatCell(row, idx, "loser_ht"),
		LoserIOC:        cell(row, idx, "loser_ioc"),
		LoserAge:        floatCell(row, idx, "loser_age"),
		LoserRank:       floatCell(row, idx, "loser_rank"),
		LoserRankPoints: floatCell(row, idx, "loser_rank_points"),

		Score:   cell(row, idx, "score"),
		BestOf:  cell(row, idx, "best_of"),
		Round:   cell(row, idx, "round"),
		Minutes: floatCell(row, idx, "minutes"),
	}

	if n := cell(row, idx, "match_num"); n != "" {
		if v, err := strconv.Atoi(n); err == nil {
			m.MatchNum = v
		}
	}

	for i, metric := range models.InGameMetrics {
		m.WinnerInGame[i] = floatCell(row, idx, "w_"+metric)
		m.LoserInGame[i] = floatCell(row, idx, "l_"+metric)
	}

	return m, nil
}

func cell(row []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func intCell(row []string, idx map[string]int, name string) (int, error) {
	s := cell(row, idx, name)
	if s == "" {
		return 0, fmt.Errorf("empty %s", name)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", name, err)
	}
	return v, nil
}

func floatCell(row []string, idx map[string]int, name string) *float64 {
	s := cell(row, idx, name)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
