package features

import (
	"math/rand"

	"github.com/yourusername/match-point/internal/models"
)

// Normalizer converts winner/loser-oriented matches into canonical pair
// records with a randomized binary label. Given the same random source the
// output is fully reproducible.
type Normalizer struct {
	rnd *rand.Rand
}

// NewNormalizer creates a normalizer drawing labels from src.
func NewNormalizer(src rand.Source) *Normalizer {
	return &Normalizer{rnd: rand.New(src)}
}

// Normalize maps each match to a pair record. When the label is true the
// winner becomes player_1, otherwise the winner becomes player_2.
func (n *Normalizer) Normalize(matches []models.CleanMatch) []models.MatchRecord {
	records := make([]models.MatchRecord, len(matches))
	for i := range matches {
		records[i] = n.normalizeOne(&matches[i])
	}
	return records
}

func (n *Normalizer) normalizeOne(m *models.CleanMatch) models.MatchRecord {
	player1Won := n.rnd.Intn(2) == 1

	r := models.MatchRecord{
		Year:         m.Year,
		Month:        m.Month,
		Day:          m.Day,
		Surface:      m.Surface,
		TourneyLevel: m.TourneyLevel,
		DrawSize:     m.DrawSize,
		Player1Won:   player1Won,
	}
	if player1Won {
		r.Players[0] = m.Winner
		r.Players[1] = m.Loser
	} else {
		r.Players[0] = m.Loser
		r.Players[1] = m.Winner
	}
	return r
}
