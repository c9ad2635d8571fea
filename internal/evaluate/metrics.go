package evaluate

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/yourusername/match-point/internal/ml"
)

// logLossEpsilon clamps probabilities away from 0 and 1 so a single
// overconfident miss cannot blow up the aggregate.
const logLossEpsilon = 1e-15

// Metrics represents aggregate evaluation results
type Metrics struct {
	TotalMatches   int       `json:"total_matches"`
	Correct        int       `json:"correct"`
	Errors         int       `json:"errors"`
	Accuracy       float64   `json:"accuracy"`
	LogLoss        float64   `json:"log_loss"`
	BrierScore     float64   `json:"brier_score"`
	MeanConfidence float64   `json:"mean_confidence"`
	StartedAt      time.Time `json:"started_at"`

	sumLogLoss    float64
	sumBrier      float64
	sumConfidence float64
}

// observe folds a single scored match into the running sums.
func (m *Metrics) observe(prediction *ml.Prediction, player1Won bool) {
	m.TotalMatches++

	label := 0
	if player1Won {
		label = 1
	}

	if prediction.Class == label {
		m.Correct++
	}

	p := probabilityOf(prediction, 1)
	m.sumConfidence += probabilityOf(prediction, prediction.Class)
	m.sumBrier += (p - float64(label)) * (p - float64(label))

	clamped := math.Min(math.Max(p, logLossEpsilon), 1-logLossEpsilon)
	if label == 1 {
		m.sumLogLoss -= math.Log(clamped)
	} else {
		m.sumLogLoss -= math.Log(1 - clamped)
	}
}

// finalize computes the averages once observation is done.
func (m *Metrics) finalize() {
	if m.TotalMatches == 0 {
		return
	}
	n := float64(m.TotalMatches)
	m.Accuracy = float64(m.Correct) / n
	m.LogLoss = m.sumLogLoss / n
	m.BrierScore = m.sumBrier / n
	m.MeanConfidence = m.sumConfidence / n
}

// probabilityOf reads a class probability, tolerating single-element
// probability vectors that only carry the predicted class.
func probabilityOf(p *ml.Prediction, class int) float64 {
	if class >= 0 && class < len(p.Probabilities) {
		return p.Probabilities[class]
	}
	if len(p.Probabilities) == 1 && class == p.Class {
		return p.Probabilities[0]
	}
	return 0
}

// ToJSON exports metrics to JSON
func (m *Metrics) ToJSON() string {
	data, _ := json.Marshal(m)
	return string(data)
}

// GenerateConsoleReport renders a plain-text summary of an evaluation run.
func GenerateConsoleReport(m *Metrics) string {
	var b strings.Builder

	b.WriteString("\n=== Model Evaluation Report ===\n")
	fmt.Fprintf(&b, "Matches scored:   %d\n", m.TotalMatches)
	fmt.Fprintf(&b, "Prediction errors: %d\n", m.Errors)
	fmt.Fprintf(&b, "Accuracy:         %.4f\n", m.Accuracy)
	fmt.Fprintf(&b, "Log loss:         %.4f\n", m.LogLoss)
	fmt.Fprintf(&b, "Brier score:      %.4f\n", m.BrierScore)
	fmt.Fprintf(&b, "Mean confidence:  %.4f\n", m.MeanConfidence)

	return b.String()
}
