package metrics

import (
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistry(t *testing.T) {
	// Initialize the registry
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
}

func TestRecordRowIngested(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordRowIngested()
	})
}

func TestRecordRowDropped(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name   string
		reason string
	}{
		{
			name:   "missing numeric",
			reason: "missing_numeric",
		},
		{
			name:   "missing surface",
			reason: "missing_surface",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordRowDropped(tt.reason)
			})
		})
	}
}

func TestRecordPipelineRun(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordPipelineRun(1000, 12.5)
	})
}

func TestRecordStageDuration(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordStageDuration("elo", 0.5)
	})
}

func TestUpdateSnapshot(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name    string
		players int
		columns int
	}{
		{
			name:    "populated snapshot",
			players: 1500,
			columns: 260,
		},
		{
			name:    "empty snapshot",
			players: 0,
			columns: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				UpdateSnapshot(tt.players, tt.columns)
			})
		})
	}
}

func TestMetricsHandler(t *testing.T) {
	InitRegistry()

	handler := Handler()
	assert.NotNil(t, handler)
	assert.Implements(t, (*http.Handler)(nil), handler)
}

func BenchmarkRecordRowIngested(b *testing.B) {
	InitRegistry()

	for i := 0; i < b.N; i++ {
		RecordRowIngested()
	}
}

func BenchmarkRecordStageDuration(b *testing.B) {
	InitRegistry()

	for i := 0; i < b.N; i++ {
		RecordStageDuration("elo", 0.5)
	}
}
