// Package server exposes the prediction API over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/match-point/internal/metrics"
	"github.com/yourusername/match-point/internal/ml"
	"github.com/yourusername/match-point/internal/models"
)

// MaxBodySize limits the size of request bodies to 1MB
const MaxBodySize = 1048576

// Handler carries the dependencies shared by the HTTP endpoints
type Handler struct {
	predictor *Predictor
	logger    *logrus.Logger
	validator *validator.Validate
}

// NewHandler creates the API handler
func NewHandler(predictor *Predictor, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		predictor: predictor,
		logger:    logger,
		validator: validator.New(),
	}
}

// Predict scores a matchup described by the request body
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	var req models.PredictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.predictor.Predict(r.Context(), &req)
	if err != nil {
		h.predictionError(w, err, req.Player1ID, req.Player2ID)
		return
	}

	metrics.PredictionsServed.Inc()
	h.jsonResponse(w, http.StatusOK, resp)
}

// PlayerStatistics returns the latest known statistics for a player
func (h *Handler) PlayerStatistics(w http.ResponseWriter, r *http.Request) {
	playerID, err := strconv.Atoi(chi.URLParam(r, "playerID"))
	if err != nil || playerID <= 0 {
		h.errorResponse(w, http.StatusBadRequest, "Player ID must be a positive integer")
		return
	}

	stats, err := h.predictor.PlayerStatistics(playerID)
	if err != nil {
		if errors.Is(err, models.ErrUnknownPlayer) {
			h.errorResponse(w, http.StatusNotFound, "Player not found")
			return
		}
		h.logger.WithError(err).WithField("player_id", playerID).Error("Failed to load player statistics")
		h.errorResponse(w, http.StatusInternalServerError, "Failed to load player statistics")
		return
	}

	h.jsonResponse(w, http.StatusOK, stats)
}

// Health check endpoint
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) predictionError(w http.ResponseWriter, err error, p1, p2 int) {
	switch {
	case errors.Is(err, models.ErrUnknownPlayer):
		h.errorResponse(w, http.StatusNotFound, "Player not found")
	case errors.Is(err, models.ErrUnknownSurface),
		errors.Is(err, models.ErrUnknownLevel),
		errors.Is(err, models.ErrUnknownEntry):
		h.errorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ml.ErrModelUnavailable):
		h.logger.WithError(err).Error("Model service unavailable")
		h.errorResponse(w, http.StatusServiceUnavailable, "Model service unavailable")
	default:
		h.logger.WithError(err).WithFields(logrus.Fields{
			"player_1": p1,
			"player_2": p2,
		}).Error("Prediction failed")
		h.errorResponse(w, http.StatusInternalServerError, "Prediction failed")
	}
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{"error": message})
}
