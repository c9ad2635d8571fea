package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/match-point/internal/config"
)

// Prediction is a single classifier result: the predicted class and the class
// probability vector.
type Prediction struct {
	Class         int       `json:"class"`
	Probabilities []float64 `json:"probabilities"`
}

// Classifier is the black-box predictor interface consumed by the serving
// layer.
type Classifier interface {
	Predict(ctx context.Context, features []float64) (*Prediction, error)
}

// HTTPClient reaches the classifier over the model service's JSON API.
type HTTPClient struct {
	client  *http.Client
	baseURL string
	model   string
	apiKey  string
	logger  *logrus.Logger
}

// NewHTTPClient creates a model service client.
func NewHTTPClient(cfg *config.ModelServiceConfig, logger *logrus.Logger) *HTTPClient {
	if logger == nil {
		logger = logrus.New()
	}
	return &HTTPClient{
		client: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
		},
		baseURL: cfg.URL,
		model:   cfg.Model,
		apiKey:  cfg.APIKey,
		logger:  logger,
	}
}

type predictRequest struct {
	Model    string    `json:"model"`
	Features []float64 `json:"features"`
}

// Predict requests a prediction for a feature vector.
func (c *HTTPClient) Predict(ctx context.Context, features []float64) (*Prediction, error) {
	start := time.Now()
	defer func() {
		ModelPredictionLatency.Observe(time.Since(start).Seconds())
	}()

	jsonData, err := json.Marshal(predictRequest{Model: c.model, Features: features})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/v1/predict", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		ModelErrorsTotal.WithLabelValues("predict", "network").Inc()
		c.logger.WithError(err).Error("Failed to reach model service")
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		ModelErrorsTotal.WithLabelValues("predict", "http_error").Inc()
		return nil, fmt.Errorf("%w: status %d: %s", ErrInvalidPrediction, resp.StatusCode, string(body))
	}

	var prediction Prediction
	if err := json.NewDecoder(resp.Body).Decode(&prediction); err != nil {
		ModelErrorsTotal.WithLabelValues("predict", "decode").Inc()
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrediction, err)
	}
	if len(prediction.Probabilities) == 0 {
		ModelErrorsTotal.WithLabelValues("predict", "empty_probabilities").Inc()
		return nil, fmt.Errorf("%w: empty probability vector", ErrInvalidPrediction)
	}

	ModelPredictionsTotal.WithLabelValues("false").Inc()
	return &prediction, nil
}

// Ping verifies the model service is reachable and the model is loaded. The
// serving process exits when this fails at startup.
func (c *HTTPClient) Ping(ctx context.Context) error {
	url := fmt.Sprintf("%s/api/v1/models/%s/health", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrModelUnavailable, resp.StatusCode)
	}
	return nil
}
