// Package ml provides the client for the external classifier service.
package ml

import "errors"

var (
	// ErrModelUnavailable indicates the model service is unreachable
	ErrModelUnavailable = errors.New("model service unavailable")

	// ErrInvalidPrediction indicates the prediction response is invalid
	ErrInvalidPrediction = errors.New("invalid prediction response")

	// ErrConnectionFailed indicates the HTTP request failed
	ErrConnectionFailed = errors.New("model service connection failed")
)
