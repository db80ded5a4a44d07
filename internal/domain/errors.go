package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput signals a malformed request.
	ErrInvalidInput = errors.New("invalid input")
	// ErrVectorLengthMismatch signals a similarity call on vectors of different length.
	ErrVectorLengthMismatch = errors.New("vectors must have the same length")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrModelNotLoaded signals that the embedding model could not be loaded.
	ErrModelNotLoaded = errors.New("embedding model not loaded")

	// ErrRateLimited signals a rate limit hit on the hosted model.
	ErrRateLimited = errors.New("rate limited")
	// ErrInvalidCredential signals a rejected hosted model credential.
	ErrInvalidCredential = errors.New("invalid credential")
	// ErrMalformedResponse signals hosted model output that does not match the analysis contract.
	ErrMalformedResponse = errors.New("malformed model response")
	// ErrUpstreamFailure signals any other hosted model failure.
	ErrUpstreamFailure = errors.New("upstream model failure")
	// ErrBackendUnavailable signals that the requested analysis backend is not configured.
	ErrBackendUnavailable = errors.New("analysis backend unavailable")
)

// UpstreamStatusError carries the HTTP status returned by a hosted model.
type UpstreamStatusError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", ErrUpstreamFailure.Error(), e.StatusCode, e.Message)
}

func (e *UpstreamStatusError) Unwrap() error { return ErrUpstreamFailure }

// ClassifyUpstreamStatus maps a hosted model HTTP status to a sentinel-wrapped error.
func ClassifyUpstreamStatus(status int, message string) error {
	switch status {
	case 429:
		return fmt.Errorf("%s: %w", message, ErrRateLimited)
	case 401, 403:
		return fmt.Errorf("%s: %w", message, ErrInvalidCredential)
	default:
		return &UpstreamStatusError{StatusCode: status, Message: message}
	}
}
