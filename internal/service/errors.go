package service

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/archilab/renderstudio/internal/gemini"
	"github.com/archilab/renderstudio/internal/prompt"
)

var (
	// ErrEmptyRequest mirrors the composer's validation failure; the user
	// must adjust the input, a retry changes nothing.
	ErrEmptyRequest = prompt.ErrEmptyRequest

	// ErrNoCredential means no backend key could be resolved anywhere in
	// the override/process/settings chain. Operator territory.
	ErrNoCredential = errors.New("no backend API key configured")

	// ErrNoImage means the backend answered without an inline image.
	// Retryable by the user.
	ErrNoImage = errors.New("backend returned no image")

	// ErrBackendAuth means the resolved credential was rejected upstream.
	ErrBackendAuth = errors.New("backend rejected the API key")

	// ErrRateLimited means the backend throttled the request.
	ErrRateLimited = errors.New("backend is rate limiting")

	// ErrNoSourceImage is returned by operations that need an uploaded
	// working image, such as plan analysis.
	ErrNoSourceImage = errors.New("no source image in session")
)

// mapBackendError folds upstream transport faults into the service error
// taxonomy. No raw API error leaves the dispatcher unclassified.
func mapBackendError(err error) error {
	var apiErr *gemini.APIError
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("generation backend: %w", err)
	}

	switch {
	case apiErr.StatusCode == http.StatusTooManyRequests,
		strings.Contains(apiErr.Message, "Quota exceeded"):
		return fmt.Errorf("%w: %s", ErrRateLimited, apiErr.Message)
	case apiErr.StatusCode == http.StatusUnauthorized,
		apiErr.StatusCode == http.StatusForbidden,
		strings.Contains(apiErr.Message, "Requested entity was not found"):
		return fmt.Errorf("%w: %s", ErrBackendAuth, apiErr.Message)
	default:
		return fmt.Errorf("generation backend: %w", apiErr)
	}
}

// UserMessage maps a dispatch error to the single user-facing message for
// its category.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrEmptyRequest):
		return "Please select a style or enter a description."
	case errors.Is(err, ErrNoCredential), errors.Is(err, ErrBackendAuth):
		return "System API key issue. Please contact the administrator."
	case errors.Is(err, ErrRateLimited):
		return "System busy. Please try again later."
	case errors.Is(err, ErrNoSourceImage):
		return "Please upload an image first."
	default:
		return "Failed to generate image. Please try again."
	}
}
