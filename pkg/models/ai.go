// Package models contains shared data models used across the TripSmith codebase.
package models

import (
	"context"
	"errors"
)

// Sentinel errors reported by generator implementations.
var (
	ErrProviderUnavailable = errors.New("ai provider unavailable")
	ErrInferenceTimeout    = errors.New("ai inference timeout")
	ErrInvalidResponse     = errors.New("ai provider returned invalid response")
)

// Generator is the core interface that all generative-model integrations must
// implement. Never call specific providers directly — always inject this
// interface.
type Generator interface {
	// Generate produces an itinerary document for the request and returns the
	// model's raw JSON content. The caller is responsible for parsing and
	// validating the content before trusting any field.
	Generate(ctx context.Context, req GenerationRequest) ([]byte, error)
	// Name returns the provider identifier (e.g., "openai", "ollama").
	Name() string
}

// GenerationRequest is the input to an itinerary generation operation. The
// schema and prompts are built by the job lifecycle manager so that every
// provider enforces the same output contract.
type GenerationRequest struct {
	Destination  string
	DurationDays int

	System string
	Prompt string
	Schema map[string]any
}
