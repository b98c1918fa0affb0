// Package mock provides a models.Generator test double.
package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/voyago/tripsmith/pkg/models"
)

// MockProvider satisfies models.Generator for testing and local development.
type MockProvider struct {
	Name_        string
	GenerateFunc func(ctx context.Context, req models.GenerationRequest) ([]byte, error)
}

func (m *MockProvider) Name() string { return m.Name_ }

func (m *MockProvider) Generate(ctx context.Context, req models.GenerationRequest) ([]byte, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	return nil, nil
}

// NewMockProvider returns a MockProvider that emits a deterministic,
// schema-conformant itinerary document for any request.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Name_: "mock",
		GenerateFunc: func(_ context.Context, req models.GenerationRequest) ([]byte, error) {
			return json.Marshal(Document(req.Destination, req.DurationDays))
		},
	}
}

// NewFailingProvider returns a MockProvider that always returns the given error.
func NewFailingProvider(err error) *MockProvider {
	return &MockProvider{
		Name_: "mock-failing",
		GenerateFunc: func(_ context.Context, _ models.GenerationRequest) ([]byte, error) {
			return nil, err
		},
	}
}

// NewTimeoutProvider returns a MockProvider that blocks until context is cancelled.
func NewTimeoutProvider() *MockProvider {
	return &MockProvider{
		Name_: "mock-timeout",
		GenerateFunc: func(ctx context.Context, _ models.GenerationRequest) ([]byte, error) {
			<-ctx.Done()
			return nil, fmt.Errorf("%w: %v", models.ErrInferenceTimeout, ctx.Err())
		},
	}
}

// Document builds the full itinerary document the mock provider emits. Exported
// so tests can assert against the exact expected payload.
func Document(destination string, durationDays int) map[string]any {
	days := make([]models.DayPlan, durationDays)
	for i := range days {
		days[i] = models.DayPlan{
			Day:   i + 1,
			Theme: fmt.Sprintf("Day %d in %s", i+1, destination),
			Activities: []models.Activity{
				{Time: "09:00", Description: "Morning walking tour", Location: destination + " old town"},
				{Time: "13:00", Description: "Lunch at a local market", Location: destination + " central market"},
				{Time: "19:00", Description: "Dinner reservation", Location: destination},
			},
		}
	}
	return map[string]any{
		"status":       models.JobStatusProcessing,
		"destination":  destination,
		"durationDays": durationDays,
		"createdAt":    time.Now().UTC().Format(time.RFC3339),
		"completedAt":  nil,
		"itinerary":    days,
		"error":        nil,
	}
}

// Compile-time check that MockProvider implements Generator.
var _ models.Generator = (*MockProvider)(nil)
