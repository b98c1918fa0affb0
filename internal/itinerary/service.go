// Package itinerary implements the job lifecycle for itinerary generation:
// creating jobs, dispatching background generation, and reconciling results
// into the store.
package itinerary

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/voyago/tripsmith/internal/ai"
	"github.com/voyago/tripsmith/internal/cache"
	"github.com/voyago/tripsmith/internal/store"
	"github.com/voyago/tripsmith/pkg/models"
)

const (
	minDurationDays = 1
	maxDurationDays = 30

	statusCacheTTL = 30 * time.Minute
)

// ValidationError reports a malformed or out-of-range client input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// CreateRequest holds the client input for a new itinerary job.
type CreateRequest struct {
	Destination  string
	DurationDays int
}

// Service orchestrates itinerary generation jobs. A job is inserted in
// processing state, resolved by exactly one background task, and never
// transitions again after reaching completed or failed.
type Service struct {
	generator models.Generator
	store     store.Store
	cache     cache.Cache
	timeout   time.Duration

	wg sync.WaitGroup
}

// NewService creates a new Service.
func NewService(generator models.Generator, st store.Store, ca cache.Cache, timeout time.Duration) *Service {
	return &Service{
		generator: generator,
		store:     st,
		cache:     ca,
		timeout:   timeout,
	}
}

// CreateJob validates the request, inserts a processing job record, and
// dispatches generation in a background goroutine. Returns the job
// immediately without waiting for generation to complete.
func (s *Service) CreateJob(ctx context.Context, req CreateRequest) (*models.Job, error) {
	destination := strings.TrimSpace(req.Destination)
	if destination == "" {
		return nil, &ValidationError{Field: "destination", Message: "destination is required (string)"}
	}
	if req.DurationDays < minDurationDays || req.DurationDays > maxDurationDays {
		return nil, &ValidationError{Field: "durationDays", Message: "durationDays must be an integer between 1 and 30"}
	}

	job := &models.Job{
		ID:           uuid.New(),
		Status:       models.JobStatusProcessing,
		Destination:  destination,
		DurationDays: req.DurationDays,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.store.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("creating job: %w", err)
	}

	_ = s.cache.SetJobStatus(ctx, job.ID, models.JobStatusProcessing, statusCacheTTL)

	s.wg.Add(1)
	go s.generate(job.ID, destination, req.DurationDays)

	return job, nil
}

// GetJob returns the current stored record for a job, verbatim.
// Returns store.ErrNotFound for unknown ids.
func (s *Service) GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	return s.store.GetJob(ctx, id)
}

// Wait blocks until all in-flight generation tasks have resolved. Called
// during shutdown so background work runs to completion after the original
// responses have been sent.
func (s *Service) Wait() {
	s.wg.Wait()
}

// generate performs the generation work in a goroutine. It recovers from
// panics and always resolves the job to completed or failed — never leaving
// a stuck processing record behind.
func (s *Service) generate(jobID uuid.UUID, destination string, durationDays int) {
	defer s.wg.Done()

	// The request that created the job has already been answered; background
	// work is not bound to its lifetime.
	ctx := context.Background()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic in generate", "error", r, "job_id", jobID)
			s.fail(ctx, jobID, fmt.Sprintf("panic: %v", r))
		}
	}()

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.generator.Generate(genCtx, ai.NewGenerationRequest(destination, durationDays))
	if err != nil {
		s.fail(ctx, jobID, fmt.Sprintf("generating itinerary: %v", err))
		return
	}

	doc, err := parseDocument(raw)
	if err != nil {
		s.fail(ctx, jobID, fmt.Sprintf("invalid generator output: %v", err))
		return
	}

	if err := validateItinerary(doc.Itinerary); err != nil {
		s.fail(ctx, jobID, fmt.Sprintf("invalid generator output: %v", err))
		return
	}

	// Only the itinerary is trusted. Status, destination, durationDays,
	// timestamps, and error are authoritative server-side and recomputed
	// here rather than taken from the model's echo.
	itinerary, err := json.Marshal(doc.Itinerary)
	if err != nil {
		s.fail(ctx, jobID, fmt.Sprintf("encoding itinerary: %v", err))
		return
	}

	completedAt := time.Now().UTC()
	err = s.store.UpdateJobStatus(ctx, jobID, models.JobStatusCompleted,
		store.WithItinerary(itinerary),
		store.WithCompletedAt(completedAt))
	if err != nil {
		slog.Error("storing itinerary failed", "error", err, "job_id", jobID)
		s.fail(ctx, jobID, fmt.Sprintf("storing result: %v", err))
		return
	}

	_ = s.cache.SetJobStatus(ctx, jobID, models.JobStatusCompleted, statusCacheTTL)
}

// fail performs the terminal failed transition for a job. Errors here can only
// be logged: the original caller is long gone.
func (s *Service) fail(ctx context.Context, jobID uuid.UUID, msg string) {
	slog.Error("generation failed", "error", msg, "job_id", jobID)

	err := s.store.UpdateJobStatus(ctx, jobID, models.JobStatusFailed,
		store.WithErrorMessage(msg),
		store.WithCompletedAt(time.Now().UTC()))
	if err != nil {
		slog.Error("marking job failed", "error", err, "job_id", jobID)
	}

	_ = s.cache.SetJobStatus(ctx, jobID, models.JobStatusFailed, statusCacheTTL)
}
