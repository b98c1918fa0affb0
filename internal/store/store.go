package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/voyago/tripsmith/pkg/models"
)

var ErrNotFound = errors.New("resource not found")
var ErrDuplicateKey = errors.New("duplicate key violation")

// Store is the data access interface. All database operations go through here.
type Store interface {
	Ping(ctx context.Context) error

	CreateJob(ctx context.Context, job *models.Job) error
	GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error)
	UpdateJobStatus(ctx context.Context, id uuid.UUID, status string, opts ...JobUpdateOption) error
}

type jobUpdateParams struct {
	Itinerary    json.RawMessage
	ErrorMessage *string
	CompletedAt  *time.Time
}

type JobUpdateOption func(*jobUpdateParams)

func WithItinerary(raw json.RawMessage) JobUpdateOption {
	return func(p *jobUpdateParams) {
		p.Itinerary = raw
	}
}

func WithErrorMessage(msg string) JobUpdateOption {
	return func(p *jobUpdateParams) {
		p.ErrorMessage = &msg
	}
}

func WithCompletedAt(t time.Time) JobUpdateOption {
	return func(p *jobUpdateParams) {
		p.CompletedAt = &t
	}
}

// resolveUpdate applies the options and fills in defaults. Only terminal
// statuses are valid update targets: jobs are inserted as processing and
// mutated exactly once.
func resolveUpdate(status string, opts []JobUpdateOption) (*jobUpdateParams, error) {
	if status != models.JobStatusCompleted && status != models.JobStatusFailed {
		return nil, errors.New("job status can only be updated to completed or failed")
	}
	params := &jobUpdateParams{}
	for _, opt := range opts {
		opt(params)
	}
	if params.CompletedAt == nil {
		now := time.Now().UTC()
		params.CompletedAt = &now
	}
	return params, nil
}
