package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/voyago/tripsmith/internal/api/response"
	"github.com/voyago/tripsmith/internal/itinerary"
	"github.com/voyago/tripsmith/internal/store"
	"github.com/voyago/tripsmith/pkg/models"
)

// JobService defines the lifecycle operations the handlers depend on.
type JobService interface {
	CreateJob(ctx context.Context, req itinerary.CreateRequest) (*models.Job, error)
	GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error)
}

// NewCreateItineraryHandler returns an http.HandlerFunc for POST /api/v1/itineraries.
// Accepts the job and returns its id; generation continues in the background.
func NewCreateItineraryHandler(svc JobService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Destination  string      `json:"destination"`
			DurationDays json.Number `json:"durationDays"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}

		days, err := req.DurationDays.Int64()
		if err != nil {
			response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR",
				"durationDays must be an integer between 1 and 30", nil)
			return
		}

		job, err := svc.CreateJob(r.Context(), itinerary.CreateRequest{
			Destination:  req.Destination,
			DurationDays: int(days),
		})
		if err != nil {
			var vErr *itinerary.ValidationError
			if errors.As(err, &vErr) {
				response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", vErr.Message,
					map[string]string{"field": vErr.Field})
				return
			}
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"An unexpected error occurred", nil)
			return
		}

		response.Accepted(w, map[string]string{"jobId": job.ID.String()})
	}
}

// NewItineraryStatusHandler returns an http.HandlerFunc for GET /api/v1/itineraries/{jobID}.
// Returns a verbatim snapshot of the stored job record.
func NewItineraryStatusHandler(svc JobService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobIDStr := chi.URLParam(r, "jobID")
		if jobIDStr == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_JOB_ID", "jobId required", nil)
			return
		}

		jobID, err := uuid.Parse(jobIDStr)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_JOB_ID", "Invalid job ID format", nil)
			return
		}

		job, err := svc.GetJob(r.Context(), jobID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				response.Error(w, http.StatusNotFound, "NOT_FOUND", "Not found", nil)
				return
			}
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"An unexpected error occurred", nil)
			return
		}

		response.JSON(w, newStatusResponse(job))
	}
}

type statusResponse struct {
	Status       string          `json:"status"`
	Destination  string          `json:"destination"`
	DurationDays int             `json:"durationDays"`
	CreatedAt    string          `json:"createdAt"`
	CompletedAt  *string         `json:"completedAt"`
	Itinerary    json.RawMessage `json:"itinerary"`
	Error        *string         `json:"error"`
}

func newStatusResponse(job *models.Job) statusResponse {
	resp := statusResponse{
		Status:       job.Status,
		Destination:  job.Destination,
		DurationDays: job.DurationDays,
		CreatedAt:    job.CreatedAt.UTC().Format(time.RFC3339),
		Itinerary:    job.Itinerary,
		Error:        job.ErrorMessage,
	}
	if job.CompletedAt != nil {
		completed := job.CompletedAt.UTC().Format(time.RFC3339)
		resp.CompletedAt = &completed
	}
	return resp
}
