package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)

// Job tracks an async itinerary generation request. The API returns a jobId on
// POST /api/v1/itineraries; the client polls GET /api/v1/itineraries/{jobID}
// until status is completed or failed.
//
// Exactly one of Itinerary/ErrorMessage is set once the job reaches a terminal
// state: completed jobs carry the itinerary document, failed jobs carry the
// error message. While processing, both are nil and CompletedAt is nil.
type Job struct {
	ID           uuid.UUID       `db:"id"             json:"id"`
	Status       string          `db:"status"         json:"status"`
	Destination  string          `db:"destination"    json:"destination"`
	DurationDays int             `db:"duration_days"  json:"durationDays"`
	CreatedAt    time.Time       `db:"created_at"     json:"createdAt"`
	CompletedAt  *time.Time      `db:"completed_at"   json:"completedAt,omitempty"`
	Itinerary    json.RawMessage `db:"itinerary_json" json:"itinerary,omitempty"`
	ErrorMessage *string         `db:"error_message"  json:"error,omitempty"`
}

// Terminal reports whether the job has reached completed or failed.
func (j *Job) Terminal() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusFailed
}
