package itinerary

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/voyago/tripsmith/pkg/models"
)

// document is the generator's output shape. The generator echoes back the
// server-controlled top-level fields; they are decoded here for structural
// checking but never persisted.
type document struct {
	Status       string           `json:"status"`
	Destination  string           `json:"destination"`
	DurationDays int              `json:"durationDays"`
	CreatedAt    string           `json:"createdAt"`
	CompletedAt  *string          `json:"completedAt"`
	Itinerary    []models.DayPlan `json:"itinerary"`
	Error        *string          `json:"error"`
}

// parseDocument strictly decodes the generator's raw JSON content. Unknown
// fields anywhere in the document are rejected: the model is held to the
// schema it was given, not trusted to extend it.
func parseDocument(raw []byte) (*document, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("model did not return valid JSON: %w", err)
	}
	return &doc, nil
}

// validateItinerary applies the semantic checks a structurally valid document
// must still pass before its itinerary is persisted.
func validateItinerary(days []models.DayPlan) error {
	if days == nil {
		return errors.New("itinerary is missing")
	}
	if len(days) == 0 {
		return errors.New("itinerary is empty")
	}
	for i, d := range days {
		if d.Day < 1 {
			return fmt.Errorf("itinerary[%d]: day must be a positive integer, got %d", i, d.Day)
		}
		if d.Theme == "" {
			return fmt.Errorf("itinerary[%d]: theme is required", i)
		}
		if d.Activities == nil {
			return fmt.Errorf("itinerary[%d]: activities is missing", i)
		}
		for j, a := range d.Activities {
			if a.Time == "" || a.Description == "" || a.Location == "" {
				return fmt.Errorf("itinerary[%d].activities[%d]: time, description and location are required", i, j)
			}
		}
	}
	return nil
}
