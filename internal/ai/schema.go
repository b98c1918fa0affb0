package ai

import (
	"fmt"

	"github.com/voyago/tripsmith/pkg/models"
)

// NewGenerationRequest assembles the full generation request for a job:
// destination, duration, prompts, and the strict output schema.
func NewGenerationRequest(destination string, durationDays int) models.GenerationRequest {
	return models.GenerationRequest{
		Destination:  destination,
		DurationDays: durationDays,
		System:       SystemPrompt,
		Prompt:       UserPrompt(destination, durationDays),
		Schema:       ItineraryDocumentSchema(),
	}
}

// ItineraryDocumentSchema returns the JSON Schema the generator must conform
// to. It describes the full itinerary document; only the itinerary field of
// the model's output is ever trusted and persisted — the remaining top-level
// fields are recomputed server-side after validation.
func ItineraryDocumentSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"status":       map[string]any{"enum": []string{"completed", "processing", "failed"}},
			"destination":  map[string]any{"type": "string"},
			"durationDays": map[string]any{"type": "integer"},
			"createdAt":    map[string]any{"type": "string"},
			"completedAt":  map[string]any{"type": []string{"string", "null"}},
			"itinerary": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"properties": map[string]any{
						"day":   map[string]any{"type": "integer"},
						"theme": map[string]any{"type": "string"},
						"activities": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type":                 "object",
								"additionalProperties": false,
								"properties": map[string]any{
									"time":        map[string]any{"type": "string"},
									"description": map[string]any{"type": "string"},
									"location":    map[string]any{"type": "string"},
								},
								"required": []string{"time", "description", "location"},
							},
						},
					},
					"required": []string{"day", "theme", "activities"},
				},
			},
			"error": map[string]any{"type": []string{"string", "null"}},
		},
		"required": []string{"status", "destination", "durationDays", "createdAt", "completedAt", "itinerary", "error"},
	}
}

// SystemPrompt instructs the model to emit schema-conformant JSON only.
const SystemPrompt = `You are a travel planner. Produce a JSON object that STRICTLY conforms to the provided JSON schema.
No explanations. No markdown. No extra keys. Fill all required fields.
Use concise, realistic activities with local tips.`

// UserPrompt builds the per-request prompt for a destination and duration.
func UserPrompt(destination string, durationDays int) string {
	return fmt.Sprintf(`Destination: %s
Duration (days): %d

Requirements:
- Tailor daily themes to avoid repetition.
- Balance mornings/afternoons/evenings.
- Include short practical tips (tickets, reservations, transit hints).
- Respect the JSON schema exactly.`, destination, durationDays)
}
