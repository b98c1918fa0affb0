package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	mw "github.com/voyago/tripsmith/internal/api/middleware"
	"github.com/voyago/tripsmith/internal/api/response"
)

// Dependencies holds all handler dependencies for the router.
type Dependencies struct {
	HealthHandler          http.HandlerFunc
	CreateItineraryHandler http.HandlerFunc
	ItineraryStatusHandler http.HandlerFunc
}

// NewRouter builds the Chi router with middleware stack and all routes.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.Logger)
	r.Use(mw.Recovery)
	r.Use(mw.CORS)

	r.Get("/api/v1/health", orNotImplemented(deps.HealthHandler))

	r.Post("/api/v1/itineraries", orNotImplemented(deps.CreateItineraryHandler))
	r.Get("/api/v1/itineraries/{jobID}", orNotImplemented(deps.ItineraryStatusHandler))

	return r
}

// orNotImplemented returns the handler if non-nil, or a 501 placeholder.
func orNotImplemented(h http.HandlerFunc) http.HandlerFunc {
	if h != nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotImplemented, "NOT_IMPLEMENTED", "Endpoint not yet implemented", nil)
	}
}
