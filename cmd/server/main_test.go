package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/voyago/tripsmith/internal/store"
	"github.com/voyago/tripsmith/pkg/models"
)

type fakeStore struct {
	pingErr error
}

func (s *fakeStore) Ping(_ context.Context) error                        { return s.pingErr }
func (s *fakeStore) CreateJob(_ context.Context, _ *models.Job) error    { return nil }
func (s *fakeStore) GetJob(_ context.Context, _ uuid.UUID) (*models.Job, error) {
	return nil, store.ErrNotFound
}
func (s *fakeStore) UpdateJobStatus(_ context.Context, _ uuid.UUID, _ string, _ ...store.JobUpdateOption) error {
	return nil
}

type fakeCache struct {
	pingErr error
}

func (c *fakeCache) Ping(_ context.Context) error { return c.pingErr }
func (c *fakeCache) Set(_ context.Context, _ string, _ []byte, _ time.Duration) error { return nil }
func (c *fakeCache) Get(_ context.Context, _ string) ([]byte, bool, error) {
	return nil, false, nil
}
func (c *fakeCache) Delete(_ context.Context, _ string) error { return nil }
func (c *fakeCache) SetJobStatus(_ context.Context, _ uuid.UUID, _ string, _ time.Duration) error {
	return nil
}
func (c *fakeCache) GetJobStatus(_ context.Context, _ uuid.UUID) (string, bool, error) {
	return "", false, nil
}

func TestHealthHandler_OK(t *testing.T) {
	handler := healthHandler(&fakeStore{}, &fakeCache{})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp struct {
		Status   string            `json:"status"`
		Services map[string]string `json:"services"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("expected status ok, got %s", resp.Status)
	}
	if resp.Services["database"] != "ok" || resp.Services["cache"] != "ok" {
		t.Errorf("expected all services ok, got %v", resp.Services)
	}
}

func TestHealthHandler_DatabaseDegraded(t *testing.T) {
	handler := healthHandler(&fakeStore{pingErr: errors.New("connection refused")}, &fakeCache{})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}

	var envelope struct {
		Error struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if envelope.Error.Code != "DEGRADED" {
		t.Errorf("expected DEGRADED, got %s", envelope.Error.Code)
	}
	if envelope.Error.Details["database"] != "degraded" {
		t.Errorf("expected database degraded, got %v", envelope.Error.Details)
	}
	if envelope.Error.Details["cache"] != "ok" {
		t.Errorf("expected cache ok, got %v", envelope.Error.Details)
	}
}

func TestHealthHandler_CacheDegraded(t *testing.T) {
	handler := healthHandler(&fakeStore{}, &fakeCache{pingErr: errors.New("redis down")})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
}
