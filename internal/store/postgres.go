package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/voyago/tripsmith/pkg/models"
)

// PostgresStore implements the Store interface using pgx/v5.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Ping checks database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) CreateJob(ctx context.Context, job *models.Job) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO itineraries (id, status, destination, duration_days, created_at, completed_at, itinerary_json, error_message)
		 VALUES ($1, $2, $3, $4, $5, NULL, NULL, NULL)`,
		job.ID, job.Status, job.Destination, job.DurationDays, job.CreatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	var (
		j         models.Job
		itinerary *string
	)
	err := s.pool.QueryRow(ctx,
		`SELECT id, status, destination, duration_days, created_at, completed_at, itinerary_json, error_message
		 FROM itineraries WHERE id = $1`, id,
	).Scan(&j.ID, &j.Status, &j.Destination, &j.DurationDays, &j.CreatedAt,
		&j.CompletedAt, &itinerary, &j.ErrorMessage)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	if itinerary != nil {
		j.Itinerary = json.RawMessage(*itinerary)
	}
	return &j, nil
}

// UpdateJobStatus performs the single terminal transition for a job. The
// update is guarded on status = 'processing': a repeated terminal write for
// the same job finds no matching row and is a no-op, so the stored record
// always reflects the one attempt that actually resolved the job.
func (s *PostgresStore) UpdateJobStatus(ctx context.Context, id uuid.UUID, status string, opts ...JobUpdateOption) error {
	params, err := resolveUpdate(status, opts)
	if err != nil {
		return err
	}

	var itinerary *string
	if params.Itinerary != nil {
		s := string(params.Itinerary)
		itinerary = &s
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE itineraries
		 SET status = $2, completed_at = $3, itinerary_json = $4, error_message = $5
		 WHERE id = $1 AND status = 'processing'`,
		id, status, *params.CompletedAt, itinerary, params.ErrorMessage)
	if err != nil {
		return fmt.Errorf("update job status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var current string
		err := s.pool.QueryRow(ctx, `SELECT status FROM itineraries WHERE id = $1`, id).Scan(&current)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get job status: %w", err)
		}
		// Already terminal. The first write won; treat the repeat as settled.
		return nil
	}
	return nil
}

// isDuplicateKeyError checks if a pgx error is a unique constraint violation.
func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}

var _ Store = (*PostgresStore)(nil)
