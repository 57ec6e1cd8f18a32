// Package postgres provides PostgreSQL implementations of the domain
// repositories. It handles all database operations while maintaining
// transaction safety and proper error handling for the approval engine.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fincore-approval-engine/internal/domain/event"
	"github.com/fincore-approval-engine/internal/domain/shared"
	"github.com/fincore-approval-engine/internal/platform/persistence"
)

// ProjectCodeConstraint is the unique index that backs project code
// generation. Submission retries when an insert trips it.
const ProjectCodeConstraint = "business_events_project_code_key"

// EventRepository implements the event.Repository interface for PostgreSQL
type EventRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewEventRepository creates a new PostgreSQL business event repository
func NewEventRepository(logger *slog.Logger, db *persistence.PostgresDB) event.Repository {
	return &EventRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction, allowing for atomic
// operations across multiple repository calls.
func (r *EventRepository) WithTx(tx pgx.Tx) event.Repository {
	return &EventRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a new business event. A project code collision surfaces as
// ErrDuplicateProjectCode so the caller can regenerate and retry.
func (r *EventRepository) Create(ctx context.Context, evt *event.BusinessEvent) error {
	query := `
		INSERT INTO business_events (id, event_type, project_name, project_code, amount_cents, event_date, department_id, customer_id, created_by, status, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.querier.Exec(ctx, query,
		evt.ID,
		evt.EventType,
		evt.ProjectName,
		evt.ProjectCode,
		evt.AmountCents,
		evt.EventDate,
		evt.DepartmentID,
		evt.CustomerID,
		evt.CreatedBy,
		evt.Status,
		evt.Description,
		evt.CreatedAt,
		evt.UpdatedAt,
	)
	if err != nil {
		if persistence.IsUniqueViolation(err, ProjectCodeConstraint) {
			return event.ErrDuplicateProjectCode{ProjectCode: evt.ProjectCode}
		}
		r.logger.Error("Failed to create business event", "error", err)
		return fmt.Errorf("failed to create business event: %w", err)
	}

	return nil
}

const eventColumns = `id, event_type, project_name, project_code, amount_cents, event_date, department_id, customer_id, created_by, status, description, created_at, updated_at`

func scanEvent(row pgx.Row) (*event.BusinessEvent, error) {
	var evt event.BusinessEvent
	err := row.Scan(
		&evt.ID,
		&evt.EventType,
		&evt.ProjectName,
		&evt.ProjectCode,
		&evt.AmountCents,
		&evt.EventDate,
		&evt.DepartmentID,
		&evt.CustomerID,
		&evt.CreatedBy,
		&evt.Status,
		&evt.Description,
		&evt.CreatedAt,
		&evt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &evt, nil
}

// GetByID retrieves a business event by its ID
func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*event.BusinessEvent, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM business_events
		WHERE id = $1
	`

	evt, err := scanEvent(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, event.ErrEventNotFound{EventID: id}
		}
		r.logger.Error("Failed to get business event", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get business event: %w", err)
	}

	return evt, nil
}

// LockForUpdate obtains a row lock on the event and returns its current
// state. Must run inside a transaction; concurrent transitions against the
// same event serialize here.
func (r *EventRepository) LockForUpdate(ctx context.Context, id uuid.UUID) (*event.BusinessEvent, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM business_events
		WHERE id = $1
		FOR UPDATE
	`

	evt, err := scanEvent(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, event.ErrEventNotFound{EventID: id}
		}
		r.logger.Error("Failed to lock business event for update", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to lock business event for update: %w", err)
	}

	return evt, nil
}

// UpdateStatus moves the event to the given status
func (r *EventRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status shared.EventStatus) error {
	query := `
		UPDATE business_events
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.querier.Exec(ctx, query, status, id)
	if err != nil {
		r.logger.Error("Failed to update business event status", "id", id.String(), "status", string(status), "error", err)
		return fmt.Errorf("failed to update business event status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return event.ErrEventNotFound{EventID: id}
	}

	return nil
}

// NextProjectCodeSeq computes MAX(numeric suffix)+1 over codes with the
// given prefix (e.g. "XS-20230615-"). The unique index on project_code is
// what actually defends against two submissions computing the same value.
func (r *EventRepository) NextProjectCodeSeq(ctx context.Context, codePrefix string) (int, error) {
	query := `
		SELECT COALESCE(MAX(RIGHT(project_code, 4)::int), 0) + 1
		FROM business_events
		WHERE project_code LIKE $1
	`

	var next int
	err := r.querier.QueryRow(ctx, query, codePrefix+"%").Scan(&next)
	if err != nil {
		r.logger.Error("Failed to compute next project code sequence", "prefix", codePrefix, "error", err)
		return 0, fmt.Errorf("failed to compute next project code sequence: %w", err)
	}

	return next, nil
}
