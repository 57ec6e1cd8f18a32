package event

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fincore-approval-engine/internal/domain/shared"
)

// Repository defines business event persistence operations
type Repository interface {
	Create(ctx context.Context, evt *BusinessEvent) error
	GetByID(ctx context.Context, id uuid.UUID) (*BusinessEvent, error)

	// LockForUpdate acquires a row lock on the event for the duration of
	// the surrounding transaction. Status transitions must go through it.
	LockForUpdate(ctx context.Context, id uuid.UUID) (*BusinessEvent, error)

	// UpdateStatus moves the event to the given status
	UpdateStatus(ctx context.Context, id uuid.UUID, status shared.EventStatus) error

	// NextProjectCodeSeq returns the next unused sequence number for the
	// given code prefix and date segment (MAX of existing suffixes + 1).
	NextProjectCodeSeq(ctx context.Context, codePrefix string) (int, error)

	WithTx(tx pgx.Tx) Repository
}

// ErrEventNotFound indicates a missing business event
type ErrEventNotFound struct {
	EventID uuid.UUID
}

func (e ErrEventNotFound) Error() string {
	return "business event not found: " + e.EventID.String()
}

// ErrInvalidStatus indicates the event is in the wrong status for the
// requested operation (the Precondition failure of the error taxonomy)
type ErrInvalidStatus struct {
	EventID uuid.UUID
	Status  shared.EventStatus
}

func (e ErrInvalidStatus) Error() string {
	return "business event " + e.EventID.String() + " has status " + string(e.Status) + " which does not allow this operation"
}

// ErrDuplicateProjectCode indicates a project code uniqueness violation.
// Submission retries code generation when it sees this error.
type ErrDuplicateProjectCode struct {
	ProjectCode string
}

func (e ErrDuplicateProjectCode) Error() string {
	return "project code already exists: " + e.ProjectCode
}
