package event

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/fincore-approval-engine/internal/domain/shared"
)

// Common validation errors
var (
	ErrInvalidEventType   = errors.New("unknown event type")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrEmptyProjectName   = errors.New("project name cannot be empty")
	ErrMissingDepartment  = errors.New("department is required")
	ErrMissingSubmitter   = errors.New("submitter is required")
)

// BusinessEvent is a unit of business activity that must pass through an
// approval chain before any financial posting happens against it.
type BusinessEvent struct {
	ID           uuid.UUID          `json:"id"`
	EventType    shared.EventType   `json:"event_type"`
	ProjectName  string             `json:"project_name"`
	ProjectCode  string             `json:"project_code"`
	AmountCents  int64              `json:"amount_cents"` // Stored in cents/minor units
	EventDate    time.Time          `json:"event_date"`
	DepartmentID int64              `json:"department_id"`
	CustomerID   *int64             `json:"customer_id,omitempty"`
	CreatedBy    int64              `json:"created_by"`
	Status       shared.EventStatus `json:"status"`
	Description  string             `json:"description,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// NewBusinessEvent creates a not-yet-submitted event in the NEW status.
// The project code is assigned later, during submission.
func NewBusinessEvent(
	eventType shared.EventType,
	projectName string,
	amountCents int64,
	eventDate time.Time,
	departmentID int64,
	customerID *int64,
	createdBy int64,
	description string,
) (*BusinessEvent, error) {
	if !eventType.Valid() {
		return nil, ErrInvalidEventType
	}
	if projectName == "" {
		return nil, ErrEmptyProjectName
	}
	if amountCents <= 0 {
		return nil, ErrInvalidAmount
	}
	if departmentID <= 0 {
		return nil, ErrMissingDepartment
	}
	if createdBy <= 0 {
		return nil, ErrMissingSubmitter
	}

	now := time.Now()
	return &BusinessEvent{
		ID:           uuid.New(),
		EventType:    eventType,
		ProjectName:  projectName,
		AmountCents:  amountCents,
		EventDate:    eventDate,
		DepartmentID: departmentID,
		CustomerID:   customerID,
		CreatedBy:    createdBy,
		Status:       shared.EventStatusNew,
		Description:  description,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
