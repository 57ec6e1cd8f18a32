package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/fincore-approval-engine/internal/domain/shared"
)

// Common validation errors
var (
	ErrInvalidAmount    = errors.New("entry amount must be positive")
	ErrInvalidDirection = errors.New("direction must be INCOME or EXPENSE")
	ErrEmptyAccountCode = errors.New("account code cannot be empty")
	ErrInvalidPeriod    = errors.New("fiscal period is out of range")
)

// Entry is a single directional accounting record tied to an approved
// business event.
type Entry struct {
	ID              uuid.UUID        `json:"id"`
	BusinessEventID uuid.UUID        `json:"business_event_id"`
	AccountCode     string           `json:"account_code"`
	AmountCents     int64            `json:"amount_cents"` // Stored in cents/minor units
	Direction       shared.Direction `json:"direction"`
	FiscalYear      int              `json:"fiscal_year"`
	FiscalMonth     int              `json:"fiscal_month"`
	IdempotencyKey  string           `json:"idempotency_key,omitempty"`
	CreatedBy       int64            `json:"created_by"`
	CreatedAt       time.Time        `json:"created_at"`
}

// NewEntry validates and creates a ledger entry for the given event
func NewEntry(
	businessEventID uuid.UUID,
	accountCode string,
	amountCents int64,
	direction shared.Direction,
	fiscalYear, fiscalMonth int,
	idempotencyKey string,
	createdBy int64,
) (*Entry, error) {
	if accountCode == "" {
		return nil, ErrEmptyAccountCode
	}
	if amountCents <= 0 {
		return nil, ErrInvalidAmount
	}
	if !direction.Valid() {
		return nil, ErrInvalidDirection
	}
	if fiscalYear < 2000 || fiscalMonth < 1 || fiscalMonth > 12 {
		return nil, ErrInvalidPeriod
	}

	return &Entry{
		ID:              uuid.New(),
		BusinessEventID: businessEventID,
		AccountCode:     accountCode,
		AmountCents:     amountCents,
		Direction:       direction,
		FiscalYear:      fiscalYear,
		FiscalMonth:     fiscalMonth,
		IdempotencyKey:  idempotencyKey,
		CreatedBy:       createdBy,
		CreatedAt:       time.Now(),
	}, nil
}
