package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository stores projected status changes. Upsert keyed on the event
// and occurrence time keeps redelivered messages from duplicating records.
type Repository interface {
	Upsert(ctx context.Context, record *Record) error
	GetByEventID(ctx context.Context, businessEventID uuid.UUID) ([]*Record, error)
	GetByTimeRange(ctx context.Context, startTime, endTime time.Time, limit, offset int) ([]*Record, error)
}
