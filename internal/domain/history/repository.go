package history

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository persists the append-only status history. There is no update
// or delete: rows are only ever appended and read back for audit.
type Repository interface {
	Append(ctx context.Context, entry *Entry) error
	GetByEventID(ctx context.Context, businessEventID uuid.UUID) ([]*Entry, error)
	WithTx(tx pgx.Tx) Repository
}
