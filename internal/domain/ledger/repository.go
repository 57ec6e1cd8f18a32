package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository manages ledger entry persistence
type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	GetByID(ctx context.Context, id uuid.UUID) (*Entry, error)

	// GetByIdempotencyKey returns the entry created under the key, or nil
	// when the key has not been used. Enables safe retry of post().
	GetByIdempotencyKey(ctx context.Context, idempotencyKey string) (*Entry, error)

	GetByEventID(ctx context.Context, businessEventID uuid.UUID) ([]*Entry, error)
	CountByEventID(ctx context.Context, businessEventID uuid.UUID) (int64, error)

	WithTx(tx pgx.Tx) Repository
}

// ErrEntryNotFound indicates a missing ledger entry
type ErrEntryNotFound struct {
	EntryID uuid.UUID
}

func (e ErrEntryNotFound) Error() string {
	return "ledger entry not found: " + e.EntryID.String()
}
