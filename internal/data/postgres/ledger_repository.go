package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fincore-approval-engine/internal/domain/ledger"
	"github.com/fincore-approval-engine/internal/platform/persistence"
)

// LedgerRepository implements the ledger.Repository interface for PostgreSQL
type LedgerRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewLedgerRepository creates a new PostgreSQL ledger entry repository
func NewLedgerRepository(logger *slog.Logger, db *persistence.PostgresDB) ledger.Repository {
	return &LedgerRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction for atomic operations
func (r *LedgerRepository) WithTx(tx pgx.Tx) ledger.Repository {
	return &LedgerRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a new ledger entry. A NULLIF guard keeps an empty
// idempotency key out of the unique index so unkeyed postings never
// collide with each other.
func (r *LedgerRepository) Create(ctx context.Context, entry *ledger.Entry) error {
	query := `
		INSERT INTO ledger_entries (id, business_event_id, account_code, amount_cents, direction, fiscal_year, fiscal_month, idempotency_key, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10)
	`

	_, err := r.querier.Exec(ctx, query,
		entry.ID,
		entry.BusinessEventID,
		entry.AccountCode,
		entry.AmountCents,
		entry.Direction,
		entry.FiscalYear,
		entry.FiscalMonth,
		entry.IdempotencyKey,
		entry.CreatedBy,
		entry.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create ledger entry",
			"business_event_id", entry.BusinessEventID.String(),
			"error", err,
		)
		return fmt.Errorf("failed to create ledger entry: %w", err)
	}

	return nil
}

const entryColumns = `id, business_event_id, account_code, amount_cents, direction, fiscal_year, fiscal_month, COALESCE(idempotency_key, ''), created_by, created_at`

func scanEntry(row pgx.Row) (*ledger.Entry, error) {
	var entry ledger.Entry
	err := row.Scan(
		&entry.ID,
		&entry.BusinessEventID,
		&entry.AccountCode,
		&entry.AmountCents,
		&entry.Direction,
		&entry.FiscalYear,
		&entry.FiscalMonth,
		&entry.IdempotencyKey,
		&entry.CreatedBy,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// GetByID retrieves a ledger entry by its ID
func (r *LedgerRepository) GetByID(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE id = $1
	`

	entry, err := scanEntry(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ledger.ErrEntryNotFound{EntryID: id}
		}
		r.logger.Error("Failed to get ledger entry", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get ledger entry: %w", err)
	}

	return entry, nil
}

// GetByIdempotencyKey returns the entry created under the key, or nil when
// the key has not been used yet
func (r *LedgerRepository) GetByIdempotencyKey(ctx context.Context, idempotencyKey string) (*ledger.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE idempotency_key = $1
	`

	entry, err := scanEntry(r.querier.QueryRow(ctx, query, idempotencyKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Key unused
		}
		r.logger.Error("Failed to get ledger entry by idempotency key", "error", err)
		return nil, fmt.Errorf("failed to get ledger entry by idempotency key: %w", err)
	}

	return entry, nil
}

// GetByEventID returns all entries posted against one event, oldest first
func (r *LedgerRepository) GetByEventID(ctx context.Context, businessEventID uuid.UUID) ([]*ledger.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE business_event_id = $1
		ORDER BY created_at
	`

	rows, err := r.querier.Query(ctx, query, businessEventID)
	if err != nil {
		r.logger.Error("Failed to get ledger entries for event", "business_event_id", businessEventID.String(), "error", err)
		return nil, fmt.Errorf("failed to get ledger entries for event: %w", err)
	}
	defer rows.Close()

	var entries []*ledger.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			r.logger.Error("Failed to scan ledger entry", "error", err)
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over ledger entries", "error", err)
		return nil, fmt.Errorf("error iterating over ledger entries: %w", err)
	}

	return entries, nil
}

// CountByEventID returns how many entries exist for the event. Completion
// uses it to require at least one posting.
func (r *LedgerRepository) CountByEventID(ctx context.Context, businessEventID uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM ledger_entries
		WHERE business_event_id = $1
	`

	var count int64
	err := r.querier.QueryRow(ctx, query, businessEventID).Scan(&count)
	if err != nil {
		r.logger.Error("Failed to count ledger entries for event", "business_event_id", businessEventID.String(), "error", err)
		return 0, fmt.Errorf("failed to count ledger entries for event: %w", err)
	}

	return count, nil
}
