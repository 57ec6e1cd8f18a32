package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fincore-approval-engine/internal/domain/budget"
	"github.com/fincore-approval-engine/internal/domain/event"
	"github.com/fincore-approval-engine/internal/domain/history"
	"github.com/fincore-approval-engine/internal/domain/ledger"
	"github.com/fincore-approval-engine/internal/domain/outbox"
	"github.com/fincore-approval-engine/internal/domain/shared"
)

// PostingServiceImpl implements the PostingService interface
type PostingServiceImpl struct {
	txRunner    TxRunner
	eventRepo   event.Repository
	ledgerRepo  ledger.Repository
	budgetRepo  budget.Repository
	historyRepo history.Repository
	outboxRepo  outbox.Repository
	logger      *slog.Logger
}

// NewPostingService creates a new posting service
func NewPostingService(
	logger *slog.Logger,
	txRunner TxRunner,
	eventRepo event.Repository,
	ledgerRepo ledger.Repository,
	budgetRepo budget.Repository,
	historyRepo history.Repository,
	outboxRepo outbox.Repository,
) PostingService {
	return &PostingServiceImpl{
		txRunner:    txRunner,
		eventRepo:   eventRepo,
		ledgerRepo:  ledgerRepo,
		budgetRepo:  budgetRepo,
		historyRepo: historyRepo,
		outboxRepo:  outboxRepo,
		logger:      logger,
	}
}

// Post creates a ledger entry against an approved event. A replayed
// idempotency key returns the original entry without touching state. The
// first posting moves the event APPROVED -> IN_PROGRESS, and EXPENSE
// postings consume the matching budget row.
func (s *PostingServiceImpl) Post(ctx context.Context, eventID uuid.UUID, input *PostingInput, actor shared.Actor) (*PostingResult, error) {
	if input.IdempotencyKey != "" {
		existing, err := s.ledgerRepo.GetByIdempotencyKey(ctx, input.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			evt, err := s.eventRepo.GetByID(ctx, existing.BusinessEventID)
			if err != nil {
				return nil, err
			}
			s.logger.Info("Replayed ledger posting via idempotency key",
				"idempotency_key", input.IdempotencyKey,
				"entry_id", existing.ID.String(),
			)
			return &PostingResult{Entry: existing, EventStatus: evt.Status, Replayed: true}, nil
		}
	}

	entry, err := ledger.NewEntry(
		eventID,
		input.AccountCode,
		input.AmountCents,
		input.Direction,
		input.FiscalYear,
		input.FiscalMonth,
		input.IdempotencyKey,
		actor.UserID,
	)
	if err != nil {
		return nil, err
	}

	var result PostingResult
	err = s.txRunner.ExecuteTx(ctx, func(tx pgx.Tx) error {
		evt, err := s.eventRepo.WithTx(tx).LockForUpdate(ctx, eventID)
		if err != nil {
			return err
		}

		if !evt.Status.Postable() {
			return event.ErrInvalidStatus{EventID: evt.ID, Status: evt.Status}
		}

		if err := s.ledgerRepo.WithTx(tx).Create(ctx, entry); err != nil {
			return err
		}

		if input.Direction == shared.DirectionExpense {
			err := s.budgetRepo.WithTx(tx).Consume(ctx, evt.DepartmentID, input.FiscalYear, input.FiscalMonth, input.AmountCents)
			if err != nil {
				var notFoundErr budget.ErrBudgetNotFound
				if !errors.As(err, &notFoundErr) {
					return err
				}
				// No budget row for the period: the posting still lands
				s.logger.Warn("No budget row for expense posting, skipping consumption",
					"business_event_id", eventID.String(),
					"department_id", evt.DepartmentID,
					"fiscal_year", input.FiscalYear,
					"fiscal_month", input.FiscalMonth,
				)
			}
		}

		if evt.Status == shared.EventStatusApproved {
			if err := recordStatusChange(ctx, tx, s.eventRepo, s.historyRepo, s.outboxRepo, evt, shared.EventStatusInProgress, actor, "first ledger entry posted", input.CorrelationID); err != nil {
				return err
			}
		}

		result = PostingResult{Entry: entry, EventStatus: evt.Status}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Ledger entry posted",
		"business_event_id", eventID.String(),
		"entry_id", entry.ID.String(),
		"direction", string(input.Direction),
		"amount_cents", input.AmountCents,
		"event_status", string(result.EventStatus),
	)
	return &result, nil
}

// ListEntries returns all entries posted against one event, oldest first
func (s *PostingServiceImpl) ListEntries(ctx context.Context, eventID uuid.UUID) ([]*ledger.Entry, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.ledgerRepo.GetByEventID(ctx, eventID)
}
