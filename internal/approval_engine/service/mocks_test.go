package service

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/fincore-approval-engine/internal/domain/approval"
	"github.com/fincore-approval-engine/internal/domain/budget"
	"github.com/fincore-approval-engine/internal/domain/event"
	"github.com/fincore-approval-engine/internal/domain/history"
	"github.com/fincore-approval-engine/internal/domain/ledger"
	"github.com/fincore-approval-engine/internal/domain/outbox"
	"github.com/fincore-approval-engine/internal/domain/refdata"
	"github.com/fincore-approval-engine/internal/domain/shared"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fakeTxRunner runs the transaction function directly with a nil tx; the
// mock repositories return themselves from WithTx so the tx value is never
// dereferenced.
type fakeTxRunner struct {
	err error
}

func (r *fakeTxRunner) ExecuteTx(_ context.Context, fn func(tx pgx.Tx) error) error {
	if r.err != nil {
		return r.err
	}
	return fn(nil)
}

type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Create(ctx context.Context, evt *event.BusinessEvent) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockEventRepository) GetByID(ctx context.Context, id uuid.UUID) (*event.BusinessEvent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*event.BusinessEvent), args.Error(1)
}

func (m *MockEventRepository) LockForUpdate(ctx context.Context, id uuid.UUID) (*event.BusinessEvent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*event.BusinessEvent), args.Error(1)
}

func (m *MockEventRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status shared.EventStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockEventRepository) NextProjectCodeSeq(ctx context.Context, codePrefix string) (int, error) {
	args := m.Called(ctx, codePrefix)
	return args.Int(0), args.Error(1)
}

func (m *MockEventRepository) WithTx(_ pgx.Tx) event.Repository {
	return m
}

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) CreateBatch(ctx context.Context, tasks []*approval.Task) error {
	args := m.Called(ctx, tasks)
	return args.Error(0)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*approval.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*approval.Task), args.Error(1)
}

func (m *MockTaskRepository) LockForUpdate(ctx context.Context, id uuid.UUID) (*approval.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*approval.Task), args.Error(1)
}

func (m *MockTaskRepository) Decide(ctx context.Context, id uuid.UUID, status shared.TaskStatus, remarks string) error {
	args := m.Called(ctx, id, status, remarks)
	return args.Error(0)
}

func (m *MockTaskRepository) NextPending(ctx context.Context, businessEventID uuid.UUID, afterLevel int) (*approval.Task, error) {
	args := m.Called(ctx, businessEventID, afterLevel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*approval.Task), args.Error(1)
}

func (m *MockTaskRepository) GetByEventID(ctx context.Context, businessEventID uuid.UUID) ([]*approval.Task, error) {
	args := m.Called(ctx, businessEventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*approval.Task), args.Error(1)
}

func (m *MockTaskRepository) WithTx(_ pgx.Tx) approval.TaskRepository {
	return m
}

type MockRuleRepository struct {
	mock.Mock
}

func (m *MockRuleRepository) FindActive(ctx context.Context, eventType shared.EventType, departmentID int64) ([]*approval.Rule, error) {
	args := m.Called(ctx, eventType, departmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*approval.Rule), args.Error(1)
}

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Create(ctx context.Context, entry *ledger.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) GetByID(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Entry), args.Error(1)
}

func (m *MockLedgerRepository) GetByIdempotencyKey(ctx context.Context, idempotencyKey string) (*ledger.Entry, error) {
	args := m.Called(ctx, idempotencyKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Entry), args.Error(1)
}

func (m *MockLedgerRepository) GetByEventID(ctx context.Context, businessEventID uuid.UUID) ([]*ledger.Entry, error) {
	args := m.Called(ctx, businessEventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Entry), args.Error(1)
}

func (m *MockLedgerRepository) CountByEventID(ctx context.Context, businessEventID uuid.UUID) (int64, error) {
	args := m.Called(ctx, businessEventID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) WithTx(_ pgx.Tx) ledger.Repository {
	return m
}

type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) Get(ctx context.Context, departmentID int64, year, month int) (*budget.Budget, error) {
	args := m.Called(ctx, departmentID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*budget.Budget), args.Error(1)
}

func (m *MockBudgetRepository) Consume(ctx context.Context, departmentID int64, year, month int, amountCents int64) error {
	args := m.Called(ctx, departmentID, year, month, amountCents)
	return args.Error(0)
}

func (m *MockBudgetRepository) WithTx(_ pgx.Tx) budget.Repository {
	return m
}

type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) Append(ctx context.Context, entry *history.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockHistoryRepository) GetByEventID(ctx context.Context, businessEventID uuid.UUID) ([]*history.Entry, error) {
	args := m.Called(ctx, businessEventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*history.Entry), args.Error(1)
}

func (m *MockHistoryRepository) WithTx(_ pgx.Tx) history.Repository {
	return m
}

type MockOutboxRepository struct {
	mock.Mock
}

func (m *MockOutboxRepository) Create(ctx context.Context, message *outbox.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockOutboxRepository) GetPending(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *MockOutboxRepository) UpdateStatus(ctx context.Context, id int64, status shared.OutboxStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOutboxRepository) IncrementAttempts(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOutboxRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOutboxRepository) WithTx(_ pgx.Tx) outbox.Repository {
	return m
}

type MockRefdataProvider struct {
	mock.Mock
}

func (m *MockRefdataProvider) GetDepartment(ctx context.Context, id int64) (*refdata.Department, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*refdata.Department), args.Error(1)
}

func (m *MockRefdataProvider) GetCustomer(ctx context.Context, id int64) (*refdata.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*refdata.Customer), args.Error(1)
}

func (m *MockRefdataProvider) GetAccountSubjectByCode(ctx context.Context, code string) (*refdata.AccountSubject, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*refdata.AccountSubject), args.Error(1)
}

var (
	_ event.Repository        = (*MockEventRepository)(nil)
	_ approval.TaskRepository = (*MockTaskRepository)(nil)
	_ approval.RuleRepository = (*MockRuleRepository)(nil)
	_ ledger.Repository       = (*MockLedgerRepository)(nil)
	_ budget.Repository       = (*MockBudgetRepository)(nil)
	_ history.Repository      = (*MockHistoryRepository)(nil)
	_ outbox.Repository       = (*MockOutboxRepository)(nil)
	_ refdata.Provider        = (*MockRefdataProvider)(nil)
)
