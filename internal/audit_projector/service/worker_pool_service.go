package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/fincore-approval-engine/internal/domain/shared"
)

// WorkerPoolProjectionService fans projection work out to a bounded pool
// while keeping the per-message result semantics of the base service.
type WorkerPoolProjectionService struct {
	baseService ProjectionService
	pool        *ants.Pool
	logger      *slog.Logger
	// Protects the in-flight results map
	mu      sync.Mutex
	results map[string]chan error
}

type WorkerPoolConfig struct {
	Size int
}

func NewWorkerPoolProjectionService(
	baseService ProjectionService,
	config WorkerPoolConfig,
	logger *slog.Logger,
) (*WorkerPoolProjectionService, error) {
	pool, err := ants.NewPool(config.Size)
	if err != nil {
		return nil, err
	}

	return &WorkerPoolProjectionService{
		baseService: baseService,
		pool:        pool,
		logger:      logger,
		results:     make(map[string]chan error),
	}, nil
}

// ProjectStatusChange submits the change to the worker pool and waits for
// its outcome so the Kafka consumer can decide whether to commit.
func (s *WorkerPoolProjectionService) ProjectStatusChange(ctx context.Context, change *shared.StatusChange) error {
	logger := s.logger
	if change.CorrelationID != "" {
		logger = s.logger.With("correlation_id", change.CorrelationID)
	}

	logger.Debug("Submitting status change to worker pool",
		"business_event_id", change.BusinessEventID.String(),
		"status", string(change.Status),
	)

	resultChan := make(chan error, 1)

	key := change.BusinessEventID.String() + "/" + string(change.Status)
	s.mu.Lock()
	s.results[key] = resultChan
	s.mu.Unlock()

	// Copy so the worker never shares the caller's value
	changeCopy := *change

	err := s.pool.Submit(func() {
		err := s.baseService.ProjectStatusChange(ctx, &changeCopy)

		resultChan <- err

		s.mu.Lock()
		delete(s.results, key)
		close(resultChan)
		s.mu.Unlock()
	})

	if err != nil {
		s.mu.Lock()
		delete(s.results, key)
		close(resultChan)
		s.mu.Unlock()

		logger.Error("Failed to submit status change to worker pool",
			"business_event_id", change.BusinessEventID.String(),
			"error", err,
		)
		return err
	}

	return <-resultChan
}

// Shutdown gracefully shuts down the worker pool.
func (s *WorkerPoolProjectionService) Shutdown() {
	s.logger.Info("Shutting down worker pool", "running_workers", s.pool.Running())
	s.pool.Release()
}

// Running returns the number of running workers in the pool.
func (s *WorkerPoolProjectionService) Running() int {
	return s.pool.Running()
}

// Capacity returns the capacity of the worker pool.
func (s *WorkerPoolProjectionService) Capacity() int {
	return s.pool.Cap()
}
