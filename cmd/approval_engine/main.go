package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fincore-approval-engine/internal/approval_engine"
	"github.com/fincore-approval-engine/internal/approval_engine/service"
	"github.com/fincore-approval-engine/internal/config"
	"github.com/fincore-approval-engine/internal/data/postgres"
	"github.com/fincore-approval-engine/internal/domain/refdata"
	"github.com/fincore-approval-engine/internal/logger"
	"github.com/fincore-approval-engine/internal/platform/persistence"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("approval_engine")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	// Initialize database with app context
	postgresDB, err := persistence.NewPostgresDB(appCtx, log, &cfg.Postgres)
	if err != nil {
		log.Error("Failed to initialize PostgreSQL", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	eventRepo := postgres.NewEventRepository(log, postgresDB)
	taskRepo := postgres.NewTaskRepository(log, postgresDB)
	ruleRepo := postgres.NewRuleRepository(log, postgresDB)
	ledgerRepo := postgres.NewLedgerRepository(log, postgresDB)
	budgetRepo := postgres.NewBudgetRepository(log, postgresDB)
	historyRepo := postgres.NewHistoryRepository(log, postgresDB)
	outboxRepo := postgres.NewOutboxRepository(log, postgresDB)

	// Reference data resolves from the store first, then the shipped baseline
	refdataProvider := refdata.NewTwoTierProvider(
		log,
		postgres.NewRefdataRepository(log, postgresDB),
		refdata.DefaultStaticProvider(),
	)

	// Initialize services
	workflowService := service.NewWorkflowService(
		log,
		postgresDB,
		eventRepo,
		taskRepo,
		ruleRepo,
		ledgerRepo,
		historyRepo,
		outboxRepo,
		refdataProvider,
		cfg.Submission,
	)
	postingService := service.NewPostingService(
		log,
		postgresDB,
		eventRepo,
		ledgerRepo,
		budgetRepo,
		historyRepo,
		outboxRepo,
	)

	// Initialize REST server
	server := approval_engine.NewServer(log, cfg, workflowService, postingService)
	log.Info("REST server initialized")

	// Create error channel for server errors
	errChan := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	// Cancel the application context
	cancelAppCtx()

	// Create a shutdown context with timeout
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	// Graceful shutdown sequence
	log.Info("Starting graceful shutdown...")

	// Shutdown HTTP server before closing the pool it depends on
	if err = server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	postgresDB.Close()

	// Final status
	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	}
	if err != nil {
		log.Error("Server shutdown completed with errors")
	} else {
		log.Info("Server shutdown completed successfully")
	}
}
