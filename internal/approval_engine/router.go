package approval_engine

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fincore-approval-engine/internal/approval_engine/handler"
	"github.com/fincore-approval-engine/internal/approval_engine/middleware"
)

// setupRouter configures API routes and middleware for the approval engine
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	eventHandler *handler.EventHandler,
	approvalHandler *handler.ApprovalHandler,
	postingHandler *handler.PostingHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())

	// API v1 endpoints; every state-changing route requires a resolved actor
	v1 := r.Group("/api/v1")
	v1.Use(middleware.Actor())
	{
		events := v1.Group("/events")
		{
			events.POST("", eventHandler.Submit)
			events.GET("/:id", eventHandler.GetByID)
			events.GET("/:id/history", eventHandler.GetHistory)
			events.POST("/:id/ledger-entries", postingHandler.Post)
			events.GET("/:id/ledger-entries", postingHandler.List)
			events.POST("/:id/complete", eventHandler.Complete)
		}

		approvals := v1.Group("/approvals")
		{
			approvals.POST("/:id/approve", approvalHandler.Approve)
			approvals.POST("/:id/reject", approvalHandler.Reject)
		}
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
