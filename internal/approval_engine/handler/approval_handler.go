package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fincore-approval-engine/internal/approval_engine/middleware"
	"github.com/fincore-approval-engine/internal/approval_engine/service"
)

// ApprovalHandler handles HTTP requests for approval decisions
type ApprovalHandler struct {
	workflowService service.WorkflowService
	logger          *slog.Logger
}

// NewApprovalHandler creates a new approval handler
func NewApprovalHandler(logger *slog.Logger, workflowService service.WorkflowService) *ApprovalHandler {
	return &ApprovalHandler{
		workflowService: workflowService,
		logger:          logger,
	}
}

// Approve records a positive decision on an approval task
func (h *ApprovalHandler) Approve(c *gin.Context) {
	taskID, req, ok := h.bindDecision(c)
	if !ok {
		return
	}

	result, err := h.workflowService.Approve(c.Request.Context(), taskID, middleware.GetActor(c), req.Remarks, middleware.GetCorrelationID(c))
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	response := gin.H{
		"event_status": string(result.EventStatus),
		"has_next":     result.HasNext,
	}
	if result.NextTask != nil {
		response["next_task"] = mapTaskToResponse(result.NextTask)
	}
	RespondOK(c, response)
}

// Reject records a negative decision on an approval task
func (h *ApprovalHandler) Reject(c *gin.Context) {
	taskID, req, ok := h.bindDecision(c)
	if !ok {
		return
	}

	result, err := h.workflowService.Reject(c.Request.Context(), taskID, middleware.GetActor(c), req.Remarks, middleware.GetCorrelationID(c))
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	RespondOK(c, gin.H{"event_status": string(result.EventStatus)})
}

// bindDecision parses the task ID path parameter and the optional body
// shared by both decision endpoints
func (h *ApprovalHandler) bindDecision(c *gin.Context) (uuid.UUID, DecisionRequest, bool) {
	idParam := c.Param("id")
	taskID, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid approval task ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid approval task ID")
		return uuid.Nil, DecisionRequest{}, false
	}

	var req DecisionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Error("Invalid request body", "error", err)
			RespondBadRequest(c, "Invalid request body: "+err.Error())
			return uuid.Nil, DecisionRequest{}, false
		}
	}

	return taskID, req, true
}
