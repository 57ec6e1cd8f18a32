package handler

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fincore-approval-engine/internal/approval_engine/middleware"
	"github.com/fincore-approval-engine/internal/approval_engine/service"
	"github.com/fincore-approval-engine/internal/domain/shared"
)

// EventHandler handles HTTP requests for business event operations
type EventHandler struct {
	workflowService service.WorkflowService
	logger          *slog.Logger
}

// NewEventHandler creates a new business event handler
func NewEventHandler(logger *slog.Logger, workflowService service.WorkflowService) *EventHandler {
	return &EventHandler{
		workflowService: workflowService,
		logger:          logger,
	}
}

// Submit creates a new business event and its approval chain
func (h *EventHandler) Submit(c *gin.Context) {
	var req SubmitEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	var eventDate time.Time
	if req.EventDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.EventDate)
		if err != nil {
			parsed, err = time.Parse("2006-01-02", req.EventDate)
		}
		if err != nil {
			h.logger.Error("Invalid event date", "event_date", req.EventDate, "error", err)
			RespondBadRequest(c, "Invalid event date, expected RFC 3339 or YYYY-MM-DD")
			return
		}
		eventDate = parsed
	}

	submission := &service.EventSubmission{
		EventType:     shared.EventType(req.EventType),
		ProjectName:   req.ProjectName,
		AmountCents:   req.AmountCents,
		EventDate:     eventDate,
		DepartmentID:  req.DepartmentID,
		CustomerID:    req.CustomerID,
		Description:   req.Description,
		Actor:         middleware.GetActor(c),
		CorrelationID: middleware.GetCorrelationID(c),
	}

	evt, err := h.workflowService.Submit(c.Request.Context(), submission)
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	RespondCreated(c, gin.H{
		"event_id":     evt.ID.String(),
		"project_code": evt.ProjectCode,
		"status":       string(evt.Status),
	})
}

// GetByID retrieves a business event together with its approval tasks
func (h *EventHandler) GetByID(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid event ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid event ID")
		return
	}

	evt, tasks, err := h.workflowService.GetEvent(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	RespondOK(c, mapEventToResponse(evt, tasks))
}

// GetHistory retrieves the status trail of a business event
func (h *EventHandler) GetHistory(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid event ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid event ID")
		return
	}

	entries, err := h.workflowService.GetHistory(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	RespondOK(c, mapHistoryToResponse(entries))
}

// Complete closes an in-progress business event
func (h *EventHandler) Complete(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid event ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid event ID")
		return
	}

	status, err := h.workflowService.Complete(c.Request.Context(), id, middleware.GetActor(c), middleware.GetCorrelationID(c))
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	RespondOK(c, gin.H{"event_status": string(status)})
}
