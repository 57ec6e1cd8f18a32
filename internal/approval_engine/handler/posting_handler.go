package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fincore-approval-engine/internal/approval_engine/middleware"
	"github.com/fincore-approval-engine/internal/approval_engine/service"
	"github.com/fincore-approval-engine/internal/domain/shared"
)

// PostingHandler handles HTTP requests for ledger postings
type PostingHandler struct {
	postingService service.PostingService
	logger         *slog.Logger
}

// NewPostingHandler creates a new posting handler
func NewPostingHandler(logger *slog.Logger, postingService service.PostingService) *PostingHandler {
	return &PostingHandler{
		postingService: postingService,
		logger:         logger,
	}
}

// Post creates a ledger entry against an approved business event. A replay
// of an already-used idempotency key answers 200 with the original entry
// instead of 201.
func (h *PostingHandler) Post(c *gin.Context) {
	idParam := c.Param("id")
	eventID, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid event ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid event ID")
		return
	}

	var req PostEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.PostingInput{
		AccountCode:    req.AccountCode,
		AmountCents:    req.AmountCents,
		Direction:      shared.Direction(req.Direction),
		FiscalYear:     req.FiscalYear,
		FiscalMonth:    req.FiscalMonth,
		IdempotencyKey: req.IdempotencyKey,
		CorrelationID:  middleware.GetCorrelationID(c),
	}

	result, err := h.postingService.Post(c.Request.Context(), eventID, input, middleware.GetActor(c))
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	statusCode := http.StatusCreated
	if result.Replayed {
		statusCode = http.StatusOK
	}
	RespondWithData(c, statusCode, gin.H{
		"entry_id":     result.Entry.ID.String(),
		"event_status": string(result.EventStatus),
		"entry":        mapLedgerEntryToResponse(result.Entry),
	})
}

// List retrieves all ledger entries posted against a business event
func (h *PostingHandler) List(c *gin.Context) {
	idParam := c.Param("id")
	eventID, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid event ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid event ID")
		return
	}

	entries, err := h.postingService.ListEntries(c.Request.Context(), eventID)
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	responses := make([]LedgerEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, mapLedgerEntryToResponse(entry))
	}
	RespondOK(c, responses)
}
