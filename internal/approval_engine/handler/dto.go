package handler

import (
	"time"

	"github.com/fincore-approval-engine/internal/domain/approval"
	"github.com/fincore-approval-engine/internal/domain/event"
	"github.com/fincore-approval-engine/internal/domain/history"
	"github.com/fincore-approval-engine/internal/domain/ledger"
)

// SubmitEventRequest represents a request to submit a new business event
type SubmitEventRequest struct {
	EventType    string `json:"event_type" binding:"required,oneof=CONTRACT SALE PURCHASE REIMBURSEMENT"`
	ProjectName  string `json:"project_name" binding:"required"`
	AmountCents  int64  `json:"amount_cents" binding:"required,gt=0"`
	EventDate    string `json:"event_date,omitempty"` // RFC 3339 date, defaults to today
	DepartmentID int64  `json:"department_id" binding:"required,gt=0"`
	CustomerID   *int64 `json:"customer_id,omitempty"`
	Description  string `json:"description,omitempty"`
}

// DecisionRequest represents an approve or reject request body
type DecisionRequest struct {
	Remarks string `json:"remarks,omitempty"`
}

// PostEntryRequest represents a request to post a ledger entry
type PostEntryRequest struct {
	AccountCode    string `json:"account_code" binding:"required"`
	AmountCents    int64  `json:"amount_cents" binding:"required,gt=0"`
	Direction      string `json:"direction" binding:"required,oneof=INCOME EXPENSE"`
	FiscalYear     int    `json:"fiscal_year" binding:"required,min=2000"`
	FiscalMonth    int    `json:"fiscal_month" binding:"required,min=1,max=12"`
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

// EventResponse represents a business event in API responses
type EventResponse struct {
	ID           string         `json:"id"`
	EventType    string         `json:"event_type"`
	ProjectName  string         `json:"project_name"`
	ProjectCode  string         `json:"project_code"`
	AmountCents  int64          `json:"amount_cents"`
	EventDate    string         `json:"event_date"`
	DepartmentID int64          `json:"department_id"`
	CustomerID   *int64         `json:"customer_id,omitempty"`
	CreatedBy    int64          `json:"created_by"`
	Status       string         `json:"status"`
	Description  string         `json:"description,omitempty"`
	CreatedAt    string         `json:"created_at"`
	Tasks        []TaskResponse `json:"tasks,omitempty"`
}

// TaskResponse represents an approval task in API responses
type TaskResponse struct {
	ID            string `json:"id"`
	ApproverID    int64  `json:"approver_id"`
	ApprovalLevel int    `json:"approval_level"`
	Status        string `json:"status"`
	DecidedAt     string `json:"decided_at,omitempty"`
	Remarks       string `json:"remarks,omitempty"`
}

// HistoryEntryResponse represents one status history row in API responses
type HistoryEntryResponse struct {
	Status     string `json:"status"`
	Operator   string `json:"operator"`
	Remarks    string `json:"remarks,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

// LedgerEntryResponse represents a ledger entry in API responses
type LedgerEntryResponse struct {
	ID          string `json:"id"`
	AccountCode string `json:"account_code"`
	AmountCents int64  `json:"amount_cents"`
	Direction   string `json:"direction"`
	FiscalYear  int    `json:"fiscal_year"`
	FiscalMonth int    `json:"fiscal_month"`
	CreatedBy   int64  `json:"created_by"`
	CreatedAt   string `json:"created_at"`
}

func mapEventToResponse(evt *event.BusinessEvent, tasks []*approval.Task) EventResponse {
	response := EventResponse{
		ID:           evt.ID.String(),
		EventType:    string(evt.EventType),
		ProjectName:  evt.ProjectName,
		ProjectCode:  evt.ProjectCode,
		AmountCents:  evt.AmountCents,
		EventDate:    evt.EventDate.Format(time.RFC3339),
		DepartmentID: evt.DepartmentID,
		CustomerID:   evt.CustomerID,
		CreatedBy:    evt.CreatedBy,
		Status:       string(evt.Status),
		Description:  evt.Description,
		CreatedAt:    evt.CreatedAt.Format(time.RFC3339),
	}
	for _, task := range tasks {
		response.Tasks = append(response.Tasks, mapTaskToResponse(task))
	}
	return response
}

func mapTaskToResponse(task *approval.Task) TaskResponse {
	response := TaskResponse{
		ID:            task.ID.String(),
		ApproverID:    task.ApproverID,
		ApprovalLevel: task.ApprovalLevel,
		Status:        string(task.Status),
		Remarks:       task.Remarks,
	}
	if task.DecidedAt != nil {
		response.DecidedAt = task.DecidedAt.Format(time.RFC3339)
	}
	return response
}

func mapHistoryToResponse(entries []*history.Entry) []HistoryEntryResponse {
	responses := make([]HistoryEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, HistoryEntryResponse{
			Status:     string(entry.Status),
			Operator:   entry.Operator,
			Remarks:    entry.Remarks,
			OccurredAt: entry.OccurredAt.Format(time.RFC3339),
		})
	}
	return responses
}

func mapLedgerEntryToResponse(entry *ledger.Entry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:          entry.ID.String(),
		AccountCode: entry.AccountCode,
		AmountCents: entry.AmountCents,
		Direction:   string(entry.Direction),
		FiscalYear:  entry.FiscalYear,
		FiscalMonth: entry.FiscalMonth,
		CreatedBy:   entry.CreatedBy,
		CreatedAt:   entry.CreatedAt.Format(time.RFC3339),
	}
}
