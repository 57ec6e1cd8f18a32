package handler

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/fincore-approval-engine/internal/approval_engine/service"
	"github.com/fincore-approval-engine/internal/domain/approval"
	"github.com/fincore-approval-engine/internal/domain/event"
	"github.com/fincore-approval-engine/internal/domain/ledger"
	"github.com/fincore-approval-engine/internal/domain/refdata"
	"github.com/fincore-approval-engine/internal/platform/persistence"
)

// respondDomainError maps typed domain errors onto the HTTP error taxonomy.
// Guard failures keep their specific status codes; anything unrecognized is
// a 500, except store connectivity failures which surface as a retryable
// 503.
func respondDomainError(c *gin.Context, logger *slog.Logger, err error) {
	var (
		eventNotFound   event.ErrEventNotFound
		taskNotFound    approval.ErrTaskNotFound
		entryNotFound   ledger.ErrEntryNotFound
		deptNotFound    refdata.ErrDepartmentNotFound
		custNotFound    refdata.ErrCustomerNotFound
		notAssigned     approval.ErrNotAssignedApprover
		alreadyDecided  approval.ErrTaskAlreadyDecided
		ambiguousRules  approval.ErrAmbiguousRules
		invalidStatus   event.ErrInvalidStatus
		nothingToClose  service.ErrNoLedgerEntries
		duplicateCode   event.ErrDuplicateProjectCode
	)

	switch {
	case errors.As(err, &eventNotFound),
		errors.As(err, &taskNotFound),
		errors.As(err, &entryNotFound):
		RespondNotFound(c, err.Error())
	case errors.As(err, &deptNotFound),
		errors.As(err, &custNotFound):
		RespondBadRequest(c, err.Error())
	case errors.As(err, &notAssigned):
		RespondForbidden(c, err.Error())
	case errors.As(err, &alreadyDecided):
		RespondConflict(c, err.Error())
	case errors.As(err, &ambiguousRules):
		RespondConfigConflict(c, err.Error())
	case errors.As(err, &invalidStatus),
		errors.As(err, &nothingToClose):
		RespondPreconditionFailed(c, err.Error())
	case errors.As(err, &duplicateCode):
		// Retries exhausted against concurrent submissions
		RespondConflict(c, err.Error())
	case isValidationError(err):
		RespondBadRequest(c, err.Error())
	case persistence.IsUnavailable(err):
		logger.Error("Store unavailable", "error", err)
		RespondServiceUnavailable(c)
	default:
		logger.Error("Unhandled service error", "error", err)
		RespondInternalError(c)
	}
}

func isValidationError(err error) bool {
	for _, sentinel := range []error{
		event.ErrInvalidEventType,
		event.ErrInvalidAmount,
		event.ErrEmptyProjectName,
		event.ErrMissingDepartment,
		event.ErrMissingSubmitter,
		ledger.ErrInvalidAmount,
		ledger.ErrInvalidDirection,
		ledger.ErrEmptyAccountCode,
		ledger.ErrInvalidPeriod,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
