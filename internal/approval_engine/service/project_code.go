package service

import (
	"fmt"
	"time"

	"github.com/fincore-approval-engine/internal/domain/shared"
)

// ProjectCodePrefix builds the date-scoped prefix a code sequence is
// computed over, e.g. "XS-20260831-".
func ProjectCodePrefix(eventType shared.EventType, eventDate time.Time) string {
	return fmt.Sprintf("%s-%s-", eventType.Code(), eventDate.Format("20060102"))
}

// BuildProjectCode renders the full project code for a sequence number,
// e.g. "XS-20260831-0007".
func BuildProjectCode(eventType shared.EventType, eventDate time.Time, seq int) string {
	return fmt.Sprintf("%s%04d", ProjectCodePrefix(eventType, eventDate), seq)
}
