package shared

// EventType classifies the business activity behind an event
type EventType string

const (
	EventTypeContract      EventType = "CONTRACT"
	EventTypeSale          EventType = "SALE"
	EventTypePurchase      EventType = "PURCHASE"
	EventTypeReimbursement EventType = "REIMBURSEMENT"
)

// projectCodePrefixes maps event types to the two-letter prefix used in
// project codes. Unknown types fall back to the generic "QT" prefix.
var projectCodePrefixes = map[EventType]string{
	EventTypeContract:      "HT",
	EventTypeSale:          "XS",
	EventTypePurchase:      "CG",
	EventTypeReimbursement: "BX",
}

// Code returns the project-code prefix for the event type
func (t EventType) Code() string {
	if code, ok := projectCodePrefixes[t]; ok {
		return code
	}
	return "QT"
}

// Valid reports whether the event type is one of the known types
func (t EventType) Valid() bool {
	_, ok := projectCodePrefixes[t]
	return ok
}

// EventStatus defines business event lifecycle states
type EventStatus string

const (
	EventStatusNew             EventStatus = "NEW"
	EventStatusPendingApproval EventStatus = "PENDING_APPROVAL"
	EventStatusInApproval      EventStatus = "IN_APPROVAL"
	EventStatusApproved        EventStatus = "APPROVED"
	EventStatusRejected        EventStatus = "REJECTED"
	// EventStatusRecorded is a legacy value still present in historical rows.
	// It is accepted on read but no transition produces it anymore.
	EventStatusRecorded   EventStatus = "RECORDED"
	EventStatusInProgress EventStatus = "IN_PROGRESS"
	EventStatusCompleted  EventStatus = "COMPLETED"
)

// Terminal reports whether no further transitions are allowed from the status
func (s EventStatus) Terminal() bool {
	return s == EventStatusRejected || s == EventStatusCompleted
}

// AwaitingApproval reports whether approval decisions are accepted in this status
func (s EventStatus) AwaitingApproval() bool {
	return s == EventStatusPendingApproval || s == EventStatusInApproval
}

// Postable reports whether ledger entries may be created in this status
func (s EventStatus) Postable() bool {
	return s == EventStatusApproved || s == EventStatusInProgress
}

// TaskStatus defines approval task states
type TaskStatus string

const (
	TaskStatusPending  TaskStatus = "PENDING"
	TaskStatusApproved TaskStatus = "APPROVED"
	TaskStatusRejected TaskStatus = "REJECTED"
)

// Direction classifies a ledger entry as money in or money out
type Direction string

const (
	DirectionIncome  Direction = "INCOME"
	DirectionExpense Direction = "EXPENSE"
)

// Valid reports whether the direction is a known value
func (d Direction) Valid() bool {
	return d == DirectionIncome || d == DirectionExpense
}

// RoleAdmin may decide any approval task regardless of assignment
const RoleAdmin = "admin"

// Actor is the externally resolved identity attached to every
// state-changing request. The engine never parses credentials itself.
type Actor struct {
	UserID   int64
	Username string
	Role     string
}

// IsAdmin reports whether the actor carries the administrator role
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// OutboxStatus defines status-change message publishing states
type OutboxStatus string

const (
	OutboxStatusPending         OutboxStatus = "PENDING"
	OutboxStatusProcessed       OutboxStatus = "PROCESSED"
	OutboxStatusFailedToPublish OutboxStatus = "FAILED_TO_PUBLISH"
)
