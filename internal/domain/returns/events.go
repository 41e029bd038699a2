package returns

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/logichain/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeReturn = "Return"

// Event type constants
const (
	EventTypeReturnRequested = "ReturnRequested"
	EventTypeReturnApproved  = "ReturnApproved"
	EventTypeReturnRejected  = "ReturnRejected"
	EventTypeReturnReceived  = "ReturnReceived"
	EventTypeReturnRefunded  = "ReturnRefunded"
)

// RequestedEvent is raised when a customer opens a return request
type RequestedEvent struct {
	shared.BaseDomainEvent
	ReturnID     uuid.UUID       `json:"return_id"`
	ReturnNumber string          `json:"return_number"`
	OrderID      uuid.UUID       `json:"order_id"`
	OrderNumber  string          `json:"order_number"`
	CustomerID   uuid.UUID       `json:"customer_id"`
	Reason       Reason          `json:"reason"`
	RefundAmount decimal.Decimal `json:"refund_amount"`
}

// NewRequestedEvent creates a new RequestedEvent
func NewRequestedEvent(r *Return) *RequestedEvent {
	return &RequestedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReturnRequested, AggregateTypeReturn, r.ID),
		ReturnID:        r.ID,
		ReturnNumber:    r.ReturnNumber,
		OrderID:         r.OrderID,
		OrderNumber:     r.OrderNumber,
		CustomerID:      r.CustomerID,
		Reason:          r.Reason,
		RefundAmount:    r.RefundAmount,
	}
}

// EventType returns the event type name
func (e *RequestedEvent) EventType() string {
	return EventTypeReturnRequested
}

// ApprovedEvent is raised when support approves a return
type ApprovedEvent struct {
	shared.BaseDomainEvent
	ReturnID     uuid.UUID  `json:"return_id"`
	ReturnNumber string     `json:"return_number"`
	OrderID      uuid.UUID  `json:"order_id"`
	ProcessedBy  *uuid.UUID `json:"processed_by,omitempty"`
}

// NewApprovedEvent creates a new ApprovedEvent
func NewApprovedEvent(r *Return) *ApprovedEvent {
	return &ApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReturnApproved, AggregateTypeReturn, r.ID),
		ReturnID:        r.ID,
		ReturnNumber:    r.ReturnNumber,
		OrderID:         r.OrderID,
		ProcessedBy:     r.ProcessedBy,
	}
}

// EventType returns the event type name
func (e *ApprovedEvent) EventType() string {
	return EventTypeReturnApproved
}

// RejectedEvent is raised when a return is rejected, freeing the order's
// active-return slot
type RejectedEvent struct {
	shared.BaseDomainEvent
	ReturnID     uuid.UUID  `json:"return_id"`
	ReturnNumber string     `json:"return_number"`
	OrderID      uuid.UUID  `json:"order_id"`
	ProcessedBy  *uuid.UUID `json:"processed_by,omitempty"`
}

// NewRejectedEvent creates a new RejectedEvent
func NewRejectedEvent(r *Return) *RejectedEvent {
	return &RejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReturnRejected, AggregateTypeReturn, r.ID),
		ReturnID:        r.ID,
		ReturnNumber:    r.ReturnNumber,
		OrderID:         r.OrderID,
		ProcessedBy:     r.ProcessedBy,
	}
}

// EventType returns the event type name
func (e *RejectedEvent) EventType() string {
	return EventTypeReturnRejected
}

// ReceivedEvent is raised when the returned goods arrive at the warehouse
type ReceivedEvent struct {
	shared.BaseDomainEvent
	ReturnID     uuid.UUID  `json:"return_id"`
	ReturnNumber string     `json:"return_number"`
	OrderID      uuid.UUID  `json:"order_id"`
	ProcessedBy  *uuid.UUID `json:"processed_by,omitempty"`
}

// NewReceivedEvent creates a new ReceivedEvent
func NewReceivedEvent(r *Return) *ReceivedEvent {
	return &ReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReturnReceived, AggregateTypeReturn, r.ID),
		ReturnID:        r.ID,
		ReturnNumber:    r.ReturnNumber,
		OrderID:         r.OrderID,
		ProcessedBy:     r.ProcessedBy,
	}
}

// EventType returns the event type name
func (e *ReceivedEvent) EventType() string {
	return EventTypeReturnReceived
}

// RefundedEvent is raised when the refund completes and the order payment
// is marked refunded
type RefundedEvent struct {
	shared.BaseDomainEvent
	ReturnID     uuid.UUID       `json:"return_id"`
	ReturnNumber string          `json:"return_number"`
	OrderID      uuid.UUID       `json:"order_id"`
	CustomerID   uuid.UUID       `json:"customer_id"`
	RefundAmount decimal.Decimal `json:"refund_amount"`
	ProcessedBy  *uuid.UUID      `json:"processed_by,omitempty"`
}

// NewRefundedEvent creates a new RefundedEvent
func NewRefundedEvent(r *Return) *RefundedEvent {
	return &RefundedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReturnRefunded, AggregateTypeReturn, r.ID),
		ReturnID:        r.ID,
		ReturnNumber:    r.ReturnNumber,
		OrderID:         r.OrderID,
		CustomerID:      r.CustomerID,
		RefundAmount:    r.RefundAmount,
		ProcessedBy:     r.ProcessedBy,
	}
}

// EventType returns the event type name
func (e *RefundedEvent) EventType() string {
	return EventTypeReturnRefunded
}
