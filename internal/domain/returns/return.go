package returns

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/logichain/backend/internal/domain/order"
	"github.com/logichain/backend/internal/domain/shared"
)

// Description length bounds for return requests
const (
	MinDescriptionLength = 10
	MaxDescriptionLength = 500
)

// Status represents the status of a return request
type Status string

const (
	StatusRequested Status = "REQUESTED"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusReceived  Status = "RECEIVED"
	StatusRefunded  Status = "REFUNDED"
)

// IsValid checks if the status is a valid return Status
func (s Status) IsValid() bool {
	switch s {
	case StatusRequested, StatusApproved, StatusRejected, StatusReceived, StatusRefunded:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusRequested:
		return target == StatusApproved || target == StatusRejected
	case StatusApproved:
		return target == StatusReceived
	case StatusReceived:
		return target == StatusRefunded
	case StatusRejected, StatusRefunded:
		return false // Terminal states
	}
	return false
}

// IsTerminal returns true if no further transition is possible
func (s Status) IsTerminal() bool {
	return s == StatusRejected || s == StatusRefunded
}

// IsActive returns true while the return still occupies the order's
// single active-return slot. Only rejection or a completed refund frees it.
func (s Status) IsActive() bool {
	return !s.IsTerminal()
}

// Reason is the coarse category a customer selects when opening a return
type Reason string

const (
	ReasonDamaged        Reason = "DAMAGED"
	ReasonDefective      Reason = "DEFECTIVE"
	ReasonWrongItem      Reason = "WRONG_ITEM"
	ReasonNotAsDescribed Reason = "NOT_AS_DESCRIBED"
	ReasonNoLongerNeeded Reason = "NO_LONGER_NEEDED"
	ReasonOther          Reason = "OTHER"
)

// IsValid checks if the reason is a known category
func (r Reason) IsValid() bool {
	switch r {
	case ReasonDamaged, ReasonDefective, ReasonWrongItem, ReasonNotAsDescribed, ReasonNoLongerNeeded, ReasonOther:
		return true
	}
	return false
}

// Return represents a return request aggregate root.
// It manages the lifecycle of a customer return from request to refund.
type Return struct {
	shared.BaseAggregateRoot
	ReturnNumber    string
	OrderID         uuid.UUID
	OrderNumber     string
	CustomerID      uuid.UUID
	Status          Status
	Reason          Reason
	Description     string
	RefundAmount    decimal.Decimal // Snapshot of the order total at request time
	RequestedAt     time.Time
	ProcessedAt     *time.Time
	ProcessedBy     *uuid.UUID
	ProcessingNotes string
}

// TableName returns the table name for GORM
func (Return) TableName() string {
	return "returns"
}

// New opens a return request against a shipped or delivered order.
// The refund amount is snapshotted from the order total at request time so
// later price changes never affect what the customer gets back.
func New(returnNumber string, o *order.Order, reason Reason, description string) (*Return, error) {
	if returnNumber == "" {
		return nil, shared.NewDomainError("INVALID_RETURN_NUMBER", "Return number cannot be empty")
	}
	if len(returnNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_RETURN_NUMBER", "Return number cannot exceed 50 characters")
	}
	if o == nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order cannot be nil")
	}
	if !o.Returnable() {
		return nil, shared.NewDomainError("INELIGIBLE_ORDER",
			fmt.Sprintf("Returns can only be opened for shipped or delivered orders, order is %s", o.Status))
	}
	if !reason.IsValid() {
		return nil, shared.NewDomainError("INVALID_REASON", "Unknown return reason")
	}
	if err := ValidateDescription(description); err != nil {
		return nil, err
	}

	r := &Return{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ReturnNumber:      returnNumber,
		OrderID:           o.ID,
		OrderNumber:       o.OrderNumber,
		CustomerID:        o.CustomerID,
		Status:            StatusRequested,
		Reason:            reason,
		Description:       strings.TrimSpace(description),
		RefundAmount:      o.TotalAmount,
		RequestedAt:       time.Now(),
	}

	r.AddDomainEvent(NewRequestedEvent(r))

	return r, nil
}

// ValidateDescription checks the free-text description bounds. The limits
// count characters, not bytes, so multi-byte text is measured in runes.
func ValidateDescription(description string) error {
	trimmed := strings.TrimSpace(description)
	if n := utf8.RuneCountInString(trimmed); n < MinDescriptionLength || n > MaxDescriptionLength {
		return shared.NewDomainError("INVALID_DESCRIPTION",
			fmt.Sprintf("Description must be between %d and %d characters", MinDescriptionLength, MaxDescriptionLength))
	}
	return nil
}

// Approve transitions the return from REQUESTED to APPROVED
func (r *Return) Approve(processorID uuid.UUID, notes string) error {
	if !r.Status.CanTransitionTo(StatusApproved) {
		return r.transitionError(StatusApproved)
	}
	if processorID == uuid.Nil {
		return shared.NewDomainError("INVALID_PROCESSOR", "Processor ID cannot be empty")
	}

	r.setProcessed(StatusApproved, processorID, notes)
	r.AddDomainEvent(NewApprovedEvent(r))

	return nil
}

// Reject transitions the return from REQUESTED to REJECTED.
// Rejection is terminal and frees the order's active-return slot.
func (r *Return) Reject(processorID uuid.UUID, notes string) error {
	if !r.Status.CanTransitionTo(StatusRejected) {
		return r.transitionError(StatusRejected)
	}
	if processorID == uuid.Nil {
		return shared.NewDomainError("INVALID_PROCESSOR", "Processor ID cannot be empty")
	}

	r.setProcessed(StatusRejected, processorID, notes)
	r.AddDomainEvent(NewRejectedEvent(r))

	return nil
}

// MarkReceived records that the returned goods arrived back at the warehouse
func (r *Return) MarkReceived(processorID uuid.UUID, notes string) error {
	if !r.Status.CanTransitionTo(StatusReceived) {
		return r.transitionError(StatusReceived)
	}
	if processorID == uuid.Nil {
		return shared.NewDomainError("INVALID_PROCESSOR", "Processor ID cannot be empty")
	}

	r.setProcessed(StatusReceived, processorID, notes)
	r.AddDomainEvent(NewReceivedEvent(r))

	return nil
}

// MarkRefunded completes the return. This is the only path that triggers the
// order payment refund, which the application service applies in the same
// transaction.
func (r *Return) MarkRefunded(processorID uuid.UUID, notes string) error {
	if !r.Status.CanTransitionTo(StatusRefunded) {
		return r.transitionError(StatusRefunded)
	}
	if processorID == uuid.Nil {
		return shared.NewDomainError("INVALID_PROCESSOR", "Processor ID cannot be empty")
	}

	r.setProcessed(StatusRefunded, processorID, notes)
	r.AddDomainEvent(NewRefundedEvent(r))

	return nil
}

// TransitionTo dispatches to the transition method matching the target status
func (r *Return) TransitionTo(target Status, processorID uuid.UUID, notes string) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Unknown return status %q", target))
	}

	switch target {
	case StatusApproved:
		return r.Approve(processorID, notes)
	case StatusRejected:
		return r.Reject(processorID, notes)
	case StatusReceived:
		return r.MarkReceived(processorID, notes)
	case StatusRefunded:
		return r.MarkRefunded(processorID, notes)
	default:
		return r.transitionError(target)
	}
}

// IsActive returns true while the return blocks new returns for its order
func (r *Return) IsActive() bool {
	return r.Status.IsActive()
}

// IsTerminal returns true if the return is rejected or refunded
func (r *Return) IsTerminal() bool {
	return r.Status.IsTerminal()
}

func (r *Return) setProcessed(target Status, processorID uuid.UUID, notes string) {
	now := time.Now()
	r.Status = target
	r.ProcessedAt = &now
	r.ProcessedBy = &processorID
	if notes != "" {
		if r.ProcessingNotes != "" {
			r.ProcessingNotes += "\n"
		}
		r.ProcessingNotes += notes
	}
	r.UpdatedAt = now
}

func (r *Return) transitionError(target Status) error {
	return shared.NewDomainError("INVALID_TRANSITION",
		fmt.Sprintf("Cannot transition return from %s to %s", r.Status, target))
}
