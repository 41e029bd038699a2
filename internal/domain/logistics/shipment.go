package logistics

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/logichain/backend/internal/domain/shared"
)

// ShipmentStatus represents the carrier-side progress of a shipment
type ShipmentStatus string

const (
	ShipmentStatusCreated        ShipmentStatus = "CREATED"
	ShipmentStatusInTransit      ShipmentStatus = "IN_TRANSIT"
	ShipmentStatusOutForDelivery ShipmentStatus = "OUT_FOR_DELIVERY"
	ShipmentStatusDelivered      ShipmentStatus = "DELIVERED"
	ShipmentStatusFailed         ShipmentStatus = "FAILED"
)

// IsValid checks if the status is a valid ShipmentStatus
func (s ShipmentStatus) IsValid() bool {
	switch s {
	case ShipmentStatusCreated, ShipmentStatusInTransit, ShipmentStatusOutForDelivery,
		ShipmentStatusDelivered, ShipmentStatusFailed:
		return true
	}
	return false
}

// String returns the string representation of ShipmentStatus
func (s ShipmentStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Failure is reachable from any non-terminal state.
func (s ShipmentStatus) CanTransitionTo(target ShipmentStatus) bool {
	switch s {
	case ShipmentStatusCreated:
		return target == ShipmentStatusInTransit || target == ShipmentStatusFailed
	case ShipmentStatusInTransit:
		return target == ShipmentStatusOutForDelivery || target == ShipmentStatusFailed
	case ShipmentStatusOutForDelivery:
		return target == ShipmentStatusDelivered || target == ShipmentStatusFailed
	case ShipmentStatusDelivered, ShipmentStatusFailed:
		return false // Terminal states
	}
	return false
}

// IsTerminal returns true if no further transition is possible
func (s ShipmentStatus) IsTerminal() bool {
	return s == ShipmentStatusDelivered || s == ShipmentStatusFailed
}

// Shipment represents one physical shipment of an order with a carrier.
// An order has at most one shipment.
type Shipment struct {
	shared.BaseAggregateRoot
	TrackingNumber        string         `gorm:"type:varchar(50);not null;uniqueIndex"`
	OrderID               uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	CarrierID             uuid.UUID      `gorm:"type:uuid;not null;index"`
	Status                ShipmentStatus `gorm:"type:varchar(20);not null"`
	CurrentLocation       string         `gorm:"type:varchar(200)"`
	EstimatedDeliveryDate *time.Time
	ActualDeliveryDate    *time.Time
	FailureReason         string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Shipment) TableName() string {
	return "shipments"
}

// NewShipment creates a new shipment in CREATED status
func NewShipment(trackingNumber string, orderID, carrierID uuid.UUID, estimatedDelivery *time.Time) (*Shipment, error) {
	trackingNumber = strings.ToUpper(strings.TrimSpace(trackingNumber))
	if len(trackingNumber) < 5 || len(trackingNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_TRACKING_NUMBER", "Tracking number must be between 5 and 50 characters")
	}
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if carrierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CARRIER", "Carrier ID cannot be empty")
	}

	return &Shipment{
		BaseAggregateRoot:     shared.NewBaseAggregateRoot(),
		TrackingNumber:        trackingNumber,
		OrderID:               orderID,
		CarrierID:             carrierID,
		Status:                ShipmentStatusCreated,
		EstimatedDeliveryDate: estimatedDelivery,
	}, nil
}

// UpdateLocation records the latest scan location
func (s *Shipment) UpdateLocation(location string) error {
	if s.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot update location of a closed shipment")
	}

	s.CurrentLocation = location
	s.UpdatedAt = time.Now()

	return nil
}

// TransitionTo moves the shipment along the carrier lifecycle
func (s *Shipment) TransitionTo(target ShipmentStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Unknown shipment status %q", target))
	}
	if !s.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot transition shipment from %s to %s", s.Status, target))
	}

	now := time.Now()
	s.Status = target
	if target == ShipmentStatusDelivered {
		s.ActualDeliveryDate = &now
	}
	s.UpdatedAt = now

	return nil
}

// Fail closes the shipment with a reason
func (s *Shipment) Fail(reason string) error {
	if !s.Status.CanTransitionTo(ShipmentStatusFailed) {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot fail shipment in %s status", s.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Failure reason is required")
	}

	s.Status = ShipmentStatusFailed
	s.FailureReason = reason
	s.UpdatedAt = time.Now()

	return nil
}
