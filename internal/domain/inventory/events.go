package inventory

import (
	"github.com/google/uuid"

	"github.com/logichain/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeInventoryRecord = "InventoryRecord"

// Event type constants
const (
	EventTypeStockReceived       = "StockReceived"
	EventTypeStockReserved       = "StockReserved"
	EventTypeStockReleased       = "StockReleased"
	EventTypeStockConsumed       = "StockConsumed"
	EventTypeStockAdjusted       = "StockAdjusted"
	EventTypeStockBelowThreshold = "StockBelowThreshold"
)

// StockReceivedEvent is raised when incoming stock is booked
type StockReceivedEvent struct {
	shared.BaseDomainEvent
	RecordID    uuid.UUID `json:"record_id"`
	ProductID   uuid.UUID `json:"product_id"`
	WarehouseID uuid.UUID `json:"warehouse_id"`
	Quantity    int64     `json:"quantity"`
	NewTotal    int64     `json:"new_total"`
}

// NewStockReceivedEvent creates a new StockReceivedEvent
func NewStockReceivedEvent(r *Record, quantity int64) *StockReceivedEvent {
	return &StockReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockReceived, AggregateTypeInventoryRecord, r.ID),
		RecordID:        r.ID,
		ProductID:       r.ProductID,
		WarehouseID:     r.WarehouseID,
		Quantity:        quantity,
		NewTotal:        r.Quantity,
	}
}

// EventType returns the event type name
func (e *StockReceivedEvent) EventType() string {
	return EventTypeStockReceived
}

// StockReservedEvent is raised when stock is held for a confirmed order
type StockReservedEvent struct {
	shared.BaseDomainEvent
	RecordID    uuid.UUID `json:"record_id"`
	ProductID   uuid.UUID `json:"product_id"`
	WarehouseID uuid.UUID `json:"warehouse_id"`
	Quantity    int64     `json:"quantity"`
	Available   int64     `json:"available"`
}

// NewStockReservedEvent creates a new StockReservedEvent
func NewStockReservedEvent(r *Record, quantity int64) *StockReservedEvent {
	return &StockReservedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockReserved, AggregateTypeInventoryRecord, r.ID),
		RecordID:        r.ID,
		ProductID:       r.ProductID,
		WarehouseID:     r.WarehouseID,
		Quantity:        quantity,
		Available:       r.Available(),
	}
}

// EventType returns the event type name
func (e *StockReservedEvent) EventType() string {
	return EventTypeStockReserved
}

// StockReleasedEvent is raised when a reservation is returned to the pool
type StockReleasedEvent struct {
	shared.BaseDomainEvent
	RecordID    uuid.UUID `json:"record_id"`
	ProductID   uuid.UUID `json:"product_id"`
	WarehouseID uuid.UUID `json:"warehouse_id"`
	Quantity    int64     `json:"quantity"`
	Available   int64     `json:"available"`
}

// NewStockReleasedEvent creates a new StockReleasedEvent
func NewStockReleasedEvent(r *Record, quantity int64) *StockReleasedEvent {
	return &StockReleasedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockReleased, AggregateTypeInventoryRecord, r.ID),
		RecordID:        r.ID,
		ProductID:       r.ProductID,
		WarehouseID:     r.WarehouseID,
		Quantity:        quantity,
		Available:       r.Available(),
	}
}

// EventType returns the event type name
func (e *StockReleasedEvent) EventType() string {
	return EventTypeStockReleased
}

// StockConsumedEvent is raised when reserved stock leaves the warehouse
type StockConsumedEvent struct {
	shared.BaseDomainEvent
	RecordID    uuid.UUID `json:"record_id"`
	ProductID   uuid.UUID `json:"product_id"`
	WarehouseID uuid.UUID `json:"warehouse_id"`
	Quantity    int64     `json:"quantity"`
	NewTotal    int64     `json:"new_total"`
}

// NewStockConsumedEvent creates a new StockConsumedEvent
func NewStockConsumedEvent(r *Record, quantity int64) *StockConsumedEvent {
	return &StockConsumedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockConsumed, AggregateTypeInventoryRecord, r.ID),
		RecordID:        r.ID,
		ProductID:       r.ProductID,
		WarehouseID:     r.WarehouseID,
		Quantity:        quantity,
		NewTotal:        r.Quantity,
	}
}

// EventType returns the event type name
func (e *StockConsumedEvent) EventType() string {
	return EventTypeStockConsumed
}

// StockAdjustedEvent is raised when a stock count correction is applied
type StockAdjustedEvent struct {
	shared.BaseDomainEvent
	RecordID    uuid.UUID `json:"record_id"`
	ProductID   uuid.UUID `json:"product_id"`
	WarehouseID uuid.UUID `json:"warehouse_id"`
	OldQuantity int64     `json:"old_quantity"`
	NewQuantity int64     `json:"new_quantity"`
	Reason      string    `json:"reason"`
}

// NewStockAdjustedEvent creates a new StockAdjustedEvent
func NewStockAdjustedEvent(r *Record, oldQuantity, newQuantity int64, reason string) *StockAdjustedEvent {
	return &StockAdjustedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockAdjusted, AggregateTypeInventoryRecord, r.ID),
		RecordID:        r.ID,
		ProductID:       r.ProductID,
		WarehouseID:     r.WarehouseID,
		OldQuantity:     oldQuantity,
		NewQuantity:     newQuantity,
		Reason:          reason,
	}
}

// EventType returns the event type name
func (e *StockAdjustedEvent) EventType() string {
	return EventTypeStockAdjusted
}

// StockBelowThresholdEvent signals that a product needs restocking
type StockBelowThresholdEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Available int64     `json:"available"`
	Threshold int64     `json:"threshold"`
}

// NewStockBelowThresholdEvent creates a new StockBelowThresholdEvent
func NewStockBelowThresholdEvent(ps ProductStock, threshold int64) *StockBelowThresholdEvent {
	return &StockBelowThresholdEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockBelowThreshold, AggregateTypeInventoryRecord, ps.ProductID),
		ProductID:       ps.ProductID,
		Available:       ps.Available,
		Threshold:       threshold,
	}
}

// EventType returns the event type name
func (e *StockBelowThresholdEvent) EventType() string {
	return EventTypeStockBelowThreshold
}
